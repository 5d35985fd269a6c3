package labeling

import (
	"github.com/google/uuid"

	"thirdcoast.systems/redline/internal/rowid"
	"thirdcoast.systems/redline/pkg/tabular"
)

// Key is the natural identity of a comment row: the video it belongs to and
// the original text. Values are compared exactly as they appear in the
// source data; uniqueness is assumed, not enforced.
type Key struct {
	VideoID string
	Text    string
}

// UUID returns the deterministic row identity for the key.
func (k Key) UUID() uuid.UUID {
	return rowid.CommentUUID(k.VideoID, k.Text)
}

// Comment is one row of the comments dataset. Fields holds every source
// column by name, key columns included, so passthrough columns survive to
// the persisted output.
type Comment struct {
	Key    Key
	Fields map[string]string
}

// Comments is the typed comments dataset.
type Comments struct {
	Columns []string
	Rows    []Comment
}

// CommentsFromTable types a raw table as the comments dataset. The table
// must carry the text_original and videoId columns; everything else rides
// along untouched.
func CommentsFromTable(t *tabular.Table) (*Comments, error) {
	textIdx := t.ColumnIndex(ColumnText)
	if textIdx < 0 {
		return nil, &MissingColumnError{Dataset: "comments", Column: ColumnText}
	}
	videoIdx := t.ColumnIndex(ColumnVideoID)
	if videoIdx < 0 {
		return nil, &MissingColumnError{Dataset: "comments", Column: ColumnVideoID}
	}

	rows := make([]Comment, 0, t.Len())
	for _, rec := range t.Rows {
		fields := make(map[string]string, len(t.Columns))
		for i, col := range t.Columns {
			fields[col] = rec[i]
		}
		rows = append(rows, Comment{
			Key:    Key{VideoID: rec[videoIdx], Text: rec[textIdx]},
			Fields: fields,
		})
	}

	cols := make([]string, len(t.Columns))
	copy(cols, t.Columns)
	return &Comments{Columns: cols, Rows: rows}, nil
}
