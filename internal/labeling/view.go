package labeling

import (
	"fmt"

	"github.com/google/uuid"
)

// Row is one comment in a merged view: the source fields plus the label the
// operator currently sees.
type Row struct {
	ID      uuid.UUID
	Key     Key
	Fields  map[string]string
	Label   Label
	Pending bool // label differs from the persisted one and is unsaved
}

// View is a filtered slice of the comments dataset with labels attached.
type View struct {
	Columns []string
	Rows    []Row
}

// Merge attaches persisted labels to filtered comments by their natural
// key. Rows without a persisted label get LabelNone. Merging is idempotent;
// persisted keys outside the filtered rows are simply not consulted here
// and survive untouched until the next save.
func Merge(columns []string, comments []Comment, prior LabelSet) *View {
	rows := make([]Row, 0, len(comments))
	for _, c := range comments {
		rows = append(rows, Row{
			ID:     c.Key.UUID(),
			Key:    c.Key,
			Fields: c.Fields,
			Label:  prior[c.Key],
		})
	}

	cols := make([]string, len(columns))
	copy(cols, columns)
	return &View{Columns: cols, Rows: rows}
}

// Status narrows a view by label presence.
type Status string

const (
	StatusAll       Status = "all"
	StatusUnlabeled Status = "unlabeled"
	StatusLabeled   Status = "labeled"
)

// ParseStatus parses a status filter value. Empty input means all.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case "":
		return StatusAll, nil
	case StatusAll, StatusUnlabeled, StatusLabeled:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown label status %q", s)
}

// KeepStatus returns the view narrowed to rows matching st. The predicate
// reads the labels currently on the rows, so callers that want "unlabeled"
// to keep showing rows with unsaved assignments must narrow before applying
// the assignment overlay.
func (v *View) KeepStatus(st Status) *View {
	if st == StatusAll {
		return v
	}

	kept := make([]Row, 0, len(v.Rows))
	for _, row := range v.Rows {
		if (st == StatusLabeled) == row.Label.Assigned() {
			kept = append(kept, row)
		}
	}
	return &View{Columns: v.Columns, Rows: kept}
}

// Stats summarizes labeling progress over a view.
type Stats struct {
	Total     int     `json:"total"`
	Labeled   int     `json:"labeled"`
	Unlabeled int     `json:"unlabeled"`
	Percent   float64 `json:"percent"`
}

// Summarize counts labeled rows in the view, unsaved assignments included.
func (v *View) Summarize() Stats {
	s := Stats{Total: len(v.Rows)}
	for _, row := range v.Rows {
		if row.Label.Assigned() {
			s.Labeled++
		}
	}
	s.Unlabeled = s.Total - s.Labeled
	if s.Total > 0 {
		s.Percent = float64(s.Labeled) / float64(s.Total) * 100
	}
	return s
}
