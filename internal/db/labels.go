package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"thirdcoast.systems/redline/internal/labeling"
)

// LabeledComment is one persisted row of the labeled dataset. Extra carries
// the comment's passthrough columns.
type LabeledComment struct {
	ID      pgtype.UUID
	VideoID string
	Text    string
	Label   int16
	Extra   map[string]string
}

const upsertLabeledCommentSQL = `
INSERT INTO labeled_comments (id, video_id, text_original, label, extra)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (video_id, text_original)
DO UPDATE SET label = EXCLUDED.label, extra = EXCLUDED.extra, updated_at = now()`

const deleteLabeledCommentSQL = `
DELETE FROM labeled_comments WHERE video_id = $1 AND text_original = $2`

const listLabeledCommentsSQL = `
SELECT id, video_id, text_original, label, extra
FROM labeled_comments
ORDER BY video_id, text_original`

const countLabeledCommentsSQL = `SELECT count(*) FROM labeled_comments`

// ListLabeledComments returns every persisted row.
func (db *DatabaseConnection) ListLabeledComments(ctx context.Context) ([]LabeledComment, error) {
	rows, err := db.Pool.Query(ctx, listLabeledCommentsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LabeledComment
	for rows.Next() {
		var lc LabeledComment
		if err := rows.Scan(&lc.ID, &lc.VideoID, &lc.Text, &lc.Label, &lc.Extra); err != nil {
			return nil, err
		}
		out = append(out, lc)
	}
	return out, rows.Err()
}

// CountLabeledComments returns the number of persisted rows.
func (db *DatabaseConnection) CountLabeledComments(ctx context.Context) (int64, error) {
	var n int64
	err := db.Pool.QueryRow(ctx, countLabeledCommentsSQL).Scan(&n)
	return n, err
}

// SaveLabels applies the upserts and deletes of one save in a single
// transaction, so a failed save leaves the persisted dataset unchanged.
func (db *DatabaseConnection) SaveLabels(ctx context.Context, upserts []LabeledComment, deletes []labeling.Key) error {
	tx, err := db.BeginTX(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	batch := &pgx.Batch{}
	for _, row := range upserts {
		batch.Queue(upsertLabeledCommentSQL, row.ID, row.VideoID, row.Text, row.Label, row.Extra)
	}
	for _, key := range deletes {
		batch.Queue(deleteLabeledCommentSQL, key.VideoID, key.Text)
	}

	br := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return fmt.Errorf("apply labeled comments batch: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("close labeled comments batch: %w", err)
	}

	return tx.Commit(ctx)
}
