package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgtype"

	"thirdcoast.systems/redline/internal/db"
	"thirdcoast.systems/redline/internal/labeling"
)

// PostgresStore keeps the labeled dataset in PostgreSQL and saves by
// upserting on the natural key instead of rewriting a file. Unlike the file
// backend, key uniqueness is enforced by the schema.
type PostgresStore struct {
	DB *db.DatabaseConnection
}

func NewPostgresStore(dbc *db.DatabaseConnection) *PostgresStore {
	return &PostgresStore{DB: dbc}
}

func (s *PostgresStore) Kind() string { return "postgres" }

// Load returns the persisted label per key. A missing table degrades to an
// empty set; any other database error is returned.
func (s *PostgresStore) Load(ctx context.Context) (labeling.LabelSet, error) {
	rows, err := s.DB.ListLabeledComments(ctx)
	if err != nil {
		if db.IsUndefinedColumnErr(err) {
			slog.Warn("labeled_comments table not migrated yet, starting from empty", "error", err)
			return labeling.LabelSet{}, nil
		}
		return nil, fmt.Errorf("list labeled comments: %w", err)
	}

	set := make(labeling.LabelSet, len(rows))
	for _, row := range rows {
		set[labeling.Key{VideoID: row.VideoID, Text: row.Text}] = labeling.Label(row.Label)
	}
	return set, nil
}

// Save upserts the labeled view rows and deletes the keys of unlabeled
// ones, all in one transaction.
func (s *PostgresStore) Save(ctx context.Context, view *labeling.View) (SaveResult, error) {
	var (
		upserts []db.LabeledComment
		deletes []labeling.Key
		res     SaveResult
	)

	for _, row := range view.Rows {
		if !row.Label.Assigned() {
			deletes = append(deletes, row.Key)
			res.Dropped++
			continue
		}

		extra := make(map[string]string, len(row.Fields))
		for col, val := range row.Fields {
			if col == labeling.ColumnText || col == labeling.ColumnVideoID {
				continue
			}
			extra[col] = val
		}
		upserts = append(upserts, db.LabeledComment{
			ID:      pgtype.UUID{Bytes: row.Key.UUID(), Valid: true},
			VideoID: row.Key.VideoID,
			Text:    row.Key.Text,
			Label:   int16(row.Label),
			Extra:   extra,
		})
		res.Saved++
	}

	if err := s.DB.SaveLabels(ctx, upserts, deletes); err != nil {
		return SaveResult{}, err
	}

	total, err := s.DB.CountLabeledComments(ctx)
	if err != nil {
		return SaveResult{}, fmt.Errorf("count labeled comments: %w", err)
	}
	res.Total = int(total)
	res.Kept = res.Total - res.Saved
	return res, nil
}
