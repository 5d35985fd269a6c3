// Package store persists labeled comments across sessions.
package store

import (
	"context"

	"thirdcoast.systems/redline/internal/labeling"
)

// A Store keeps the labeled dataset between sessions.
type Store interface {
	// Kind names the backend for logs and dataset info.
	Kind() string

	// Load returns the persisted label per row key. A dataset that does not
	// exist yet yields an empty set; the file backend also degrades to empty
	// when the file is unreadable, leaving strict reads to Save.
	Load(ctx context.Context) (labeling.LabelSet, error)

	// Save upserts the view into the persisted dataset: keys present in the
	// view replace their persisted counterparts, view rows without a label
	// are dropped, and persisted rows outside the view stay untouched. On
	// error the persisted dataset is unchanged and the caller may retry.
	Save(ctx context.Context, view *labeling.View) (SaveResult, error)
}

// SaveResult reports what a save wrote.
type SaveResult struct {
	Saved   int `json:"saved"`   // labeled view rows written
	Dropped int `json:"dropped"` // view rows omitted for having no label
	Kept    int `json:"kept"`    // prior rows outside the view carried forward
	Total   int `json:"total"`   // persisted rows after the save
}
