package workspace

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"thirdcoast.systems/redline/internal/labeling"
	"thirdcoast.systems/redline/internal/metrics"
	"thirdcoast.systems/redline/internal/store"
)

// ViewSnapshot is the wire form of the current view.
type ViewSnapshot struct {
	Selection Selection      `json:"selection"`
	Columns   []string       `json:"columns"`
	Rows      []RowSnapshot  `json:"rows"`
	Stats     labeling.Stats `json:"stats"`
}

// RowSnapshot is one view row. Label 0 means unlabeled; Pending marks an
// assignment that has not been saved yet.
type RowSnapshot struct {
	ID      uuid.UUID         `json:"id"`
	VideoID string            `json:"videoId"`
	Text    string            `json:"text"`
	Label   labeling.Label    `json:"label,omitempty"`
	Pending bool              `json:"pending,omitempty"`
	Fields  map[string]string `json:"fields"`
}

// Select replaces the selection and returns the resulting view.
func (w *Workspace) Select(ctx context.Context, sel Selection) (*ViewSnapshot, error) {
	if sel.VideoID == "" {
		return nil, ErrNoSelection
	}
	if sel.Status == "" {
		sel.Status = labeling.StatusAll
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.datasets == nil {
		return nil, ErrNotLoaded
	}
	w.selection = &sel
	return w.snapshot(ctx)
}

// View rebuilds the current view from scratch: filter by selection, merge
// with freshly loaded persisted labels, narrow by status, overlay unsaved
// assignments.
func (w *Workspace) View(ctx context.Context) (*ViewSnapshot, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshot(ctx)
}

// SetLabel assigns a label to a row of the current view. The assignment
// stays in memory until the next save.
func (w *Workspace) SetLabel(ctx context.Context, id uuid.UUID, label labeling.Label) error {
	if !label.Valid() {
		return fmt.Errorf("label %d outside the assignable set", label)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	view, err := w.buildView(ctx)
	if err != nil {
		return err
	}
	if !viewHas(view, id) {
		return ErrRowNotInView
	}
	w.assignments[id] = label
	metrics.LabelAssignmentsTotal.WithLabelValues("assign").Inc()
	return nil
}

// ClearLabel removes a row's label. A row with a persisted label gets an
// explicit none assignment so the next save drops it from the store; a row
// with only an unsaved assignment just forgets it.
func (w *Workspace) ClearLabel(ctx context.Context, id uuid.UUID) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	view, err := w.buildView(ctx)
	if err != nil {
		return err
	}
	for _, row := range view.Rows {
		if row.ID != id {
			continue
		}
		if row.Label.Assigned() {
			w.assignments[id] = labeling.LabelNone
		} else {
			delete(w.assignments, id)
		}
		metrics.LabelAssignmentsTotal.WithLabelValues("clear").Inc()
		return nil
	}
	return ErrRowNotInView
}

// Save persists the current view and forgets the assignments it covered.
// On failure the assignments stay in memory for a retry.
func (w *Workspace) Save(ctx context.Context) (store.SaveResult, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	view, err := w.buildView(ctx)
	if err != nil {
		return store.SaveResult{}, err
	}
	w.overlay(view)

	res, err := w.store.Save(ctx, view)
	if err != nil {
		metrics.SavesTotal.WithLabelValues(w.store.Kind(), "error").Inc()
		return store.SaveResult{}, err
	}
	metrics.SavesTotal.WithLabelValues(w.store.Kind(), "ok").Inc()
	metrics.SavedRowsTotal.Add(float64(res.Saved))
	metrics.PersistedLabels.Set(float64(res.Total))

	for _, row := range view.Rows {
		delete(w.assignments, row.ID)
	}
	return res, nil
}

// snapshot builds the overlaid view. Callers hold the mutex.
func (w *Workspace) snapshot(ctx context.Context) (*ViewSnapshot, error) {
	view, err := w.buildView(ctx)
	if err != nil {
		return nil, err
	}
	w.overlay(view)

	rows := make([]RowSnapshot, 0, len(view.Rows))
	for _, row := range view.Rows {
		rows = append(rows, RowSnapshot{
			ID:      row.ID,
			VideoID: row.Key.VideoID,
			Text:    row.Key.Text,
			Label:   row.Label,
			Pending: row.Pending,
			Fields:  row.Fields,
		})
	}
	return &ViewSnapshot{
		Selection: *w.selection,
		Columns:   view.Columns,
		Rows:      rows,
		Stats:     view.Summarize(),
	}, nil
}

// buildView filters, merges and status-narrows without the assignment
// overlay, so row labels are the persisted ones. The status filter judges
// persisted labels too: an unsaved assignment does not move a row between
// the labeled and unlabeled views. Callers hold the mutex.
func (w *Workspace) buildView(ctx context.Context) (*labeling.View, error) {
	if w.datasets == nil {
		return nil, ErrNotLoaded
	}
	if w.selection == nil {
		return nil, ErrNoSelection
	}

	prior, err := w.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load persisted labels: %w", err)
	}
	filtered := labeling.Filter(w.datasets.Comments, w.datasets.Videos, w.selection.VideoID, w.selection.Frame)
	view := labeling.Merge(w.datasets.Comments.Columns, filtered, prior)
	return view.KeepStatus(w.selection.Status), nil
}

// overlay applies unsaved assignments on top of persisted labels. Callers
// hold the mutex.
func (w *Workspace) overlay(view *labeling.View) {
	for i := range view.Rows {
		if label, ok := w.assignments[view.Rows[i].ID]; ok {
			view.Rows[i].Label = label
			view.Rows[i].Pending = true
		}
	}
}

func viewHas(view *labeling.View, id uuid.UUID) bool {
	for _, row := range view.Rows {
		if row.ID == id {
			return true
		}
	}
	return false
}
