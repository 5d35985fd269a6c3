// Package workspace holds the operator's labeling session: the loaded
// datasets, the current selection, and label assignments not yet saved.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"thirdcoast.systems/redline/internal/dataset"
	"thirdcoast.systems/redline/internal/labeling"
	"thirdcoast.systems/redline/internal/metrics"
	"thirdcoast.systems/redline/internal/store"
)

var (
	ErrNotLoaded    = errors.New("datasets not loaded")
	ErrNoSelection  = errors.New("no video selected")
	ErrRowNotInView = errors.New("comment not in the current view")
)

// Workspace is the single labeling session the service exposes. One mutex
// guards all state; operations run to completion under it, store reads
// included.
type Workspace struct {
	mu     sync.Mutex
	loader *dataset.Loader
	store  store.Store

	datasets  *dataset.Datasets
	selection *Selection

	// assignments maps row identity to an unsaved label. A LabelNone entry
	// is an explicit clear that overrides a persisted label at save time.
	assignments map[uuid.UUID]labeling.Label
}

// Selection narrows the comments dataset to the rows being labeled.
type Selection struct {
	VideoID string          `json:"videoId"`
	Frame   *int            `json:"frame,omitempty"`
	Status  labeling.Status `json:"status"`
}

func New(loader *dataset.Loader, st store.Store) *Workspace {
	return &Workspace{
		loader:      loader,
		store:       st,
		assignments: make(map[uuid.UUID]labeling.Label),
	}
}

// LoadDatasets fetches and swaps in both datasets. On failure the workspace
// keeps what it had. Pending assignments survive a reload: row identity is
// derived from (videoId, text), not from dataset position.
func (w *Workspace) LoadDatasets(ctx context.Context, commentsSource, videosSource string) error {
	ds, err := w.loader.Load(ctx, commentsSource, videosSource)
	if err != nil {
		metrics.DatasetReloadsTotal.WithLabelValues("error").Inc()
		return err
	}
	metrics.DatasetReloadsTotal.WithLabelValues("ok").Inc()

	w.mu.Lock()
	defer w.mu.Unlock()
	w.datasets = ds
	return nil
}

// Info summarizes the loaded datasets and the persisted labels.
type Info struct {
	CommentsSource string    `json:"commentsSource"`
	VideosSource   string    `json:"videosSource"`
	LoadedAt       time.Time `json:"loadedAt"`
	CommentRows    int       `json:"commentRows"`
	CommentColumns []string  `json:"commentColumns"`
	VideoRows      int       `json:"videoRows"`
	Videos         int       `json:"videos"`
	Store          string    `json:"store"`
	SavedLabels    int       `json:"savedLabels"`
	PendingLabels  int       `json:"pendingLabels"`
}

func (w *Workspace) Info(ctx context.Context) (Info, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.datasets == nil {
		return Info{}, ErrNotLoaded
	}
	prior, err := w.store.Load(ctx)
	if err != nil {
		return Info{}, fmt.Errorf("load persisted labels: %w", err)
	}

	ds := w.datasets
	return Info{
		CommentsSource: ds.CommentsSource,
		VideosSource:   ds.VideosSource,
		LoadedAt:       ds.LoadedAt,
		CommentRows:    len(ds.Comments.Rows),
		CommentColumns: ds.Comments.Columns,
		VideoRows:      len(ds.Videos.Rows),
		Videos:         len(ds.Videos.IDs()),
		Store:          w.store.Kind(),
		SavedLabels:    len(prior),
		PendingLabels:  len(w.assignments),
	}, nil
}

// VideoIDs returns the sorted distinct video ids from the videos dataset.
func (w *Workspace) VideoIDs() ([]string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.datasets == nil {
		return nil, ErrNotLoaded
	}
	return w.datasets.Videos.IDs(), nil
}

// Frames returns the sorted distinct frames from the videos dataset.
func (w *Workspace) Frames() ([]int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.datasets == nil {
		return nil, ErrNotLoaded
	}
	return w.datasets.Videos.Frames(), nil
}
