// Package dataset fetches and types the comment and video source tables.
package dataset

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"thirdcoast.systems/redline/internal/fetch"
	"thirdcoast.systems/redline/internal/labeling"
	"thirdcoast.systems/redline/pkg/tabular"
)

// Datasets is the loaded pair of source tables the operator labels against.
type Datasets struct {
	Comments *labeling.Comments
	Videos   *labeling.Videos

	CommentsSource string
	VideosSource   string
	LoadedAt       time.Time
}

// Loader fetches and validates the two datasets.
type Loader struct {
	// Timeout bounds a single http(s) fetch. Local reads ignore it.
	Timeout time.Duration
}

// Load fetches both sources, parses them by extension and validates the
// required columns. Any failure aborts the whole load; the caller keeps
// whatever datasets it had before.
func (l *Loader) Load(ctx context.Context, commentsSource, videosSource string) (*Datasets, error) {
	comments, err := l.loadComments(ctx, commentsSource)
	if err != nil {
		return nil, err
	}
	videos, err := l.loadVideos(ctx, videosSource)
	if err != nil {
		return nil, err
	}

	return &Datasets{
		Comments:       comments,
		Videos:         videos,
		CommentsSource: commentsSource,
		VideosSource:   videosSource,
		LoadedAt:       time.Now().UTC(),
	}, nil
}

func (l *Loader) loadComments(ctx context.Context, source string) (*labeling.Comments, error) {
	raw, err := fetch.Bytes(ctx, source, l.Timeout)
	if err != nil {
		return nil, fmt.Errorf("fetch comments dataset: %w", err)
	}
	tbl, err := tabular.Read(source, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse comments dataset: %w", err)
	}
	comments, err := labeling.CommentsFromTable(tbl)
	if err != nil {
		return nil, fmt.Errorf("comments dataset %s: %w", source, err)
	}
	return comments, nil
}

func (l *Loader) loadVideos(ctx context.Context, source string) (*labeling.Videos, error) {
	raw, err := fetch.Bytes(ctx, source, l.Timeout)
	if err != nil {
		return nil, fmt.Errorf("fetch videos dataset: %w", err)
	}
	tbl, err := tabular.Read(source, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse videos dataset: %w", err)
	}
	videos, err := labeling.VideosFromTable(tbl)
	if err != nil {
		return nil, fmt.Errorf("videos dataset %s: %w", source, err)
	}
	return videos, nil
}
