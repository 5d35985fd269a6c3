// Package labeling implements the comment-labeling core: typed rows over
// raw tabular datasets, per-video filtering, merging of persisted labels
// into the working view, and progress statistics.
package labeling

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Wire column names shared with the upstream comment exports.
const (
	ColumnText    = "text_original"
	ColumnVideoID = "videoId"
	ColumnFrame   = "frame"
	ColumnLabel   = "label"
)

// MissingColumnError reports a dataset lacking a required column. The
// dataset is rejected before any filtering happens.
type MissingColumnError struct {
	Dataset string
	Column  string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s dataset is missing required column %q", e.Dataset, e.Column)
}

// intCell parses a numeric table cell. Exports of nullable integer columns
// often render whole numbers as floats ("3.0"), so both forms are accepted.
func intCell(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty cell")
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, fmt.Errorf("not an integer: %q", s)
	}
	return int(f), nil
}
