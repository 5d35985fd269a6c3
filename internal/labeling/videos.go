package labeling

import (
	"fmt"
	"sort"

	"thirdcoast.systems/redline/pkg/tabular"
)

// Video is one row of the videos dataset. One video id may map to many
// frames.
type Video struct {
	VideoID string
	Frame   int
}

// Videos is the typed videos dataset.
type Videos struct {
	Rows []Video
}

// VideosFromTable types a raw table as the videos dataset. The frame column
// must parse as an integer on every row.
func VideosFromTable(t *tabular.Table) (*Videos, error) {
	videoIdx := t.ColumnIndex(ColumnVideoID)
	if videoIdx < 0 {
		return nil, &MissingColumnError{Dataset: "videos", Column: ColumnVideoID}
	}
	frameIdx := t.ColumnIndex(ColumnFrame)
	if frameIdx < 0 {
		return nil, &MissingColumnError{Dataset: "videos", Column: ColumnFrame}
	}

	rows := make([]Video, 0, t.Len())
	for i, rec := range t.Rows {
		frame, err := intCell(rec[frameIdx])
		if err != nil {
			return nil, fmt.Errorf("videos row %d: bad frame: %w", i+1, err)
		}
		rows = append(rows, Video{VideoID: rec[videoIdx], Frame: frame})
	}
	return &Videos{Rows: rows}, nil
}

// IDs returns the distinct video ids in sorted order.
func (v *Videos) IDs() []string {
	seen := make(map[string]bool, len(v.Rows))
	ids := make([]string, 0, len(v.Rows))
	for _, row := range v.Rows {
		if !seen[row.VideoID] {
			seen[row.VideoID] = true
			ids = append(ids, row.VideoID)
		}
	}
	sort.Strings(ids)
	return ids
}

// Frames returns the distinct frame numbers in sorted order.
func (v *Videos) Frames() []int {
	seen := make(map[int]bool, len(v.Rows))
	frames := make([]int, 0, len(v.Rows))
	for _, row := range v.Rows {
		if !seen[row.Frame] {
			seen[row.Frame] = true
			frames = append(frames, row.Frame)
		}
	}
	sort.Ints(frames)
	return frames
}

// IDsForFrame returns the set of video ids having the given frame.
func (v *Videos) IDsForFrame(frame int) map[string]bool {
	ids := make(map[string]bool)
	for _, row := range v.Rows {
		if row.Frame == frame {
			ids[row.VideoID] = true
		}
	}
	return ids
}
