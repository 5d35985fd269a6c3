package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"thirdcoast.systems/redline/internal/labeling"
)

var viewColumns = []string{"text_original", "videoId"}

func viewRow(videoID, text string, label labeling.Label) labeling.Row {
	k := labeling.Key{VideoID: videoID, Text: text}
	return labeling.Row{
		ID:  k.UUID(),
		Key: k,
		Fields: map[string]string{
			labeling.ColumnText:    text,
			labeling.ColumnVideoID: videoID,
		},
		Label: label,
	}
}

func view(rows ...labeling.Row) *labeling.View {
	return &labeling.View{Columns: viewColumns, Rows: rows}
}

func tempStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "labeled_comments.csv"))
}

func TestFileStore_Load_MissingFileIsEmpty(t *testing.T) {
	s := tempStore(t)
	set, err := s.Load(context.Background())
	require.NoError(t, err)
	require.Empty(t, set)
}

func TestFileStore_SaveThenLoad(t *testing.T) {
	s := tempStore(t)

	// First session: two comments for vA, only t1 gets a label.
	res, err := s.Save(context.Background(), view(
		viewRow("vA", "t1", 2),
		viewRow("vA", "t2", labeling.LabelNone),
	))
	require.NoError(t, err)
	require.Equal(t, SaveResult{Saved: 1, Dropped: 1, Kept: 0, Total: 1}, res)

	// Second session: the merge recovers t1, the operator labels t2.
	set, err := s.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, labeling.LabelSet{
		{VideoID: "vA", Text: "t1"}: 2,
	}, set)

	res, err = s.Save(context.Background(), view(
		viewRow("vA", "t1", 2),
		viewRow("vA", "t2", 3),
	))
	require.NoError(t, err)
	require.Equal(t, SaveResult{Saved: 2, Dropped: 0, Kept: 0, Total: 2}, res)

	set, err = s.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, labeling.LabelSet{
		{VideoID: "vA", Text: "t1"}: 2,
		{VideoID: "vA", Text: "t2"}: 3,
	}, set)
}

func TestFileStore_Save_KeepsRowsOutsideView(t *testing.T) {
	s := tempStore(t)

	_, err := s.Save(context.Background(), view(viewRow("vB", "other video's row", 1)))
	require.NoError(t, err)

	// A later save for vA must not disturb vB's row.
	res, err := s.Save(context.Background(), view(viewRow("vA", "t1", 3)))
	require.NoError(t, err)
	require.Equal(t, SaveResult{Saved: 1, Dropped: 0, Kept: 1, Total: 2}, res)

	set, err := s.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, labeling.Label(1), set[labeling.Key{VideoID: "vB", Text: "other video's row"}])
	require.Equal(t, labeling.Label(3), set[labeling.Key{VideoID: "vA", Text: "t1"}])
}

func TestFileStore_Save_MatchesKeysPairwise(t *testing.T) {
	s := tempStore(t)

	// Prior rows share a text with one view row and a video with another,
	// but neither matches as an exact (videoId, text) pair.
	_, err := s.Save(context.Background(), view(
		viewRow("v1", "tX", 1),
		viewRow("v2", "tY", 2),
	))
	require.NoError(t, err)

	res, err := s.Save(context.Background(), view(viewRow("v2", "tX", 3)))
	require.NoError(t, err)
	require.Equal(t, 2, res.Kept)
	require.Equal(t, 3, res.Total)

	set, err := s.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, labeling.LabelSet{
		{VideoID: "v1", Text: "tX"}: 1,
		{VideoID: "v2", Text: "tY"}: 2,
		{VideoID: "v2", Text: "tX"}: 3,
	}, set)
}

func TestFileStore_Save_ClearedLabelRemovesRow(t *testing.T) {
	s := tempStore(t)

	_, err := s.Save(context.Background(), view(viewRow("vA", "t1", 2)))
	require.NoError(t, err)

	res, err := s.Save(context.Background(), view(viewRow("vA", "t1", labeling.LabelNone)))
	require.NoError(t, err)
	require.Equal(t, SaveResult{Saved: 0, Dropped: 1, Kept: 0, Total: 0}, res)

	set, err := s.Load(context.Background())
	require.NoError(t, err)
	require.Empty(t, set)
}

func TestFileStore_Save_UnionsColumns(t *testing.T) {
	s := tempStore(t)

	_, err := s.Save(context.Background(), view(viewRow("vA", "t1", 1)))
	require.NoError(t, err)

	// A reloaded comments dataset gained an author column.
	wide := &labeling.View{
		Columns: []string{"text_original", "videoId", "author"},
		Rows: []labeling.Row{{
			Key: labeling.Key{VideoID: "vB", Text: "t9"},
			Fields: map[string]string{
				"text_original": "t9",
				"videoId":       "vB",
				"author":        "ann",
			},
			Label: 2,
		}},
	}
	_, err = s.Save(context.Background(), wide)
	require.NoError(t, err)

	data, err := os.ReadFile(s.Path)
	require.NoError(t, err)
	require.Equal(t,
		"text_original,videoId,label,author\nt1,vA,1,\nt9,vB,2,ann\n",
		string(data))
}

func TestFileStore_CorruptFile(t *testing.T) {
	s := tempStore(t)
	require.NoError(t, os.WriteFile(s.Path, []byte("text_original,videoId,label\nt1,vA,banana\n"), 0o644))

	// Merging degrades to no labels.
	set, err := s.Load(context.Background())
	require.NoError(t, err)
	require.Empty(t, set)

	// Saving refuses to overwrite what it could not read.
	_, err = s.Save(context.Background(), view(viewRow("vA", "t1", 2)))
	require.ErrorContains(t, err, "read existing labels")

	data, err := os.ReadFile(s.Path)
	require.NoError(t, err)
	require.Equal(t, "text_original,videoId,label\nt1,vA,banana\n", string(data))
}

func TestFileStore_Load_FloatLabels(t *testing.T) {
	// Earlier exports rendered the nullable label column as floats.
	s := tempStore(t)
	require.NoError(t, os.WriteFile(s.Path, []byte("text_original,videoId,label\nt1,vA,2.0\n"), 0o644))

	set, err := s.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, labeling.Label(2), set[labeling.Key{VideoID: "vA", Text: "t1"}])
}

func TestFileStore_Load_MissingKeyColumnsDegrade(t *testing.T) {
	s := tempStore(t)
	require.NoError(t, os.WriteFile(s.Path, []byte("body,label\nt1,2\n"), 0o644))

	set, err := s.Load(context.Background())
	require.NoError(t, err)
	require.Empty(t, set)
}
