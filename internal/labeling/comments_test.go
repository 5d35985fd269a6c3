package labeling

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"thirdcoast.systems/redline/pkg/tabular"
)

func TestCommentsFromTable_KeepsPassthroughColumns(t *testing.T) {
	tbl := &tabular.Table{
		Columns: []string{"author", "text_original", "videoId"},
		Rows: [][]string{
			{"ann", "This is a great video!", "ggLajT7aMMk"},
			{"bob", "I learned a lot", "ggLajT7aMMk"},
		},
	}

	c, err := CommentsFromTable(tbl)
	require.NoError(t, err)
	require.Equal(t, []string{"author", "text_original", "videoId"}, c.Columns)
	require.Len(t, c.Rows, 2)
	require.Equal(t, Key{VideoID: "ggLajT7aMMk", Text: "This is a great video!"}, c.Rows[0].Key)
	require.Equal(t, "ann", c.Rows[0].Fields["author"])
}

func TestCommentsFromTable_MissingColumn(t *testing.T) {
	tbl := &tabular.Table{
		Columns: []string{"text", "videoId"},
		Rows:    [][]string{{"hello", "abc"}},
	}

	_, err := CommentsFromTable(tbl)
	require.Error(t, err)

	var missing *MissingColumnError
	require.True(t, errors.As(err, &missing))
	require.Equal(t, "comments", missing.Dataset)
	require.Equal(t, "text_original", missing.Column)
}

func TestKey_UUIDMatchesRowIdentity(t *testing.T) {
	k := Key{VideoID: "ggLajT7aMMk", Text: "This is a great video!"}
	require.Equal(t, "96a791fe-5527-5822-9844-a35df5c67d32", k.UUID().String())
}

func TestVideosFromTable_ParsesFrames(t *testing.T) {
	tbl := &tabular.Table{
		Columns: []string{"videoId", "frame"},
		Rows: [][]string{
			{"b", "2"},
			{"a", "10.0"},
			{"b", "2"},
			{"a", "1"},
		},
	}

	v, err := VideosFromTable(tbl)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, v.IDs())
	require.Equal(t, []int{1, 2, 10}, v.Frames())
	require.Equal(t, map[string]bool{"b": true}, v.IDsForFrame(2))
}

func TestVideosFromTable_BadFrame(t *testing.T) {
	tbl := &tabular.Table{
		Columns: []string{"videoId", "frame"},
		Rows:    [][]string{{"a", "first"}},
	}

	_, err := VideosFromTable(tbl)
	require.ErrorContains(t, err, "bad frame")
}

func TestVideosFromTable_MissingColumn(t *testing.T) {
	tbl := &tabular.Table{
		Columns: []string{"videoId"},
		Rows:    [][]string{{"a"}},
	}

	_, err := VideosFromTable(tbl)
	var missing *MissingColumnError
	require.True(t, errors.As(err, &missing))
	require.Equal(t, "frame", missing.Column)
}
