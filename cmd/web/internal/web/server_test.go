package web

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"thirdcoast.systems/redline/internal/config"
	"thirdcoast.systems/redline/internal/dataset"
	"thirdcoast.systems/redline/internal/labeling"
	"thirdcoast.systems/redline/internal/store"
	"thirdcoast.systems/redline/internal/workspace"
)

func newTestServer(t *testing.T) *Webserver {
	t.Helper()
	dir := t.TempDir()

	commentsPath := filepath.Join(dir, "comments.csv")
	require.NoError(t, os.WriteFile(commentsPath, []byte(
		"text_original,videoId\n"+
			"This is a great video!,ggLajT7aMMk\n"+
			"I learned a lot,ggLajT7aMMk\n"+
			"First!,zXy123\n"), 0o644))

	videosPath := filepath.Join(dir, "videos.csv")
	require.NoError(t, os.WriteFile(videosPath, []byte(
		"videoId,frame\n"+
			"ggLajT7aMMk,1\n"+
			"zXy123,2\n"), 0o644))

	conf := &config.Config{
		CommentsPath: commentsPath,
		VideosPath:   videosPath,
		FetchTimeout: time.Second,
		LabelStore:   "file",
		LabelsPath:   filepath.Join(dir, "labeled_comments.csv"),
	}

	ws := workspace.New(&dataset.Loader{Timeout: conf.FetchTimeout}, store.NewFileStore(conf.LabelsPath))
	require.NoError(t, ws.LoadDatasets(context.Background(), conf.CommentsPath, conf.VideosPath))

	s, err := NewWebserver(conf, ws)
	require.NoError(t, err)
	return s
}

func do(t *testing.T, s *Webserver, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decodeView(t *testing.T, rec *httptest.ResponseRecorder) workspace.ViewSnapshot {
	t.Helper()
	var view workspace.ViewSnapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	return view
}

func TestWebserver_Healthz(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/healthz", "")
	require.Equal(t, 200, rec.Code)
	require.Equal(t, "ok", rec.Body.String())
}

func TestWebserver_Metrics(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/metrics", "")
	require.Equal(t, 200, rec.Code)
	require.NotEmpty(t, rec.Body.String())
}

func TestWebserver_VideoDirectory(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/videos/index", "")
	require.Equal(t, 200, rec.Code)
	var videos struct {
		Videos []string `json:"videos"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &videos))
	require.Equal(t, []string{"ggLajT7aMMk", "zXy123"}, videos.Videos)

	rec = do(t, s, http.MethodGet, "/api/videos/frames", "")
	require.Equal(t, 200, rec.Code)
	var frames struct {
		Frames []int `json:"frames"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &frames))
	require.Equal(t, []int{1, 2}, frames.Frames)
}

func TestWebserver_DatasetInfo(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/datasets", "")
	require.Equal(t, 200, rec.Code)
	var info workspace.Info
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	require.Equal(t, 3, info.CommentRows)
	require.Equal(t, 2, info.Videos)
	require.Equal(t, "file", info.Store)
}

func TestWebserver_DatasetReload(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/api/datasets/reload", "")
	require.Equal(t, 200, rec.Code)
	var info workspace.Info
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	require.Equal(t, 3, info.CommentRows)

	// The body may point the reload at a different source.
	grown := filepath.Join(t.TempDir(), "comments.csv")
	require.NoError(t, os.WriteFile(grown, []byte(
		"text_original,videoId\n"+
			"This is a great video!,ggLajT7aMMk\n"+
			"I learned a lot,ggLajT7aMMk\n"+
			"First!,zXy123\n"+
			"Late to the party,zXy123\n"), 0o644))

	rec = do(t, s, http.MethodPost, "/api/datasets/reload", fmt.Sprintf(`{"comments":%q}`, grown))
	require.Equal(t, 200, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	require.Equal(t, 4, info.CommentRows)
	require.Equal(t, grown, info.CommentsSource)

	// A failed reload keeps the datasets that were already loaded.
	rec = do(t, s, http.MethodPost, "/api/datasets/reload", `{"comments":"/nope/missing.csv"}`)
	require.Equal(t, 500, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/datasets", "")
	require.Equal(t, 200, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	require.Equal(t, 4, info.CommentRows)
}

func TestWebserver_LabelingFlow(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPut, "/api/workspace/selection", `{"videoId":"ggLajT7aMMk"}`)
	require.Equal(t, 200, rec.Code)
	view := decodeView(t, rec)
	require.Len(t, view.Rows, 2)
	require.Equal(t, 0, view.Stats.Labeled)

	rec = do(t, s, http.MethodPut, "/api/workspace/labels/"+view.Rows[0].ID.String(), `{"label":2}`)
	require.Equal(t, 204, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/workspace/view", "")
	require.Equal(t, 200, rec.Code)
	got := decodeView(t, rec)
	require.Equal(t, labeling.Label(2), got.Rows[0].Label)
	require.True(t, got.Rows[0].Pending)
	require.Equal(t, 1, got.Stats.Labeled)

	rec = do(t, s, http.MethodPost, "/api/workspace/save", "")
	require.Equal(t, 200, rec.Code)
	var res store.SaveResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Equal(t, store.SaveResult{Saved: 1, Dropped: 1, Kept: 0, Total: 1}, res)

	rec = do(t, s, http.MethodGet, "/api/workspace/view", "")
	require.Equal(t, 200, rec.Code)
	got = decodeView(t, rec)
	require.Equal(t, labeling.Label(2), got.Rows[0].Label)
	require.False(t, got.Rows[0].Pending)

	rec = do(t, s, http.MethodGet, "/api/datasets", "")
	require.Equal(t, 200, rec.Code)
	var info workspace.Info
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	require.Equal(t, 1, info.SavedLabels)
	require.Equal(t, 0, info.PendingLabels)

	rec = do(t, s, http.MethodDelete, "/api/workspace/labels/"+got.Rows[0].ID.String(), "")
	require.Equal(t, 204, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/workspace/view", "")
	got = decodeView(t, rec)
	require.False(t, got.Rows[0].Label.Assigned())
	require.True(t, got.Rows[0].Pending)
}

func TestWebserver_SelectionValidation(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPut, "/api/workspace/selection", `{}`)
	require.Equal(t, 400, rec.Code)

	rec = do(t, s, http.MethodPut, "/api/workspace/selection", `{"videoId":"ggLajT7aMMk","status":"finished"}`)
	require.Equal(t, 400, rec.Code)

	rec = do(t, s, http.MethodPut, "/api/workspace/selection", `{"videoId":"ggLajT7aMMk","status":"unlabeled"}`)
	require.Equal(t, 200, rec.Code)
}

func TestWebserver_ViewRequiresSelection(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/workspace/view", "")
	require.Equal(t, 409, rec.Code)

	rec = do(t, s, http.MethodPost, "/api/workspace/save", "")
	require.Equal(t, 409, rec.Code)
}

func TestWebserver_LabelValidation(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPut, "/api/workspace/selection", `{"videoId":"ggLajT7aMMk"}`)
	require.Equal(t, 200, rec.Code)
	view := decodeView(t, rec)

	rec = do(t, s, http.MethodPut, "/api/workspace/labels/not-a-uuid", `{"label":1}`)
	require.Equal(t, 400, rec.Code)

	rec = do(t, s, http.MethodPut, "/api/workspace/labels/"+view.Rows[0].ID.String(), `{"label":9}`)
	require.Equal(t, 400, rec.Code)

	// A valid UUID that is not part of the current view.
	rec = do(t, s, http.MethodPut, "/api/workspace/labels/a2ae02be-9e2c-4f3c-a274-f193f1f4c53a", `{"label":1}`)
	require.Equal(t, 404, rec.Code)

	rec = do(t, s, http.MethodDelete, "/api/workspace/labels/a2ae02be-9e2c-4f3c-a274-f193f1f4c53a", "")
	require.Equal(t, 404, rec.Code)
}
