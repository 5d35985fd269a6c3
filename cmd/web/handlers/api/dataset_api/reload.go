package dataset_api

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"thirdcoast.systems/redline/cmd/web/handlers/common"
	"thirdcoast.systems/redline/internal/config"
	"thirdcoast.systems/redline/internal/workspace"
)

// HandleReload refetches both datasets. The request body may override either
// source location; anything left empty falls back to the configured path. On
// failure the workspace keeps serving the previously loaded datasets.
func HandleReload(ws *workspace.Workspace, conf *config.Config) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := struct {
			Comments string `json:"comments"`
			Videos   string `json:"videos"`
		}{}
		if err := c.Bind(&req); err != nil {
			return c.String(400, "invalid json")
		}

		comments := conf.CommentsPath
		if req.Comments != "" {
			comments = req.Comments
		}
		videos := conf.VideosPath
		if req.Videos != "" {
			videos = req.Videos
		}

		if err := ws.LoadDatasets(c.Request().Context(), comments, videos); err != nil {
			slog.Error("dataset reload failed", "error", err)
			return common.ErrInternal("dataset reload failed: " + err.Error())
		}

		info, err := ws.Info(c.Request().Context())
		if err != nil {
			return common.ErrInternal(err.Error())
		}
		return c.JSON(200, info)
	}
}
