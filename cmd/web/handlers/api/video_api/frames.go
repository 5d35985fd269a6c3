package video_api

import (
	"github.com/labstack/echo/v4"
	"thirdcoast.systems/redline/cmd/web/handlers/common"
	"thirdcoast.systems/redline/internal/workspace"
)

// HandleFrames returns the distinct frame numbers from the videos dataset.
func HandleFrames(ws *workspace.Workspace) echo.HandlerFunc {
	return func(c echo.Context) error {
		frames, err := ws.Frames()
		if err != nil {
			return common.ErrConflict("datasets not loaded")
		}
		return c.JSON(200, map[string]any{"frames": frames})
	}
}
