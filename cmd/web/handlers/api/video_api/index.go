// package video_api provides video directory API handlers.
package video_api

import (
	"github.com/labstack/echo/v4"
	"thirdcoast.systems/redline/cmd/web/handlers/common"
	"thirdcoast.systems/redline/internal/workspace"
)

// HandleIndex returns the distinct video ids from the videos dataset.
func HandleIndex(ws *workspace.Workspace) echo.HandlerFunc {
	return func(c echo.Context) error {
		ids, err := ws.VideoIDs()
		if err != nil {
			return common.ErrConflict("datasets not loaded")
		}
		return c.JSON(200, map[string]any{"videos": ids})
	}
}
