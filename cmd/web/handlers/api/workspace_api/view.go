package workspace_api

import (
	"github.com/labstack/echo/v4"
	"thirdcoast.systems/redline/internal/workspace"
)

// HandleView rebuilds the current view against the label store and returns it.
func HandleView(ws *workspace.Workspace) echo.HandlerFunc {
	return func(c echo.Context) error {
		view, err := ws.View(c.Request().Context())
		if err != nil {
			return workspaceError(err)
		}
		return c.JSON(200, view)
	}
}
