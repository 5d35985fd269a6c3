package workspace_api

import (
	"github.com/labstack/echo/v4"
	"thirdcoast.systems/redline/cmd/web/handlers/common"
	"thirdcoast.systems/redline/internal/labeling"
	"thirdcoast.systems/redline/internal/workspace"
)

// HandleSetLabel assigns a label to one comment of the current view. The
// assignment stays in memory until the next save.
func HandleSetLabel(ws *workspace.Workspace) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := common.RequireUUIDParam(c, "id")
		if err != nil {
			return err
		}

		var req struct {
			Label int `json:"label"`
		}
		if err := c.Bind(&req); err != nil {
			return c.String(400, "invalid json")
		}
		label := labeling.Label(req.Label)
		if !label.Valid() {
			return c.String(400, "label outside the assignable set")
		}

		if err := ws.SetLabel(c.Request().Context(), id, label); err != nil {
			return workspaceError(err)
		}
		return c.NoContent(204)
	}
}

// HandleClearLabel removes a comment's label, unsaved or persisted. Clearing
// a persisted label takes effect in the store at the next save.
func HandleClearLabel(ws *workspace.Workspace) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := common.RequireUUIDParam(c, "id")
		if err != nil {
			return err
		}

		if err := ws.ClearLabel(c.Request().Context(), id); err != nil {
			return workspaceError(err)
		}
		return c.NoContent(204)
	}
}
