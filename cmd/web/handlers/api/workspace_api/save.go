package workspace_api

import (
	"errors"
	"log/slog"

	"github.com/labstack/echo/v4"
	"thirdcoast.systems/redline/cmd/web/handlers/common"
	"thirdcoast.systems/redline/internal/workspace"
)

// HandleSave persists the current view to the label store. On failure the
// unsaved assignments stay in memory so the operator can retry.
func HandleSave(ws *workspace.Workspace) echo.HandlerFunc {
	return func(c echo.Context) error {
		res, err := ws.Save(c.Request().Context())
		if err != nil {
			if errors.Is(err, workspace.ErrNotLoaded) || errors.Is(err, workspace.ErrNoSelection) {
				return workspaceError(err)
			}
			slog.Error("save failed, unsaved labels kept for retry", "error", err)
			return common.ErrInternal("save failed: " + err.Error())
		}
		return c.JSON(200, res)
	}
}
