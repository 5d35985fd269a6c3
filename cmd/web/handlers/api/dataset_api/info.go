// package dataset_api provides dataset-related API handlers.
package dataset_api

import (
	"errors"

	"github.com/labstack/echo/v4"
	"thirdcoast.systems/redline/cmd/web/handlers/common"
	"thirdcoast.systems/redline/internal/workspace"
)

// HandleInfo reports the loaded datasets and the label store state.
func HandleInfo(ws *workspace.Workspace) echo.HandlerFunc {
	return func(c echo.Context) error {
		info, err := ws.Info(c.Request().Context())
		if err != nil {
			if errors.Is(err, workspace.ErrNotLoaded) {
				return common.ErrConflict("datasets not loaded")
			}
			return common.ErrInternal(err.Error())
		}
		return c.JSON(200, info)
	}
}
