package workspace_api

import (
	"github.com/labstack/echo/v4"
	"thirdcoast.systems/redline/internal/labeling"
	"thirdcoast.systems/redline/internal/workspace"
)

// HandleSelect replaces the current selection and returns the resulting view.
func HandleSelect(ws *workspace.Workspace) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req struct {
			VideoID string `json:"videoId"`
			Frame   *int   `json:"frame"`
			Status  string `json:"status"`
		}
		if err := c.Bind(&req); err != nil {
			return c.String(400, "invalid json")
		}
		if req.VideoID == "" {
			return c.String(400, "videoId is required")
		}
		status, err := labeling.ParseStatus(req.Status)
		if err != nil {
			return c.String(400, err.Error())
		}

		view, err := ws.Select(c.Request().Context(), workspace.Selection{
			VideoID: req.VideoID,
			Frame:   req.Frame,
			Status:  status,
		})
		if err != nil {
			return workspaceError(err)
		}
		return c.JSON(200, view)
	}
}
