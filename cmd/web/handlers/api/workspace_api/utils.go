// package workspace_api provides labeling session API handlers.
package workspace_api

import (
	"errors"

	"thirdcoast.systems/redline/cmd/web/handlers/common"
	"thirdcoast.systems/redline/internal/workspace"
)

// workspaceError maps workspace sentinels to HTTP errors.
func workspaceError(err error) error {
	switch {
	case errors.Is(err, workspace.ErrNotLoaded):
		return common.ErrConflict("datasets not loaded")
	case errors.Is(err, workspace.ErrNoSelection):
		return common.ErrConflict("no video selected")
	case errors.Is(err, workspace.ErrRowNotInView):
		return common.ErrNotFound("comment not in the current view")
	default:
		return common.ErrInternal(err.Error())
	}
}
