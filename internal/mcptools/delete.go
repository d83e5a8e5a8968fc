package mcptools

import (
	"context"

	"github.com/colonyops/proma/internal/core/workitem"
	"github.com/colonyops/proma/internal/proma"
	"github.com/mark3labs/mcp-go/mcp"
)

// DeleteTool handles the proma_delete MCP tool.
type DeleteTool struct{ base }

// NewDeleteTool creates a DeleteTool.
func NewDeleteTool(svc *proma.WorkItemService, ident workitem.Identity) *DeleteTool {
	return &DeleteTool{base{svc: svc, ident: ident}}
}

// Definition returns the MCP tool definition for registration.
func (t *DeleteTool) Definition() mcp.Tool {
	return mcp.NewTool("proma_delete",
		mcp.WithDescription(
			"Delete a work item and all of its descendants. "+
				"dry_run defaults to true and only previews what would be removed; "+
				"show the preview to the user and call again with dry_run=false to delete.",
		),
		mcp.WithString("id", mcp.Required(), mcp.Description("Item id: epic-..., task-... or subtask-...")),
		mcp.WithBoolean("dry_run", mcp.Description("Preview only (default true).")),
	)
}

// Handle processes the proma_delete tool call.
func (t *DeleteTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res, err := t.svc.DeleteCascade(ctx, t.ident, req.GetString("id", ""), boolArg(req, "dry_run", true))
	if err != nil {
		return toolError(err)
	}
	return jsonResult(res)
}
