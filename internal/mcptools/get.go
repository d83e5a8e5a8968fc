package mcptools

import (
	"context"

	"github.com/colonyops/proma/internal/core/workitem"
	"github.com/colonyops/proma/internal/proma"
	"github.com/mark3labs/mcp-go/mcp"
)

// GetTool handles the proma_get MCP tool.
type GetTool struct{ base }

// NewGetTool creates a GetTool.
func NewGetTool(svc *proma.WorkItemService, ident workitem.Identity) *GetTool {
	return &GetTool{base{svc: svc, ident: ident}}
}

// Definition returns the MCP tool definition for registration.
func (t *GetTool) Definition() mcp.Tool {
	return mcp.NewTool("proma_get",
		mcp.WithDescription(
			"Get a work item with all of its descendants. "+
				"An epic returns its tasks and their sub-tasks; a task returns its sub-tasks.",
		),
		mcp.WithString("id", mcp.Required(), mcp.Description("Item id: epic-..., task-... or subtask-...")),
	)
}

// Handle processes the proma_get tool call.
func (t *GetTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res, err := t.svc.GetCascade(ctx, t.ident, req.GetString("id", ""))
	if err != nil {
		return toolError(err)
	}
	return jsonResult(res)
}
