package mcptools

import (
	"context"

	"github.com/colonyops/proma/internal/core/workitem"
	"github.com/colonyops/proma/internal/proma"
	"github.com/mark3labs/mcp-go/mcp"
)

// ListTool handles the proma_list MCP tool.
type ListTool struct{ base }

// NewListTool creates a ListTool.
func NewListTool(svc *proma.WorkItemService, ident workitem.Identity) *ListTool {
	return &ListTool{base{svc: svc, ident: ident}}
}

// Definition returns the MCP tool definition for registration.
func (t *ListTool) Definition() mcp.Tool {
	return mcp.NewTool("proma_list",
		mcp.WithDescription(
			"List work items, optionally filtered by kind, time period and assignee. "+
				"Periods are evaluated on due_date, falling back to start_date. "+
				"Set tree=true to group items as Epic > Task > Sub-task.",
		),
		mcp.WithString("scope", mcp.Enum(append([]string{"All"}, kindNames()...)...), mcp.Description("Defaults to All.")),
		mcp.WithString("time_period", mcp.Enum(periodNames()...), mcp.Description("Defaults to all.")),
		mcp.WithString("assignee", mcp.Description("Case-insensitive substring of the assignee name.")),
		mcp.WithBoolean("tree", mcp.Description("Group into a hierarchy instead of a flat list.")),
	)
}

// Handle processes the proma_list tool call.
func (t *ListTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filter := proma.ListFilter{
		Scope:    req.GetString("scope", ""),
		Period:   req.GetString("time_period", ""),
		Assignee: req.GetString("assignee", ""),
	}

	if boolArg(req, "tree", false) {
		roots, err := t.svc.ListTree(ctx, t.ident, filter)
		if err != nil {
			return toolError(err)
		}
		return jsonResult(map[string]any{"total_roots": len(roots), "tree": roots})
	}

	items, err := t.svc.List(ctx, t.ident, filter)
	if err != nil {
		return toolError(err)
	}
	return jsonResult(map[string]any{"total_count": len(items), "items": items})
}
