package mcptools

import (
	"context"

	"github.com/colonyops/proma/internal/core/workitem"
	"github.com/colonyops/proma/internal/proma"
	"github.com/mark3labs/mcp-go/mcp"
)

// ReportTool handles the proma_report MCP tool.
type ReportTool struct{ base }

// NewReportTool creates a ReportTool.
func NewReportTool(svc *proma.WorkItemService, ident workitem.Identity) *ReportTool {
	return &ReportTool{base{svc: svc, ident: ident}}
}

// Definition returns the MCP tool definition for registration.
func (t *ReportTool) Definition() mcp.Tool {
	return mcp.NewTool("proma_report",
		mcp.WithDescription(
			"Summarize work items for a time period: counts by type, status and priority, "+
				"due soon and overdue counts, and the most recently updated items. "+
				"Optionally adds a per-assignee breakdown and alert lists.",
		),
		mcp.WithString("time_period", mcp.Enum(periodNames()...), mcp.Description("Defaults to this_week.")),
		mcp.WithString("scope", mcp.Enum(append([]string{"All"}, kindNames()...)...), mcp.Description("Defaults to All.")),
		mcp.WithBoolean("include_assignee_breakdown", mcp.Description("Add per-assignee totals (default true).")),
		mcp.WithBoolean("include_alerts", mcp.Description("Add due soon, overdue and high priority lists (default true).")),
	)
}

// Handle processes the proma_report tool call.
func (t *ReportTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	r, err := t.svc.Report(ctx, t.ident, proma.ReportRequest{
		Period:           req.GetString("time_period", ""),
		Scope:            req.GetString("scope", ""),
		IncludeAssignees: boolArg(req, "include_assignee_breakdown", true),
		IncludeAlerts:    boolArg(req, "include_alerts", true),
	})
	if err != nil {
		return toolError(err)
	}
	return jsonResult(r)
}
