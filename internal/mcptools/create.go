package mcptools

import (
	"context"

	"github.com/colonyops/proma/internal/core/workitem"
	"github.com/colonyops/proma/internal/proma"
	"github.com/mark3labs/mcp-go/mcp"
)

// CreateTool handles the proma_create MCP tool.
type CreateTool struct{ base }

// NewCreateTool creates a CreateTool.
func NewCreateTool(svc *proma.WorkItemService, ident workitem.Identity) *CreateTool {
	return &CreateTool{base{svc: svc, ident: ident}}
}

// Definition returns the MCP tool definition for registration.
func (t *CreateTool) Definition() mcp.Tool {
	return mcp.NewTool("proma_create",
		mcp.WithDescription(
			"Create an Epic, Task or Sub-task. "+
				"A Task needs epic_id; a Sub-task needs epic_id and task_id. "+
				"start_date defaults to today and due_date to start_date plus 7 days. "+
				"Dates use dd/MM/yyyy. Unknown assignees fall back to the caller.",
		),
		mcp.WithString("type",
			mcp.Required(),
			mcp.Enum(kindNames()...),
			mcp.Description("Kind of work item to create."),
		),
		mcp.WithString("name", mcp.Required(), mcp.Description("Name of the item.")),
		mcp.WithString("epic_id", mcp.Description("Parent epic id (epic-...). Required for Task and Sub-task.")),
		mcp.WithString("task_id", mcp.Description("Parent task id (task-...). Required for Sub-task.")),
		mcp.WithString("description", mcp.Description("Free text description.")),
		mcp.WithString("category", mcp.Description("Free text category.")),
		mcp.WithString("priority", mcp.Enum(priorityNames()...), mcp.Description("Defaults to Medium.")),
		mcp.WithString("status", mcp.Enum(statusNames()...), mcp.Description("Defaults to To-do.")),
		mcp.WithString("assignee_name", mcp.Description("Team member name, matched case-insensitively.")),
		mcp.WithString("start_date", mcp.Description("Start date, dd/MM/yyyy.")),
		mcp.WithString("due_date", mcp.Description("Due date, dd/MM/yyyy. Must not be before start_date.")),
	)
}

// Handle processes the proma_create tool call.
func (t *CreateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	in := proma.CreateInput{
		Type:         req.GetString("type", ""),
		Name:         req.GetString("name", ""),
		EpicID:       req.GetString("epic_id", ""),
		TaskID:       req.GetString("task_id", ""),
		Description:  req.GetString("description", ""),
		Category:     req.GetString("category", ""),
		Priority:     req.GetString("priority", ""),
		Status:       req.GetString("status", ""),
		AssigneeName: req.GetString("assignee_name", ""),
		StartDate:    req.GetString("start_date", ""),
		DueDate:      req.GetString("due_date", ""),
	}

	item, err := t.svc.Create(ctx, t.ident, in)
	if err != nil {
		return toolError(err)
	}
	return jsonResult(item)
}

func kindNames() []string {
	out := make([]string, 0, len(workitem.Kinds))
	for _, k := range workitem.Kinds {
		out = append(out, string(k))
	}
	return out
}

func priorityNames() []string {
	out := make([]string, 0, len(workitem.Priorities))
	for _, p := range workitem.Priorities {
		out = append(out, string(p))
	}
	return out
}

func statusNames() []string {
	out := make([]string, 0, len(workitem.Statuses))
	for _, s := range workitem.Statuses {
		out = append(out, string(s))
	}
	return out
}

func periodNames() []string {
	out := make([]string, 0, len(workitem.Periods))
	for _, p := range workitem.Periods {
		out = append(out, string(p))
	}
	return out
}
