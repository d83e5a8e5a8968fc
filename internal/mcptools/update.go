package mcptools

import (
	"context"

	"github.com/colonyops/proma/internal/core/workitem"
	"github.com/colonyops/proma/internal/proma"
	"github.com/mark3labs/mcp-go/mcp"
)

var updateFields = []string{
	workitem.FieldEpicName,
	workitem.FieldTaskName,
	workitem.FieldSubTaskName,
	workitem.FieldDescription,
	workitem.FieldCategory,
	workitem.FieldPriority,
	workitem.FieldStatus,
	workitem.FieldAssigneeName,
	workitem.FieldStartDate,
	workitem.FieldDueDate,
	workitem.FieldDeadlineExtend,
}

// UpdateTool handles the proma_update MCP tool.
type UpdateTool struct{ base }

// NewUpdateTool creates an UpdateTool.
func NewUpdateTool(svc *proma.WorkItemService, ident workitem.Identity) *UpdateTool {
	return &UpdateTool{base{svc: svc, ident: ident}}
}

// Definition returns the MCP tool definition for registration.
func (t *UpdateTool) Definition() mcp.Tool {
	return mcp.NewTool("proma_update",
		mcp.WithDescription(
			"Update fields of a work item. Only the fields you pass are changed. "+
				"Use the name field matching the item's kind (epic_name, task_name or sub_task_name). "+
				"At least one field is required.",
		),
		mcp.WithString("id", mcp.Required(), mcp.Description("Item id: epic-..., task-... or subtask-...")),
		mcp.WithString(workitem.FieldEpicName, mcp.Description("New name of an epic.")),
		mcp.WithString(workitem.FieldTaskName, mcp.Description("New name of a task.")),
		mcp.WithString(workitem.FieldSubTaskName, mcp.Description("New name of a sub-task.")),
		mcp.WithString(workitem.FieldDescription, mcp.Description("New description.")),
		mcp.WithString(workitem.FieldCategory, mcp.Description("New category.")),
		mcp.WithString(workitem.FieldPriority, mcp.Enum(priorityNames()...)),
		mcp.WithString(workitem.FieldStatus, mcp.Enum(statusNames()...)),
		mcp.WithString(workitem.FieldAssigneeName, mcp.Description("Team member name; unknown names fall back to the caller.")),
		mcp.WithString(workitem.FieldStartDate, mcp.Description("dd/MM/yyyy")),
		mcp.WithString(workitem.FieldDueDate, mcp.Description("dd/MM/yyyy")),
		mcp.WithString(workitem.FieldDeadlineExtend, mcp.Description("Extended deadline, dd/MM/yyyy.")),
	)
}

// Handle processes the proma_update tool call.
func (t *UpdateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	item, err := t.svc.Update(ctx, t.ident, req.GetString("id", ""), stringArgs(req, updateFields...))
	if err != nil {
		return toolError(err)
	}
	return jsonResult(item)
}
