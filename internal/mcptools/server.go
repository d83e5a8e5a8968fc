package mcptools

import (
	"github.com/colonyops/proma/internal/core/workitem"
	"github.com/colonyops/proma/internal/proma"
	"github.com/mark3labs/mcp-go/server"
)

const instructions = `proma manages Epic > Task > Sub-task work items.
Ids carry their kind as a prefix (epic-, task-, subtask-). Deletes cascade to
descendants and preview by default; confirm with the user before calling
proma_delete with dry_run=false.`

// NewServer creates an MCP server exposing the work item tools for ident.
func NewServer(svc *proma.WorkItemService, ident workitem.Identity, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"proma",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)

	createTool := NewCreateTool(svc, ident)
	s.AddTool(createTool.Definition(), createTool.Handle)

	getTool := NewGetTool(svc, ident)
	s.AddTool(getTool.Definition(), getTool.Handle)

	deleteTool := NewDeleteTool(svc, ident)
	s.AddTool(deleteTool.Definition(), deleteTool.Handle)

	updateTool := NewUpdateTool(svc, ident)
	s.AddTool(updateTool.Definition(), updateTool.Handle)

	listTool := NewListTool(svc, ident)
	s.AddTool(listTool.Definition(), listTool.Handle)

	reportTool := NewReportTool(svc, ident)
	s.AddTool(reportTool.Definition(), reportTool.Handle)

	return s
}
