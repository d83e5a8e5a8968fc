// Package mcptools exposes the work item engine as MCP tools.
//
// Each tool is a struct holding the service and the identity the server was
// started with. Definition returns the tool schema and Handle serves a call.
// Caller mistakes (validation, unknown ids, bad prefixes) and lock contention
// come back as tool errors the model can read; other storage failures are
// returned as Go errors.
package mcptools

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/colonyops/proma/internal/core/workitem"
	"github.com/colonyops/proma/internal/proma"
	"github.com/mark3labs/mcp-go/mcp"
)

// base carries what every tool needs.
type base struct {
	svc   *proma.WorkItemService
	ident workitem.Identity
}

// boolArg extracts a boolean argument from a tool request.
func boolArg(req mcp.CallToolRequest, key string, defaultVal bool) bool {
	v, ok := req.GetArguments()[key].(bool)
	if !ok {
		return defaultVal
	}
	return v
}

// stringArgs returns the string arguments among keys that are present in the
// request. Absent keys are left out, so the result is suitable for a sparse
// update.
func stringArgs(req mcp.CallToolRequest, keys ...string) map[string]string {
	args := req.GetArguments()
	out := make(map[string]string)
	for _, k := range keys {
		if v, ok := args[k].(string); ok {
			out[k] = v
		}
	}
	return out
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	bits, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding result: %w", err)
	}
	return mcp.NewToolResultText(string(bits)), nil
}

func toolError(err error) (*mcp.CallToolResult, error) {
	switch {
	case errors.Is(err, workitem.ErrValidation),
		errors.Is(err, workitem.ErrNotFound),
		errors.Is(err, workitem.ErrInvalidIdentifier):
		return mcp.NewToolResultError(err.Error()), nil
	case errors.Is(err, workitem.ErrBusy):
		return mcp.NewToolResultError("the database is busy with another write, retry the call: " + err.Error()), nil
	}
	return nil, err
}
