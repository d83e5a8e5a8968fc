package commands

import (
	"context"

	"github.com/colonyops/proma/internal/mcptools"
	"github.com/colonyops/proma/internal/proma"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
)

type McpCmd struct {
	flags   *Flags
	app     *proma.App
	version string
}

// NewMcpCmd creates a new mcp command.
func NewMcpCmd(flags *Flags, app *proma.App, version string) *McpCmd {
	return &McpCmd{flags: flags, app: app, version: version}
}

// Register adds the mcp command to the application.
func (cmd *McpCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "mcp",
		Usage:     "Serve the work item tools over MCP (stdio)",
		UsageText: "proma mcp",
		Description: `Starts an MCP server on stdin/stdout exposing proma_create, proma_get,
proma_update, proma_delete, proma_list and proma_report.

All calls run as the identity given by --workspace, --user-id and
--user-name (or the config file). Logs go to the log file, never stdout.`,
		Action: cmd.run,
	})

	return app
}

func (cmd *McpCmd) run(ctx context.Context, c *cli.Command) error {
	ident := cmd.flags.Identity()
	if err := requireIdentity(ident); err != nil {
		return err
	}

	log.Info().Str("workspace_id", ident.WorkspaceID).Str("user_id", ident.UserID).Msg("starting mcp server")
	return server.ServeStdio(mcptools.NewServer(cmd.app.WorkItems, ident, cmd.version))
}
