package commands

import (
	"context"

	"github.com/colonyops/proma/internal/proma"
	"github.com/colonyops/proma/pkg/iojson"
	"github.com/urfave/cli/v3"
)

type GetCmd struct {
	flags *Flags
	app   *proma.App
}

// NewGetCmd creates a new get command.
func NewGetCmd(flags *Flags, app *proma.App) *GetCmd {
	return &GetCmd{flags: flags, app: app}
}

// Register adds the get command to the application.
func (cmd *GetCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "get",
		Usage:     "Show an item with all of its descendants",
		UsageText: "proma get <id>",
		Description: `Prints the item and its descendants as JSON.

An epic includes its tasks and their sub-tasks, a task includes its
sub-tasks. The kind is read from the id prefix.

Examples:
  proma get epic-1f2e...
  proma get task-9a8b...`,
		ShellComplete: ItemIDCompleter(cmd.flags, cmd.app),
		Action:        cmd.run,
	})

	return app
}

func (cmd *GetCmd) run(ctx context.Context, c *cli.Command) error {
	id, err := requireArg(c, "id")
	if err != nil {
		return err
	}

	res, err := cmd.app.WorkItems.GetCascade(ctx, cmd.flags.Identity(), id)
	if err != nil {
		return err
	}

	return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, res)
}
