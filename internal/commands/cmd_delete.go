package commands

import (
	"context"

	"github.com/colonyops/proma/internal/proma"
	"github.com/colonyops/proma/pkg/iojson"
	"github.com/urfave/cli/v3"
)

type DeleteCmd struct {
	flags  *Flags
	app    *proma.App
	dryRun bool
}

// NewDeleteCmd creates a new delete command.
func NewDeleteCmd(flags *Flags, app *proma.App) *DeleteCmd {
	return &DeleteCmd{flags: flags, app: app}
}

// Register adds the delete command to the application.
func (cmd *DeleteCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "delete",
		Aliases:   []string{"rm"},
		Usage:     "Delete an item and all of its descendants",
		UsageText: "proma delete [--dry-run=false] <id>",
		Description: `Deletes the item together with everything below it.

By default nothing is removed: the command prints what would be deleted.
Pass --dry-run=false to delete. The whole hierarchy is removed in one
transaction.

Examples:
  proma delete epic-1f2e...                  # preview
  proma delete --dry-run=false epic-1f2e...  # delete`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "dry-run",
				Usage:       "only show what would be deleted",
				Value:       true,
				Destination: &cmd.dryRun,
			},
		},
		ShellComplete: ItemIDCompleter(cmd.flags, cmd.app),
		Action:        cmd.run,
	})

	return app
}

func (cmd *DeleteCmd) run(ctx context.Context, c *cli.Command) error {
	id, err := requireArg(c, "id")
	if err != nil {
		return err
	}

	res, err := cmd.app.WorkItems.DeleteCascade(ctx, cmd.flags.Identity(), id, cmd.dryRun)
	if err != nil {
		return err
	}

	return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, res)
}
