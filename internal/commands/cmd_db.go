package commands

import (
	"context"

	"github.com/colonyops/proma/internal/data/db"
	"github.com/colonyops/proma/internal/proma"
	"github.com/colonyops/proma/pkg/iojson"
	"github.com/urfave/cli/v3"
)

type DBCmd struct {
	flags *Flags
	app   *proma.App
	steps int
}

// NewDBCmd creates a new db command.
func NewDBCmd(flags *Flags, app *proma.App) *DBCmd {
	return &DBCmd{flags: flags, app: app}
}

// Register adds the db command to the application.
func (cmd *DBCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "db",
		Usage: "Database maintenance",
		Commands: []*cli.Command{
			{
				Name:      "rollback",
				Usage:     "Revert the most recent schema migrations",
				UsageText: "proma db rollback [--steps N]",
				Description: `Reverts the last N applied schema migrations, newest first.

Use this before downgrading to a build with an older schema. Any later
command run by a newer build applies the migrations again.`,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:        "steps",
						Usage:       "number of migrations to revert",
						Value:       1,
						Destination: &cmd.steps,
					},
				},
				Action: cmd.runRollback,
			},
		},
	})

	return app
}

type rollbackResult struct {
	Reverted int `json:"reverted"`
}

func (cmd *DBCmd) runRollback(ctx context.Context, c *cli.Command) error {
	if err := db.MigrateDown(ctx, cmd.app.DB.Conn(), cmd.steps); err != nil {
		return err
	}

	return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, rollbackResult{Reverted: cmd.steps})
}
