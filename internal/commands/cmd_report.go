package commands

import (
	"context"

	"github.com/colonyops/proma/internal/proma"
	"github.com/colonyops/proma/pkg/iojson"
	"github.com/urfave/cli/v3"
)

type ReportCmd struct {
	flags *Flags
	app   *proma.App
	req   proma.ReportRequest
}

// NewReportCmd creates a new report command.
func NewReportCmd(flags *Flags, app *proma.App) *ReportCmd {
	return &ReportCmd{flags: flags, app: app}
}

// Register adds the report command to the application.
func (cmd *ReportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "report",
		Usage:     "Summarize work items for a time period",
		UsageText: "proma report [--period <period>] [--scope <kind>] [--assignees] [--alerts]",
		Description: `Prints a JSON report: counts by type, status and priority, due soon and
overdue counts, completions in the period, and recent activity.

Examples:
  proma report
  proma report --period this_month --assignees --alerts
  proma report --period all --scope Task`,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "period", Usage: "time period (default this_week)", Value: "this_week", Destination: &cmd.req.Period},
			&cli.StringFlag{Name: "scope", Usage: "All, Epic, Task or Sub-task", Value: "all", Destination: &cmd.req.Scope},
			&cli.BoolFlag{Name: "assignees", Usage: "include per-assignee breakdown", Destination: &cmd.req.IncludeAssignees},
			&cli.BoolFlag{Name: "alerts", Usage: "include due soon, overdue and high priority lists", Destination: &cmd.req.IncludeAlerts},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ReportCmd) run(ctx context.Context, c *cli.Command) error {
	r, err := cmd.app.WorkItems.Report(ctx, cmd.flags.Identity(), cmd.req)
	if err != nil {
		return err
	}
	return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, r)
}
