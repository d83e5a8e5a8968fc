package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/colonyops/proma/internal/proma"
	"github.com/colonyops/proma/pkg/iojson"
	"github.com/urfave/cli/v3"
)

type UpdateCmd struct {
	flags *Flags
	app   *proma.App
	set   []string
}

// NewUpdateCmd creates a new update command.
func NewUpdateCmd(flags *Flags, app *proma.App) *UpdateCmd {
	return &UpdateCmd{flags: flags, app: app}
}

// Register adds the update command to the application.
func (cmd *UpdateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "update",
		Usage:     "Change fields of an item",
		UsageText: "proma update <id> --set field=value [--set field=value...]",
		Description: `Changes only the given fields and prints the updated item.

Fields: epic_name, task_name, sub_task_name (matching the item's kind),
description, category, priority, status, assignee_name, start_date,
due_date, deadline_extend.

Examples:
  proma update task-9a8b... --set status=Done
  proma update epic-1f2e... --set epic_name="Launch v2" --set due_date=30/06/2026`,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:        "set",
				Usage:       "field=value to change (repeatable)",
				Destination: &cmd.set,
			},
		},
		ShellComplete: ItemIDCompleter(cmd.flags, cmd.app),
		Action:        cmd.run,
	})

	return app
}

func (cmd *UpdateCmd) run(ctx context.Context, c *cli.Command) error {
	id, err := requireArg(c, "id")
	if err != nil {
		return err
	}

	fields, err := parseAssignments(cmd.set)
	if err != nil {
		return err
	}

	item, err := cmd.app.WorkItems.Update(ctx, cmd.flags.Identity(), id, fields)
	if err != nil {
		return err
	}

	return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, item)
}

// parseAssignments turns field=value pairs into a map. A value may be empty;
// a field may not repeat.
func parseAssignments(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --set %q: expected field=value", pair)
		}
		if _, dup := out[key]; dup {
			return nil, fmt.Errorf("field %q set more than once", key)
		}
		out[key] = value
	}
	return out, nil
}
