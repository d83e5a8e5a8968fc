package commands

import (
	"context"
	"fmt"

	"github.com/colonyops/proma/internal/proma"
	"github.com/colonyops/proma/pkg/iojson"
	"github.com/urfave/cli/v3"
)

type CreateCmd struct {
	flags *Flags
	app   *proma.App
	fr    *iojson.FileReader[proma.CreateInput]
	input proma.CreateInput
}

// NewCreateCmd creates a new create command.
func NewCreateCmd(flags *Flags, app *proma.App) *CreateCmd {
	return &CreateCmd{
		flags: flags,
		app:   app,
		fr:    &iojson.FileReader[proma.CreateInput]{},
	}
}

// Register adds the create command to the application.
func (cmd *CreateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "create",
		Usage: "Create an epic, task or sub-task",
		UsageText: `proma create --type <kind> --name <name> [options]

Read from stdin:
  echo '{"type":"Epic","name":"Launch"}' | proma create

Read from file:
  proma create -f item.json`,
		Description: `Creates a work item and prints it as JSON.

A Task needs --epic; a Sub-task needs --epic and --task. The parents do not
have to exist yet. start_date defaults to today and due_date to start_date
plus 7 days. Dates use dd/MM/yyyy.

When --type is omitted the item is read as JSON from --file or stdin, using
the field names of the output (type, name, epic_id, task_id, priority, ...).

Examples:
  proma create --type Epic --name Launch
  proma create --type Task --name Design --epic epic-1f2e...
  proma create --type Sub-task --name Wireframe --epic epic-1f2e... --task task-9a8b...`,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "type", Aliases: []string{"t"}, Usage: "Epic, Task or Sub-task", Destination: &cmd.input.Type},
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "item name", Destination: &cmd.input.Name},
			&cli.StringFlag{Name: "epic", Usage: "parent epic id", Destination: &cmd.input.EpicID},
			&cli.StringFlag{Name: "task", Usage: "parent task id (sub-tasks only)", Destination: &cmd.input.TaskID},
			&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "description", Destination: &cmd.input.Description},
			&cli.StringFlag{Name: "category", Usage: "category", Destination: &cmd.input.Category},
			&cli.StringFlag{Name: "priority", Aliases: []string{"p"}, Usage: "Highest, High, Medium, Low or Lowest", Destination: &cmd.input.Priority},
			&cli.StringFlag{Name: "status", Aliases: []string{"s"}, Usage: "To-do, In-progress or Done", Destination: &cmd.input.Status},
			&cli.StringFlag{Name: "assignee", Aliases: []string{"a"}, Usage: "team member name", Destination: &cmd.input.AssigneeName},
			&cli.StringFlag{Name: "start", Usage: "start date (dd/MM/yyyy)", Destination: &cmd.input.StartDate},
			&cli.StringFlag{Name: "due", Usage: "due date (dd/MM/yyyy)", Destination: &cmd.input.DueDate},
			cmd.fr.Flag(),
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *CreateCmd) run(ctx context.Context, c *cli.Command) error {
	in := cmd.input
	if in.Type == "" || cmd.fr.IsSet() {
		var err error
		in, err = cmd.fr.Read()
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
	}

	item, err := cmd.app.WorkItems.Create(ctx, cmd.flags.Identity(), in)
	if err != nil {
		return err
	}

	return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, item)
}
