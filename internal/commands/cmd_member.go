package commands

import (
	"context"
	"fmt"

	"github.com/colonyops/proma/internal/proma"
	"github.com/colonyops/proma/pkg/iojson"
	"github.com/urfave/cli/v3"
)

// MemberCmd implements the proma member command group.
type MemberCmd struct {
	flags *Flags
	app   *proma.App

	// add flags
	add proma.AddMemberInput
}

// NewMemberCmd creates a new member command.
func NewMemberCmd(flags *Flags, app *proma.App) *MemberCmd {
	return &MemberCmd{flags: flags, app: app}
}

// Register adds the member command to the application.
func (cmd *MemberCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "member",
		Usage: "Manage workspace team members",
		Description: `Team members are the names assignees resolve against. Names are matched
case-insensitively; an unknown name assigns the item to the caller.

Examples:
  proma member add --name "Trần Lan" --team Platform
  proma member ls
  proma member rm member-4c1d...`,
		Commands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Add a team member",
				UsageText: "proma member add --name <name> [--team <team>] [--email <email>]",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "member name", Required: true, Destination: &cmd.add.Name},
					&cli.StringFlag{Name: "team", Usage: "team name", Destination: &cmd.add.Team},
					&cli.StringFlag{Name: "email", Usage: "email address", Destination: &cmd.add.Email},
				},
				Action: cmd.runAdd,
			},
			{
				Name:      "list",
				Aliases:   []string{"ls"},
				Usage:     "List team members as JSON lines",
				UsageText: "proma member list",
				Action:    cmd.runList,
			},
			{
				Name:      "remove",
				Aliases:   []string{"rm"},
				Usage:     "Remove a team member",
				UsageText: "proma member remove <member-id>",
				Action:    cmd.runRemove,
			},
		},
	})

	return app
}

func (cmd *MemberCmd) runAdd(ctx context.Context, c *cli.Command) error {
	m, err := cmd.app.Members.Add(ctx, cmd.flags.Identity().WorkspaceID, cmd.add)
	if err != nil {
		return err
	}
	return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, m)
}

func (cmd *MemberCmd) runList(ctx context.Context, c *cli.Command) error {
	members, err := cmd.app.Members.List(ctx, cmd.flags.Identity().WorkspaceID)
	if err != nil {
		return err
	}
	for _, m := range members {
		if err := iojson.WriteLine(c.Root().Writer, m); err != nil {
			return err
		}
	}
	return nil
}

func (cmd *MemberCmd) runRemove(ctx context.Context, c *cli.Command) error {
	id, err := requireArg(c, "member-id")
	if err != nil {
		return err
	}
	if err := cmd.app.Members.Remove(ctx, cmd.flags.Identity().WorkspaceID, id); err != nil {
		return err
	}
	_, err = fmt.Fprintf(c.Root().Writer, "removed %s\n", id)
	return err
}
