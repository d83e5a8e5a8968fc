package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/colonyops/proma/internal/core/workitem"
	"github.com/colonyops/proma/internal/proma"
	"github.com/colonyops/proma/pkg/iojson"
	"github.com/urfave/cli/v3"
)

type ListCmd struct {
	flags  *Flags
	app    *proma.App
	filter proma.ListFilter
	tree   bool
	format string
}

// NewListCmd creates a new list command.
func NewListCmd(flags *Flags, app *proma.App) *ListCmd {
	return &ListCmd{flags: flags, app: app}
}

// Register adds the list command to the application.
func (cmd *ListCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "list",
		Aliases:   []string{"ls"},
		Usage:     "List work items",
		UsageText: "proma list [--scope <kind>] [--period <period>] [--assignee <name>] [--tree]",
		Description: `Lists work items as JSON lines, oldest first.

Periods are evaluated on due_date, falling back to start_date, relative to
today in the configured timezone:
  today, this_week, this_month, due_soon (next 3 days), next_month,
  overdue (past due and not Done)

Items with unparseable dates are left out of dated periods.

With --tree the items are grouped Epic > Task > Sub-task. Use --format text
for an indented outline.

Examples:
  proma list
  proma list --scope Task --period overdue
  proma list --assignee lan --tree --format text`,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "scope", Usage: "All, Epic, Task or Sub-task", Value: "All", Destination: &cmd.filter.Scope},
			&cli.StringFlag{Name: "period", Usage: "time period filter", Destination: &cmd.filter.Period},
			&cli.StringFlag{Name: "assignee", Aliases: []string{"a"}, Usage: "assignee name contains", Destination: &cmd.filter.Assignee},
			&cli.BoolFlag{Name: "tree", Usage: "group into a hierarchy", Destination: &cmd.tree},
			&cli.StringFlag{Name: "format", Usage: "output format (json, text)", Value: "json", Destination: &cmd.format},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ListCmd) run(ctx context.Context, c *cli.Command) error {
	ident := cmd.flags.Identity()
	w := c.Root().Writer

	if cmd.tree {
		roots, err := cmd.app.WorkItems.ListTree(ctx, ident, cmd.filter)
		if err != nil {
			return err
		}
		if cmd.format == "text" {
			writeOutline(w, newOutlineStyles(w), roots, 0)
			return nil
		}
		return iojson.WriteWith(w, c.Root().ErrWriter, roots)
	}

	items, err := cmd.app.WorkItems.List(ctx, ident, cmd.filter)
	if err != nil {
		return err
	}

	st := newOutlineStyles(w)
	for _, item := range items {
		if cmd.format == "text" {
			_, _ = fmt.Fprintln(w, st.line(item))
			continue
		}
		if err := iojson.WriteLine(w, item); err != nil {
			return err
		}
	}
	return nil
}

// outlineStyles colors the text outline. Rendering through a renderer bound
// to the output writer drops colors when that writer is not a terminal.
type outlineStyles struct {
	kinds map[workitem.Kind]lipgloss.Style
	done  lipgloss.Style
	meta  lipgloss.Style
}

func newOutlineStyles(w io.Writer) outlineStyles {
	r := lipgloss.NewRenderer(w)
	return outlineStyles{
		kinds: map[workitem.Kind]lipgloss.Style{
			workitem.KindEpic:    r.NewStyle().Foreground(lipgloss.Color("5")),
			workitem.KindTask:    r.NewStyle().Foreground(lipgloss.Color("4")),
			workitem.KindSubTask: r.NewStyle().Foreground(lipgloss.Color("6")),
		},
		done: r.NewStyle().Foreground(lipgloss.Color("2")),
		meta: r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

func writeOutline(w io.Writer, st outlineStyles, nodes []*workitem.Node, depth int) {
	for _, n := range nodes {
		_, _ = fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", depth), st.line(n.Item))
		writeOutline(w, st, n.Children, depth+1)
	}
}

func (st outlineStyles) line(it workitem.Item) string {
	status := string(it.Status)
	if it.Status == workitem.StatusDone {
		status = st.done.Render(status)
	}
	meta := fmt.Sprintf("(%s, %s, due %s, %s)", status, it.Priority, it.EffectiveDue(), it.AssigneeName)
	return fmt.Sprintf("%s %s  %s  %s",
		st.kinds[it.Type].Render("["+string(it.Type)+"]"), it.ID(), it.Name(), st.meta.Render(meta))
}
