package commands

import (
	"context"
	"fmt"

	"github.com/colonyops/proma/internal/proma"
	"github.com/urfave/cli/v3"
)

// ItemIDCompleter returns a ShellCompleteFunc that suggests the caller's
// work item ids as positional completions. Set this as the ShellComplete
// field on any cli.Command that takes an item id.
//
// When the user's last typed argument starts with "-", it falls back to the
// default flag completion behavior.
func ItemIDCompleter(flags *Flags, app *proma.App) cli.ShellCompleteFunc {
	return func(ctx context.Context, cmd *cli.Command) {
		if args := cmd.Args(); args.Present() {
			last := args.Slice()[args.Len()-1]
			if len(last) > 0 && last[0] == '-' {
				cli.DefaultCompleteWithFlags(ctx, cmd)
				return
			}
		}

		if app.WorkItems == nil {
			return
		}

		items, err := app.WorkItems.List(ctx, flags.Identity(), proma.ListFilter{})
		if err != nil {
			return
		}

		w := cmd.Root().Writer
		for _, it := range items {
			_, _ = fmt.Fprintln(w, it.ID())
		}
	}
}
