package commands

import (
	"fmt"
	"strings"

	"github.com/colonyops/proma/internal/core/workitem"
	"github.com/urfave/cli/v3"
)

// requireArg returns the first positional argument.
func requireArg(c *cli.Command, name string) (string, error) {
	v := strings.TrimSpace(c.Args().First())
	if v == "" {
		return "", fmt.Errorf("missing <%s> argument", name)
	}
	return v, nil
}

func requireIdentity(ident workitem.Identity) error {
	if ident.WorkspaceID == "" || ident.UserID == "" {
		return fmt.Errorf("workspace and user are required: pass --workspace and --user-id or set identity in the config file")
	}
	return nil
}
