package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/colonyops/proma/internal/core/config"
	"github.com/colonyops/proma/pkg/iojson"
	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"
)

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "proma config validate [options]",
				Description: "Validates the configuration file, checking the timezone, log level and file paths.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

type validationOutput struct {
	Valid    bool                       `json:"valid"`
	Errors   []fieldError               `json:"errors,omitempty"`
	Warnings []config.ValidationWarning `json:"warnings,omitempty"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (cmd *ConfigValidateCmd) run(ctx context.Context, c *cli.Command) error {
	out := validateConfig(cmd.flags.Config, cmd.flags.ConfigPath)

	if cmd.format == "json" {
		if err := iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, out); err != nil {
			return err
		}
	} else {
		w := c.Root().Writer
		for _, warn := range out.Warnings {
			_, _ = fmt.Fprintf(w, "warning: %s: %s (%s)\n", warn.Category, warn.Message, warn.Item)
		}
		for _, e := range out.Errors {
			_, _ = fmt.Fprintf(w, "error: %s: %s\n", e.Field, e.Message)
		}
		if out.Valid {
			_, _ = fmt.Fprintln(w, "Configuration is valid")
		} else {
			_, _ = fmt.Fprintf(w, "%d error(s) found\n", len(out.Errors))
		}
	}

	if !out.Valid {
		return cli.Exit("", 1)
	}
	return nil
}

func validateConfig(cfg *config.Config, configPath string) validationOutput {
	out := validationOutput{Valid: true, Warnings: cfg.Warnings()}

	err := cfg.ValidateDeep(configPath)
	if err == nil {
		return out
	}

	out.Valid = false
	var fe criterio.FieldErrors
	if errors.As(err, &fe) {
		for _, f := range fe {
			out.Errors = append(out.Errors, fieldError{Field: f.Field, Message: f.Err.Error()})
		}
		return out
	}
	out.Errors = append(out.Errors, fieldError{Field: "config", Message: err.Error()})
	return out
}
