package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"
	_ "time/tzdata"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/proma/internal/commands"
	"github.com/colonyops/proma/internal/core/clock"
	"github.com/colonyops/proma/internal/core/config"
	"github.com/colonyops/proma/internal/core/logging"
	"github.com/colonyops/proma/internal/data/db"
	"github.com/colonyops/proma/internal/data/stores"
	"github.com/colonyops/proma/internal/proma"
	"github.com/colonyops/proma/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, build() reads them
	// from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	// ldflags aren't set by `go install module@version`; fall back to the
	// module version and VCS metadata Go records in the binary.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

// openDatabase opens the store, moving a corrupted database file aside and
// starting fresh once.
func openDatabase(cfg *config.Config) (*db.DB, error) {
	opts := db.OpenOptions{
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
		BusyTimeout:  cfg.Database.BusyTimeout,
	}

	database, err := db.Open(cfg.DBDir(), opts)
	if err == nil || !stores.IsCorruptionError(err) {
		return database, err
	}

	log.Error().Err(err).Str("data_dir", cfg.DBDir()).Msg("database corrupted, moving it aside")
	if rerr := stores.RecoverFromCorruption(cfg.DBDir()); rerr != nil {
		return nil, fmt.Errorf("recover database: %w", rerr)
	}
	return db.Open(cfg.DBDir(), opts)
}

func main() {
	ctx := context.Background()

	var (
		logCloser func()
		promaApp  = &proma.App{}
		database  *db.DB
	)

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "proma",
		Usage:     "Track epics, tasks and sub-tasks for a team",
		UsageText: "proma [global options] command [command options]",
		Description: `Proma keeps a three level work hierarchy (Epic > Task > Sub-task) per
workspace and user in a local SQLite database.

Items are created, read with their descendants, updated field by field,
deleted as a whole subtree, listed by time period, and summarized in reports.
Run 'proma mcp' to expose the same operations as MCP tools over stdio.

Identity comes from --workspace and --user-id, or from the identity section
of the config file.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("PROMA_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/logs/proma.log)",
				Sources:     cli.EnvVars("PROMA_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("PROMA_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("PROMA_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
			&cli.StringFlag{
				Name:        "workspace",
				Aliases:     []string{"w"},
				Usage:       "workspace id (overrides identity.workspace_id)",
				Sources:     cli.EnvVars("PROMA_WORKSPACE_ID"),
				Destination: &flags.WorkspaceID,
			},
			&cli.StringFlag{
				Name:        "user-id",
				Aliases:     []string{"u"},
				Usage:       "user id (overrides identity.user_id)",
				Sources:     cli.EnvVars("PROMA_USER_ID"),
				Destination: &flags.UserID,
			},
			&cli.StringFlag{
				Name:        "user-name",
				Usage:       "display name used when an assignee is not a team member",
				Sources:     cli.EnvVars("PROMA_USER_NAME"),
				Destination: &flags.UserName,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.Config = cfg

			// Flags win over the config file; the config file wins over the
			// default log file under the data directory.
			level := cfg.LogLevel
			if c.IsSet("log-level") || level == "" {
				level = flags.LogLevel
			}
			logFile := flags.LogFile
			if logFile == "" {
				logFile = cfg.LogFile
			}
			if logFile == "" {
				logFile = cfg.DefaultLogFile()
			}

			logger, closer, err := logutils.New(level, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger.Hook(logging.ContextHook{})
			logCloser = closer

			// config validate reports timezone and path problems itself, so it
			// runs without a clock or database.
			if c.Args().First() == "config" {
				return ctx, nil
			}

			clk, err := clock.New(cfg.Timezone)
			if err != nil {
				return ctx, fmt.Errorf("load timezone: %w", err)
			}

			database, err = openDatabase(cfg)
			if err != nil {
				return ctx, fmt.Errorf("open database: %w", err)
			}

			log.Debug().
				Str("data_dir", cfg.DataDir).
				Str("timezone", clk.Location().String()).
				Msg("proma started")

			// Populate the pre-allocated App struct (commands already hold a pointer to it)
			*promaApp = *proma.NewApp(cfg, database, clk, logging.Component("proma"))

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if database != nil {
				if err := database.Close(); err != nil {
					log.Error().Err(err).Msg("failed to close database")
					return err
				}
			}

			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	app = commands.NewCreateCmd(flags, promaApp).Register(app)
	app = commands.NewGetCmd(flags, promaApp).Register(app)
	app = commands.NewUpdateCmd(flags, promaApp).Register(app)
	app = commands.NewDeleteCmd(flags, promaApp).Register(app)
	app = commands.NewListCmd(flags, promaApp).Register(app)
	app = commands.NewReportCmd(flags, promaApp).Register(app)
	app = commands.NewMemberCmd(flags, promaApp).Register(app)
	app = commands.NewDBCmd(flags, promaApp).Register(app)
	app = commands.NewMcpCmd(flags, promaApp, version).Register(app)
	app = commands.NewConfigValidateCmd(flags).Register(app)

	exitCode := 0
	if err := app.Run(ctx, os.Args); err != nil {
		commands.WriteError(os.Stderr, err)
		exitCode = 1
	}

	os.Exit(exitCode)
}
