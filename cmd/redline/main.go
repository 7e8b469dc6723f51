package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/iw2rmb/redline/internal/commands"
	"github.com/iw2rmb/redline/internal/config"
	"github.com/iw2rmb/redline/internal/logutils"
)

func main() {
	ctx := context.Background()

	var logCloser func()
	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "redline",
		Usage:     "Write an essay and review grammar feedback in the terminal",
		UsageText: "redline [global options] [file]\n   redline [global options] command [command options]",
		Description: `redline opens an essay editor. Ctrl+S submits the current draft to the
feedback service; returned comments are underlined in place and follow
your edits. Click a highlight or press Ctrl+N to read it.

Run 'redline mock-server' for an offline service and point the editor at it
with --api-url.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (trace, debug, info, warn, error, fatal)",
				Sources:     cli.EnvVars("REDLINE_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file",
				Sources:     cli.EnvVars("REDLINE_LOG_FILE"),
				Value:       config.DefaultLogFile(),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("REDLINE_CONFIG"),
				Value:       config.DefaultPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "api-url",
				Usage:       "feedback service base URL (overrides api_base_url)",
				Sources:     cli.EnvVars("REDLINE_API_URL"),
				Destination: &flags.APIURL,
			},
			&cli.StringFlag{
				Name:        "system",
				Usage:       "feedback backend: rule-based or llm-based (overrides system_choice)",
				Sources:     cli.EnvVars("REDLINE_SYSTEM"),
				Destination: &flags.System,
			},
			&cli.StringFlag{
				Name:        "user-id",
				Usage:       "user id sent with every draft (default: a fresh id per run)",
				Sources:     cli.EnvVars("REDLINE_USER_ID"),
				Destination: &flags.UserID,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, closer, err := logutils.New(flags.LogLevel, flags.LogFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			if err := flags.ApplyOverrides(cfg); err != nil {
				return ctx, err
			}
			flags.Config = cfg

			log.Debug().
				Str("config", flags.ConfigPath).
				Str("api_base_url", cfg.APIBaseURL).
				Str("system", cfg.SystemChoice).
				Msg("configuration loaded")
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	tuiCmd := commands.NewTuiCmd(flags)

	app = commands.NewCheckCmd(flags).Register(app)
	app = commands.NewMockServerCmd(flags).Register(app)

	// The editor is the default action when no subcommand is given.
	app.Action = tuiCmd.Run

	exitCode := 0
	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
