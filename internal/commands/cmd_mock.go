package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/iw2rmb/redline/internal/mockservice"
)

type MockServerCmd struct {
	flags *Flags

	addr  string
	delay time.Duration
}

// NewMockServerCmd creates a new mock-server command.
func NewMockServerCmd(flags *Flags) *MockServerCmd {
	return &MockServerCmd{flags: flags}
}

// Register adds the mock-server command to the application.
func (cmd *MockServerCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "mock-server",
		Usage:     "Serve a rule-based feedback endpoint for offline use",
		UsageText: "redline mock-server [--addr host:port] [--delay 500ms]",
		Description: `Runs a local stand-in for the feedback service. It answers
POST /grammar_feedback with a few deterministic checks (articles, "I has",
doubled words, lowercase "i", missing final punctuation).

Point the editor at it with --api-url http://<addr>.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "listen address",
				Sources:     cli.EnvVars("REDLINE_MOCK_ADDR"),
				Value:       "127.0.0.1:8000",
				Destination: &cmd.addr,
			},
			&cli.DurationFlag{
				Name:        "delay",
				Usage:       "hold every reply this long",
				Destination: &cmd.delay,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *MockServerCmd) run(ctx context.Context, c *cli.Command) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := mockservice.New(log.Logger, mockservice.WithDelay(cmd.delay))
	fmt.Fprintf(c.Root().Writer, "serving feedback on http://%s (ctrl+c to stop)\n", cmd.addr)
	if err := srv.Run(ctx, cmd.addr); err != nil {
		return fmt.Errorf("mock server: %w", err)
	}
	return nil
}
