package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/iw2rmb/redline/api"
	"github.com/iw2rmb/redline/document"
	"github.com/iw2rmb/redline/editor"
	"github.com/iw2rmb/redline/feedback"
)

var errEmptyInput = errors.New("nothing to check: input is empty")

type CheckCmd struct {
	flags *Flags

	draft int
}

// NewCheckCmd creates a new check command.
func NewCheckCmd(flags *Flags) *CheckCmd {
	return &CheckCmd{flags: flags}
}

// Register adds the check command to the application.
func (cmd *CheckCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "check",
		Usage:     "Submit an essay once and print the feedback",
		UsageText: "redline check [--draft N] [file]",
		Description: `Sends the essay to the feedback service as a single draft and prints every
comment that maps onto the text, one per line:

  line:col  TAG  "highlight" → "correction": explanation

Reads stdin when no file is given and stdin is not a terminal.`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "draft",
				Usage:       "draft number to submit",
				Value:       1,
				Destination: &cmd.draft,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *CheckCmd) run(ctx context.Context, c *cli.Command) error {
	text, err := readEssay(c.Args().First(), os.Stdin)
	if err != nil {
		return err
	}

	cfg := cmd.flags.Config
	req := api.Request{
		UserID:       userID(cfg),
		SystemChoice: api.SystemChoice(cfg.SystemChoice),
		DraftNumber:  cmd.draft,
	}
	_, err = check(ctx, newFeedbackClient(cfg, log.Logger), req, text, c.Root().Writer, log.Logger)
	return err
}

// readEssay reads path, or stdin when path is empty. A terminal on stdin is
// refused rather than waited on.
func readEssay(path string, stdin *os.File) (string, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read essay: %w", err)
		}
		return string(data), nil
	}
	if term.IsTerminal(int(stdin.Fd())) {
		return "", fmt.Errorf("no input provided (stdin is a terminal); pass a file or pipe the essay")
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

// check submits text once, materializes the reply against a fresh document
// and writes one line per surviving comment followed by a summary.
func check(ctx context.Context, client editor.FeedbackClient, req api.Request, text string, w io.Writer, logger zerolog.Logger) (feedback.Report, error) {
	d := document.FromText(text)
	req.Text = document.Flatten(d)
	if strings.TrimSpace(req.Text) == "" {
		return feedback.Report{}, errEmptyInput
	}

	resp, err := client.GrammarFeedback(ctx, req)
	if err != nil {
		return feedback.Report{}, fmt.Errorf("request feedback: %w", err)
	}

	handles, report := feedback.NewMaterializer(logger).Materialize(d, req.Text, resp.FeedbackList)
	defer func() {
		for _, h := range handles {
			h.Release()
		}
	}()

	runes := []rune(req.Text)
	for _, h := range handles {
		r, ok := h.Range()
		if !ok {
			continue
		}
		bi, col := d.BlockCol(r.Anchor)
		tag := h.Comment.ErrorTag
		if tag == "" {
			tag = "-"
		}
		fmt.Fprintf(w, "%d:%d\t%s\t%s\n", bi+1, col+1, tag, describe(h.Comment, string(runes[h.Start:h.End])))
	}
	fmt.Fprintf(w, "%d comments, %d dropped\n", len(handles), len(report.Dropped))
	return report, nil
}

func describe(c api.Comment, span string) string {
	var change string
	switch {
	case span == "" && c.Corrected != "":
		change = fmt.Sprintf("insert %q", c.Corrected)
	case span != "" && c.Corrected != "" && c.Corrected != span:
		change = fmt.Sprintf("%q → %q", span, c.Corrected)
	case span != "":
		change = fmt.Sprintf("%q", span)
	}

	switch {
	case change == "":
		return c.FeedbackExplanation
	case c.FeedbackExplanation == "":
		return change
	}
	return change + ": " + c.FeedbackExplanation
}
