package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/iw2rmb/redline/api"
	"github.com/iw2rmb/redline/editor"
	"github.com/iw2rmb/redline/internal/config"
)

type TuiCmd struct {
	flags *Flags
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags) *TuiCmd {
	return &TuiCmd{flags: flags}
}

// Run opens the editor on the file named by the first argument, or on an
// empty essay. A missing file starts empty. Exported for use as the default
// command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() > 1 {
		return fmt.Errorf("expected at most one file, got %d arguments", c.Args().Len())
	}

	var text string
	if path := c.Args().First(); path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			text = string(data)
		case errors.Is(err, fs.ErrNotExist):
			log.Info().Str("path", path).Msg("file does not exist, starting empty")
		default:
			return fmt.Errorf("read essay: %w", err)
		}
	}

	cfg := cmd.flags.Config
	m := newTuiModel(editorConfig(cfg, text, newFeedbackClient(cfg, log.Logger), log.Logger))
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

func editorConfig(cfg *config.Config, text string, client editor.FeedbackClient, logger zerolog.Logger) editor.Config {
	return editor.Config{
		Text:     text,
		KeyMap:   editor.DefaultKeyMap(),
		Style:    editor.DefaultStyle(),
		TabWidth: cfg.TabWidth,
		Card: editor.CardConfig{
			Width:     cfg.Card.Width,
			Placement: cfg.Placement(),
			Offset:    cfg.Card.Offset,
			Padding:   cfg.Card.Padding,
		},
		Client:       client,
		UserID:       userID(cfg),
		SystemChoice: api.SystemChoice(cfg.SystemChoice),
		MaxDrafts:    cfg.MaxDrafts,
		Logger:       logger,
	}
}

// tuiModel wraps the editor with the program-level quit binding.
type tuiModel struct {
	editor editor.Model
	quit   key.Binding
}

func newTuiModel(cfg editor.Config) tuiModel {
	if len(cfg.KeyMap.Quit.Keys()) == 0 {
		cfg.KeyMap = editor.DefaultKeyMap()
	}
	return tuiModel{
		editor: editor.New(cfg),
		quit:   cfg.KeyMap.Quit,
	}
}

func (m tuiModel) Init() tea.Cmd { return m.editor.Init() }

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.quit) {
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m tuiModel) View() string { return m.editor.View() }
