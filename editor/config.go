package editor

import (
	"github.com/rs/zerolog"

	"github.com/iw2rmb/redline/anchor"
	"github.com/iw2rmb/redline/api"
	"github.com/iw2rmb/redline/document"
)

// Config configures the editor Model.
type Config struct {
	// Document is edited in place. When nil, one is built from Text.
	Document *document.Document
	Text     string

	KeyMap KeyMap
	Style  Style

	// TabWidth defaults to 4.
	TabWidth int

	Card CardConfig

	// Client submits drafts. Submitting without a client reports an error
	// in the banner.
	Client       FeedbackClient
	UserID       string
	SystemChoice api.SystemChoice
	// MaxDrafts defaults to 3.
	MaxDrafts int

	Logger zerolog.Logger

	// IDFunc replaces the uuid generator for feedback handles.
	IDFunc func() string
}

// CardConfig controls the feedback card.
type CardConfig struct {
	// Width is the outer width in cells, borders included. Defaults to 40.
	Width     int
	Placement anchor.Placement
	// Offset is the gap between the highlight and the card.
	Offset int
	// Padding is the minimum distance kept from the viewport edges.
	Padding int
}

const (
	defaultTabWidth  = 4
	defaultMaxDrafts = 3
	defaultCardWidth = 40
)

func normalizeConfig(cfg Config) Config {
	if cfg.TabWidth <= 0 {
		cfg.TabWidth = defaultTabWidth
	}
	if cfg.MaxDrafts <= 0 {
		cfg.MaxDrafts = defaultMaxDrafts
	}
	if cfg.SystemChoice == "" {
		cfg.SystemChoice = api.SystemRuleBased
	}
	if cfg.Card.Width <= 0 {
		cfg.Card.Width = defaultCardWidth
	}
	if cfg.Card.Placement == "" {
		cfg.Card.Placement = anchor.BottomStart
	}
	if len(cfg.KeyMap.Submit.Keys()) == 0 {
		cfg.KeyMap = DefaultKeyMap()
	}
	return cfg
}
