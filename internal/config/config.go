// Package config handles configuration loading and validation for redline.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/hay-kot/criterio"
	"gopkg.in/yaml.v3"

	"github.com/iw2rmb/redline/anchor"
	"github.com/iw2rmb/redline/api"
)

// Config holds the application configuration.
type Config struct {
	APIBaseURL     string        `yaml:"api_base_url"`
	SystemChoice   string        `yaml:"system_choice"`
	UserID         string        `yaml:"user_id"` // empty: a fresh id per run
	MaxDrafts      int           `yaml:"max_drafts"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	TabWidth       int           `yaml:"tab_width"`
	Card           CardConfig    `yaml:"card"`
}

// CardConfig controls the floating feedback card.
type CardConfig struct {
	Width     int    `yaml:"width"`
	Placement string `yaml:"placement"`
	Offset    int    `yaml:"offset"`  // cells between highlight and card
	Padding   int    `yaml:"padding"` // minimum distance to the viewport edge
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		APIBaseURL:     api.DefaultBaseURL,
		SystemChoice:   string(api.SystemRuleBased),
		MaxDrafts:      3,
		RequestTimeout: 30 * time.Second,
		TabWidth:       4,
		Card: CardConfig{
			Width:     40,
			Placement: string(anchor.BottomStart),
			Offset:    0,
			Padding:   1,
		},
	}
}

// DefaultPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "redline", "config.yaml")
}

// DefaultLogFile returns the default log file path using XDG_STATE_HOME.
func DefaultLogFile() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, _ := os.UserHomeDir()
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "redline", "redline.log")
}

// Load reads configuration from the given path. If configPath is empty or
// doesn't exist, defaults are returned.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.APIBaseURL == "" {
		c.APIBaseURL = defaults.APIBaseURL
	}
	if c.SystemChoice == "" {
		c.SystemChoice = defaults.SystemChoice
	}
	if c.MaxDrafts == 0 {
		c.MaxDrafts = defaults.MaxDrafts
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = defaults.RequestTimeout
	}
	if c.TabWidth == 0 {
		c.TabWidth = defaults.TabWidth
	}
	if c.Card.Width == 0 {
		c.Card.Width = defaults.Card.Width
	}
	if c.Card.Placement == "" {
		c.Card.Placement = defaults.Card.Placement
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	var errs criterio.FieldErrorsBuilder

	if c.MaxDrafts < 1 {
		errs = errs.Append("max_drafts", fmt.Errorf("must be at least 1"))
	}
	if c.RequestTimeout < 0 {
		errs = errs.Append("request_timeout", fmt.Errorf("cannot be negative"))
	}
	if c.TabWidth < 1 {
		errs = errs.Append("tab_width", fmt.Errorf("must be at least 1"))
	}
	if c.Card.Width < 10 {
		errs = errs.Append("card.width", fmt.Errorf("must be at least 10"))
	}
	if _, ok := anchor.ParsePlacement(c.Card.Placement); !ok {
		errs = errs.Append("card.placement", fmt.Errorf("unknown placement %q", c.Card.Placement))
	}
	if c.Card.Offset < 0 || c.Card.Padding < 0 {
		errs = errs.Append("card", fmt.Errorf("offset and padding cannot be negative"))
	}

	return criterio.ValidateStruct(
		criterio.Run("api_base_url", c.APIBaseURL, isHTTPURL),
		criterio.Run("system_choice", c.SystemChoice, isSystemChoice),
		errs.ToError(),
	)
}

// Placement returns the configured card placement.
func (c *Config) Placement() anchor.Placement {
	p, _ := anchor.ParsePlacement(c.Card.Placement)
	return p
}

func isHTTPURL(s string) error {
	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https")
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}

func isSystemChoice(s string) error {
	switch api.SystemChoice(s) {
	case api.SystemRuleBased, api.SystemLLMBased:
		return nil
	}
	return fmt.Errorf("must be %q or %q", api.SystemRuleBased, api.SystemLLMBased)
}
