package commands

import (
	"fmt"

	"github.com/iw2rmb/redline/internal/config"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string

	// Connection overrides; empty values keep the config file's.
	APIURL string
	System string
	UserID string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config
}

// ApplyOverrides copies the non-empty connection flags onto cfg and validates
// the result.
func (f *Flags) ApplyOverrides(cfg *config.Config) error {
	if f.APIURL != "" {
		cfg.APIBaseURL = f.APIURL
	}
	if f.System != "" {
		cfg.SystemChoice = f.System
	}
	if f.UserID != "" {
		cfg.UserID = f.UserID
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	return nil
}
