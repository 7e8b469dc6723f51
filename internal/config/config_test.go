package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iw2rmb/redline/anchor"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), *cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", cfg.APIBaseURL)
	assert.Equal(t, 3, cfg.MaxDrafts)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, anchor.BottomStart, cfg.Placement())
}

func TestLoad_FileOverridesAndDefaultsFillGaps(t *testing.T) {
	path := writeConfig(t, `
api_base_url: https://feedback.example.edu
system_choice: llm-based
request_timeout: 5s
card:
  width: 50
  placement: top-start
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://feedback.example.edu", cfg.APIBaseURL)
	assert.Equal(t, "llm-based", cfg.SystemChoice)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 50, cfg.Card.Width)
	assert.Equal(t, anchor.TopStart, cfg.Placement())

	assert.Equal(t, 3, cfg.MaxDrafts)
	assert.Equal(t, 4, cfg.TabWidth)
}

func TestLoad_ParseError(t *testing.T) {
	_, err := Load(writeConfig(t, "max_drafts: [oops"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestLoad_InvalidValues(t *testing.T) {
	_, err := Load(writeConfig(t, "system_choice: neural\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
	assert.Contains(t, err.Error(), "system_choice")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "bad url", mutate: func(c *Config) { c.APIBaseURL = "localhost:8000" }, wantField: "api_base_url"},
		{name: "no host", mutate: func(c *Config) { c.APIBaseURL = "http://" }, wantField: "api_base_url"},
		{name: "system", mutate: func(c *Config) { c.SystemChoice = "neural" }, wantField: "system_choice"},
		{name: "drafts", mutate: func(c *Config) { c.MaxDrafts = -1 }, wantField: "max_drafts"},
		{name: "timeout", mutate: func(c *Config) { c.RequestTimeout = -time.Second }, wantField: "request_timeout"},
		{name: "tab width", mutate: func(c *Config) { c.TabWidth = 0 }, wantField: "tab_width"},
		{name: "card width", mutate: func(c *Config) { c.Card.Width = 4 }, wantField: "card.width"},
		{name: "placement", mutate: func(c *Config) { c.Card.Placement = "middle" }, wantField: "card.placement"},
		{name: "padding", mutate: func(c *Config) { c.Card.Padding = -1 }, wantField: "card"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var fieldErrs criterio.FieldErrors
			require.ErrorAs(t, err, &fieldErrs)
			require.Len(t, fieldErrs, 1)
			assert.Equal(t, tt.wantField, fieldErrs[0].Field)
		})
	}
}

func TestDefaultPaths_UseXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	t.Setenv("XDG_STATE_HOME", "/tmp/state")
	assert.Equal(t, "/tmp/cfg/redline/config.yaml", DefaultPath())
	assert.Equal(t, "/tmp/state/redline/redline.log", DefaultLogFile())
}
