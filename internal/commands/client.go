package commands

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/iw2rmb/redline/api"
	"github.com/iw2rmb/redline/internal/config"
)

func newFeedbackClient(cfg *config.Config, logger zerolog.Logger) *api.Client {
	return api.NewClient(
		cfg.APIBaseURL,
		cfg.RequestTimeout,
		api.WithLogger(logger.With().Str("component", "api").Logger()),
	)
}

// userID returns the configured id or a fresh one for this run.
func userID(cfg *config.Config) string {
	if cfg.UserID != "" {
		return cfg.UserID
	}
	return uuid.NewString()
}
