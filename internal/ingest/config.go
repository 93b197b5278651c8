package ingest

import (
	"time"

	"github.com/rickgao/coin-ingest/internal/config"
)

// Config holds loop configuration.
type Config struct {
	Interval      time.Duration // Time between cycle starts (default: 30s)
	Currency      string        // Quote currency (default: usd)
	DefaultAmount float64       // Amount recorded per observation (default: 1)
	Policy        RetryPolicy
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Interval:      config.DefaultPollInterval,
		Currency:      config.DefaultCurrency,
		DefaultAmount: config.DefaultAmount,
	}
}

// ConfigFrom extracts loop settings from the root config.
func ConfigFrom(cfg *config.Config) Config {
	return Config{
		Interval:      cfg.Poll.Interval,
		Currency:      cfg.Ingest.Currency,
		DefaultAmount: cfg.Ingest.DefaultAmount,
		Policy: RetryPolicy{
			MaxConsecutiveFailures: cfg.Poll.MaxConsecutiveFailures,
		},
	}
}
