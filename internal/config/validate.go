package config

import (
	"errors"
	"fmt"
	"log/slog"
)

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("database.url is required (set %s)", EnvDatabaseURL)
	}
	if c.Database.Keepalive < 0 {
		return errors.New("database.keepalive must be >= 0")
	}

	if c.API.BaseURL == "" {
		return errors.New("api.base_url is required")
	}
	if c.API.Plan != "demo" && c.API.Plan != "pro" {
		return fmt.Errorf("api.plan must be demo or pro, got %q", c.API.Plan)
	}
	if c.API.Timeout <= 0 {
		return errors.New("api.timeout must be > 0")
	}
	if c.API.MaxRetries < 0 {
		return errors.New("api.max_retries must be >= 0")
	}

	if c.Poll.Interval <= 0 {
		return errors.New("poll.interval must be > 0")
	}
	if c.Poll.MaxConsecutiveFailures < 0 {
		return errors.New("poll.max_consecutive_failures must be >= 0")
	}

	// Prices land in transactions.price_usd.
	if c.Ingest.Currency != DefaultCurrency {
		return fmt.Errorf("ingest.currency must be %s, got %q", DefaultCurrency, c.Ingest.Currency)
	}
	if c.Ingest.DefaultAmount <= 0 {
		return fmt.Errorf("ingest.default_amount must be > 0, got %v", c.Ingest.DefaultAmount)
	}

	if err := validateAssets(c.Assets); err != nil {
		return err
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return fmt.Errorf("log.level %q is invalid", c.Log.Level)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}

	return nil
}

func validateAssets(assets []AssetConfig) error {
	if len(assets) == 0 {
		return errors.New("assets must not be empty")
	}

	ids := make(map[string]struct{}, len(assets))
	symbols := make(map[string]struct{}, len(assets))
	for i, a := range assets {
		if a.ID == "" {
			return fmt.Errorf("assets[%d].id is required", i)
		}
		if a.Symbol == "" {
			return fmt.Errorf("assets[%d].symbol is required", i)
		}
		if _, dup := ids[a.ID]; dup {
			return fmt.Errorf("assets[%d].id %q is duplicated", i, a.ID)
		}
		if _, dup := symbols[a.Symbol]; dup {
			return fmt.Errorf("assets[%d].symbol %q is duplicated", i, a.Symbol)
		}
		ids[a.ID] = struct{}{}
		symbols[a.Symbol] = struct{}{}
	}
	return nil
}
