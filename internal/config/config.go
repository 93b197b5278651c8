package config

import "time"

// Config is the root configuration. It is built once at start-up and treated as
// read-only afterwards.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	API      APIConfig      `yaml:"api"`
	Poll     PollConfig     `yaml:"poll"`
	Ingest   IngestConfig   `yaml:"ingest"`
	Assets   []AssetConfig  `yaml:"assets"`
	Log      LogConfig      `yaml:"log"`
}

// DatabaseConfig holds the TimescaleDB connection settings.
type DatabaseConfig struct {
	URL               string        `yaml:"url"`                 // Falls back to TIMESCALE_SERVICE_URL
	ConnectTimeout    time.Duration `yaml:"connect_timeout"`     // Dial + ping budget at start-up
	Keepalive         time.Duration `yaml:"keepalive"`           // TCP keepalive period
	HealthCheckPeriod time.Duration `yaml:"health_check_period"` // Idle connection health checks
}

// APIConfig holds price API settings.
type APIConfig struct {
	BaseURL      string        `yaml:"base_url"`
	APIKey       string        `yaml:"api_key"`
	Plan         string        `yaml:"plan"` // demo or pro; picks the key header and default base URL
	Timeout      time.Duration `yaml:"timeout"`
	MaxRetries   int           `yaml:"max_retries"`
	RetryBackoff time.Duration `yaml:"retry_backoff"`
}

// PollConfig holds driver loop settings.
type PollConfig struct {
	Interval time.Duration `yaml:"interval"`

	// MaxConsecutiveFailures stops the loop after this many failed or skipped
	// cycles in a row. Zero means never stop.
	MaxConsecutiveFailures int `yaml:"max_consecutive_failures"`
}

// IngestConfig holds per-observation settings.
type IngestConfig struct {
	Currency      string  `yaml:"currency"`       // Quote currency, e.g. "usd"
	ActorName     string  `yaml:"actor_name"`     // Demo user that owns the observations
	DefaultAmount float64 `yaml:"default_amount"` // Quantity recorded per observation
}

// AssetConfig is one tracked asset.
type AssetConfig struct {
	ID     string `yaml:"id"`     // Price API id (e.g. "bitcoin")
	Symbol string `yaml:"symbol"` // Ticker symbol (e.g. "BTC")
	Name   string `yaml:"name"`   // Display name
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}
