package config

import (
	"os"
	"time"
)

// EnvDatabaseURL names the environment variable holding the store connection URL.
const EnvDatabaseURL = "TIMESCALE_SERVICE_URL"

// Default values for optional configuration fields.
const (
	DefaultConnectTimeout    = 10 * time.Second
	DefaultKeepalive         = 30 * time.Second
	DefaultHealthCheckPeriod = time.Minute
	DefaultBaseURL           = "https://api.coingecko.com/api/v3"
	DefaultProBaseURL        = "https://pro-api.coingecko.com/api/v3"
	DefaultPlan              = "demo"
	DefaultAPITimeout        = 15 * time.Second
	DefaultRetryBackoff      = time.Second
	DefaultPollInterval      = 30 * time.Second
	DefaultCurrency          = "usd"
	DefaultActorName         = "Sarah"
	DefaultAmount            = 1.0
	DefaultLogLevel          = "info"
	DefaultLogFormat         = "text"
)

// DefaultAssets is the catalog used when the config file lists none.
func DefaultAssets() []AssetConfig {
	return []AssetConfig{
		{ID: "bitcoin", Symbol: "BTC", Name: "Bitcoin"},
		{ID: "ethereum", Symbol: "ETH", Name: "Ethereum"},
	}
}

func (c *Config) applyDefaults() {
	// Database defaults
	if c.Database.URL == "" {
		c.Database.URL = os.Getenv(EnvDatabaseURL)
	}
	if c.Database.ConnectTimeout == 0 {
		c.Database.ConnectTimeout = DefaultConnectTimeout
	}
	if c.Database.Keepalive == 0 {
		c.Database.Keepalive = DefaultKeepalive
	}
	if c.Database.HealthCheckPeriod == 0 {
		c.Database.HealthCheckPeriod = DefaultHealthCheckPeriod
	}

	// API defaults
	if c.API.Plan == "" {
		c.API.Plan = DefaultPlan
	}
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultBaseURL
		if c.API.Plan == "pro" {
			c.API.BaseURL = DefaultProBaseURL
		}
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = DefaultAPITimeout
	}
	if c.API.RetryBackoff == 0 {
		c.API.RetryBackoff = DefaultRetryBackoff
	}

	// Poll defaults
	if c.Poll.Interval == 0 {
		c.Poll.Interval = DefaultPollInterval
	}

	// Ingest defaults
	if c.Ingest.Currency == "" {
		c.Ingest.Currency = DefaultCurrency
	}
	if c.Ingest.ActorName == "" {
		c.Ingest.ActorName = DefaultActorName
	}
	if c.Ingest.DefaultAmount == 0 {
		c.Ingest.DefaultAmount = DefaultAmount
	}

	if len(c.Assets) == 0 {
		c.Assets = DefaultAssets()
	}

	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
}
