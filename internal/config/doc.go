// Package config handles configuration loading for the ingester.
//
// The store URL comes from TIMESCALE_SERVICE_URL (optionally via a .env file).
// Everything else has in-code defaults and may be overridden by a YAML file that
// supports ${VAR} environment variable interpolation.
package config
