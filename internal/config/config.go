// Package config assembles the client's runtime settings in stages:
// defaults, then an optional JSON file, then environment variables, then
// command-line flags. Later stages override earlier ones.
package config

import "time"

// Config holds runtime settings for the careerhub client.
type Config struct {
	// APIBaseURL is the root of the REST API, including the /api prefix.
	APIBaseURL string

	// EventsURL is the realtime subscribe endpoint.
	EventsURL string

	// DatabaseDSN locates the local SQLite database holding the persisted
	// credential and identity.
	DatabaseDSN string

	// RequestTimeout bounds individual REST calls. The realtime stream is
	// not subject to it.
	RequestTimeout time.Duration

	// ReconnectMax caps the realtime channel's reconnect backoff.
	ReconnectMax time.Duration

	// LogLevel is one of debug, info, warn, error.
	LogLevel string
}

// LoadDefaults populates c with development defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8080/api"
	c.EventsURL = "http://localhost:8080/events/subscribe"
	c.DatabaseDSN = "careerhub.db"
	c.RequestTimeout = 30 * time.Second
	c.ReconnectMax = 30 * time.Second
	c.LogLevel = "info"
}

// LoadConfig builds the effective configuration from all stages.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
