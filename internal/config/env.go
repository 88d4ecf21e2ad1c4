package config

import (
	"os"
	"time"
)

// parseEnv overlays cfg with CAREERHUB_* environment variables.
func parseEnv(cfg *Config) {
	if v := os.Getenv("CAREERHUB_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("CAREERHUB_EVENTS_URL"); v != "" {
		cfg.EventsURL = v
	}
	if v := os.Getenv("CAREERHUB_DB"); v != "" {
		cfg.DatabaseDSN = v
	}
	if v := os.Getenv("CAREERHUB_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
	if v := os.Getenv("CAREERHUB_RECONNECT_MAX"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.ReconnectMax = d
		}
	}
	if v := os.Getenv("CAREERHUB_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}
