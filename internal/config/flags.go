package config

import (
	"flag"
	"os"

	"careerhub/internal/flagx"
)

// parseFlags overlays cfg with command-line flags, the highest-precedence
// stage. Only flags the user actually passed override earlier stages.
func parseFlags(cfg *Config) {
	allowed := []string{"-a", "-api-url", "-e", "-events-url", "-d", "-db", "-t", "-timeout", "-r", "-reconnect-max", "-l", "-log-level"}
	args := flagx.FilterArgs(os.Args[1:], allowed)

	fs := flag.NewFlagSet("careerhub", flag.ContinueOnError)
	apiURL := fs.String("api-url", cfg.APIBaseURL, "REST API base URL")
	fs.StringVar(apiURL, "a", cfg.APIBaseURL, "REST API base URL (short)")
	eventsURL := fs.String("events-url", cfg.EventsURL, "realtime subscribe URL")
	fs.StringVar(eventsURL, "e", cfg.EventsURL, "realtime subscribe URL (short)")
	dsn := fs.String("db", cfg.DatabaseDSN, "local database path")
	fs.StringVar(dsn, "d", cfg.DatabaseDSN, "local database path (short)")
	timeout := fs.Duration("timeout", cfg.RequestTimeout, "REST request timeout")
	fs.DurationVar(timeout, "t", cfg.RequestTimeout, "REST request timeout (short)")
	reconnect := fs.Duration("reconnect-max", cfg.ReconnectMax, "realtime reconnect backoff cap")
	fs.DurationVar(reconnect, "r", cfg.ReconnectMax, "realtime reconnect backoff cap (short)")
	level := fs.String("log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	fs.StringVar(level, "l", cfg.LogLevel, "log level (short)")

	if err := fs.Parse(args); err != nil {
		return
	}

	cfg.APIBaseURL = *apiURL
	cfg.EventsURL = *eventsURL
	cfg.DatabaseDSN = *dsn
	cfg.RequestTimeout = *timeout
	cfg.ReconnectMax = *reconnect
	cfg.LogLevel = *level
}
