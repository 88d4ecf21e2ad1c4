package config

import (
	"encoding/json"
	"fmt"
	"os"

	"careerhub/internal/flagx"
	"careerhub/internal/timex"
)

// jsonConfig is the file-format DTO. Durations accept either strings like
// "30s" or integer nanoseconds.
type jsonConfig struct {
	APIBaseURL     string         `json:"api_base_url"`
	EventsURL      string         `json:"events_url"`
	DatabaseDSN    string         `json:"database_dsn"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	ReconnectMax   timex.Duration `json:"reconnect_max"`
	LogLevel       string         `json:"log_level"`
}

// parseJSON overlays cfg with values from the JSON file named by the
// -c/-config flag, when present. A missing flag means no file is loaded;
// an unreadable or invalid file is a startup error.
func parseJSON(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}
	if err := applyJSONFile(cfg, path); err != nil {
		panic(err)
	}
}

func applyJSONFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.EventsURL != "" {
		cfg.EventsURL = jc.EventsURL
	}
	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.RequestTimeout != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Std()
	}
	if jc.ReconnectMax != 0 {
		cfg.ReconnectMax = jc.ReconnectMax.Std()
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	return nil
}
