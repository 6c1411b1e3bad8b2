// Package config handles configuration for the client component,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the FluxPad CLI client.
//
// Fields:
//   - ServerEndpointURL: base URL of the FluxPad API.
//   - RequestTimeout: per-request timeout for API calls.
//   - SessionDBPath: path of the local SQLite database holding the session.
type Config struct {
	ServerEndpointURL string
	RequestTimeout    time.Duration
	SessionDBPath     string
}

// LoadDefaults populates Config with sensible development defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointURL = "http://localhost:8000"
	c.RequestTimeout = 10 * time.Second
	c.SessionDBPath = "session.db"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
