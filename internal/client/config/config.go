// Package config handles configuration for the CLI client: defaults,
// optional JSON overlay, then command-line flags. Later sources win.
package config

import "time"

// Config holds runtime settings for the Launchbook CLI.
//
// Fields:
//   - ServerEndpointURL: URL of the backend /graphql endpoint.
//   - DataDir: directory for the local credential store.
//   - RequestTimeout: per-request HTTP timeout.
type Config struct {
	ServerEndpointURL string
	DataDir           string
	RequestTimeout    time.Duration
}

// LoadDefaults populates c with development defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointURL = "http://127.0.0.1:8080/graphql"
	c.DataDir = ".launchbook"
	c.RequestTimeout = 12 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if a file was named) and command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseFlags(cfg)
	return cfg
}
