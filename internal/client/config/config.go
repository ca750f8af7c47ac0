package config

import "time"

// Config holds runtime settings for the Rosebud CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the backend HTTP API.
//   - DatabasePath: path to the local SQLite cache file.
//   - LogPath: path of the client log file.
//   - RequestTimeout: per-request timeout for API calls.
type Config struct {
	ServerBaseURL  string
	DatabasePath   string
	LogPath        string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8080"
	c.DatabasePath = "rosebud.db"
	c.LogPath = "rosebud.log"
	c.RequestTimeout = 15 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
