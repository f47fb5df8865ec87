package config

import "time"

// Config holds runtime settings for the Asset Tracker CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the backend HTTP API.
//   - RequestTimeout: per-request deadline for API calls.
//   - DatabasePath: location of the local sqlite database.
//   - SearchMinLength: minimum query length (in runes) before the search
//     oracle is consulted instead of the filtered listing.
//   - Verbose: enables debug-level logging.
type Config struct {
	ServerBaseURL   string
	RequestTimeout  time.Duration
	DatabasePath    string
	SearchMinLength int
	Verbose         bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:8000"
	c.RequestTimeout = 15 * time.Second
	c.DatabasePath = "assettracker.db"
	c.SearchMinLength = 3
	c.Verbose = false
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
