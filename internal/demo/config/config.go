// Package config handles configuration for the demo binary,
// including defaults, JSON overlay, and command-line flags.
package config

// Config holds runtime settings for the sqlrecord demo.
//
// Fields:
//   - Engine: database engine to run against ("postgres" or "sqlite").
//   - DatabaseDSN: driver DSN for the chosen engine.
//   - Rows: how many demo products to seed.
//   - BatchSize: chunk size for the batched select pass.
type Config struct {
	Engine      string
	DatabaseDSN string
	Rows        int
	BatchSize   int
}

// LoadDefaults populates Config with defaults that run against an in-memory
// SQLite database and need no external services.
func (c *Config) LoadDefaults() {
	c.Engine = "sqlite"
	c.DatabaseDSN = "file:sqlrecord_demo?mode=memory&cache=shared"
	c.Rows = 25
	c.BatchSize = 10
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
