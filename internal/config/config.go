// Package config loads runtime settings for the forum client core.
package config

// Config holds runtime settings for the forum client.
//
// Fields:
//   - DatabaseDSN: sqlite DSN of the local database file.
//   - CredentialScheme: how passwords are stored and checked ("plain" keeps
//     the legacy behavior, "bcrypt" hashes at registration).
//   - BcryptCost: bcrypt work factor; ignored by the plain scheme.
//   - LogLevel: minimum level for structured logs.
type Config struct {
	DatabaseDSN      string
	CredentialScheme string
	BcryptCost       int
	LogLevel         string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabaseDSN = "file:forum.db"
	c.CredentialScheme = "plain"
	c.BcryptCost = 10
	c.LogLevel = "info"
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
