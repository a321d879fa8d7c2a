package config

import (
	"encoding/json"
	"os"

	"github.com/proyectoforocine/forocore/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Parsed values
// are copied into the runtime Config. Zero values mean "not set" and leave
// the current Config value untouched.
type JsonConfig struct {
	DatabaseDSN      string `json:"database_dsn"`
	CredentialScheme string `json:"credential_scheme"`
	BcryptCost       int    `json:"bcrypt_cost"`
	LogLevel         string `json:"log_level"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// The file path comes from the -c or -config flags (flagx.JsonConfigFlags);
// when neither is present no JSON is loaded. Read or unmarshal errors panic,
// matching the fail-fast behavior of startup configuration.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.CredentialScheme != "" {
		cfg.CredentialScheme = jc.CredentialScheme
	}
	if jc.BcryptCost != 0 {
		cfg.BcryptCost = jc.BcryptCost
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
