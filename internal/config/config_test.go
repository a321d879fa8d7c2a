package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	old := os.Args
	os.Args = append([]string{"forocli"}, args...)
	t.Cleanup(func() { os.Args = old })
}

func TestLoadConfig_Defaults(t *testing.T) {
	withArgs(t)

	cfg := LoadConfig()

	assert.Equal(t, "file:forum.db", cfg.DatabaseDSN)
	assert.Equal(t, "plain", cfg.CredentialScheme)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfig_FlagsOverrideDefaults(t *testing.T) {
	withArgs(t, "-d", "file:other.db", "-s", "bcrypt", "-l", "debug")

	cfg := LoadConfig()

	assert.Equal(t, "file:other.db", cfg.DatabaseDSN)
	assert.Equal(t, "bcrypt", cfg.CredentialScheme)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfig_JsonOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"database_dsn": "file:json.db",
		"credential_scheme": "bcrypt",
		"bcrypt_cost": 12,
		"log_level": "warn"
	}`), 0o600))

	withArgs(t, "-c", path)

	cfg := LoadConfig()

	assert.Equal(t, "file:json.db", cfg.DatabaseDSN)
	assert.Equal(t, "bcrypt", cfg.CredentialScheme)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadConfig_FlagsBeatJson(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"database_dsn": "file:json.db"}`), 0o600))

	withArgs(t, "-c", path, "-d", "file:flag.db")

	cfg := LoadConfig()

	assert.Equal(t, "file:flag.db", cfg.DatabaseDSN)
}
