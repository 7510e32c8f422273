package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetenv removes key for the duration of the test.
func unsetenv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"API_ADDR", "DATABASE_DRIVER", "DATABASE_URL", "SESSION_TTL_SECONDS", "LOG_FORMAT", "RATE_LIMIT_RPS"} {
		unsetenv(t, key)
	}

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":3000", cfg.Addr)
	assert.Equal(t, "pgx", cfg.DatabaseDriver)
	assert.Contains(t, cfg.DatabaseURL, "postgres://")
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL())
	assert.Equal(t, "*", cfg.CORSOrigin)
	assert.Equal(t, float64(20), cfg.RateLimitRPS)
}

func TestLoadFilePrecedence(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_addr: \":9000\"\ndatabase_driver: sqlite\nsession_ttl_seconds: 60\n"), 0o600))

	t.Setenv("API_ADDR", ":9100")
	unsetenv(t, "DATABASE_URL")
	unsetenv(t, "DATABASE_DRIVER")
	unsetenv(t, "SESSION_TTL_SECONDS")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9100", cfg.Addr, "environment overrides the file")
	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, "file:ceo-management.db", cfg.DatabaseURL)
	assert.Equal(t, time.Minute, cfg.SessionTTL())
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DATABASE_DRIVER", "mysql")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database_driver")
}

func TestLoadMissingFile(t *testing.T) {
	t.Chdir(t.TempDir())
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
