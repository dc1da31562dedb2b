package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadParsesDurationsAndDefaults(t *testing.T) {
	path := writeConfigFile(t, `
postgres:
  url: postgres://localhost:5432/changegate
redis:
  addr: localhost:6379
subscription_ttl: 24h
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 24*time.Hour, cfg.SubscriptionTTL.Std())
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "wal.changes", cfg.Stream.ChangeTopic)
	assert.Equal(t, "authenticated", cfg.Roles.Viewer)
	assert.Equal(t, 256, cfg.ReportingBufferSize)
}

func TestLoadRejectsMalformedDuration(t *testing.T) {
	path := writeConfigFile(t, `
postgres:
  url: postgres://localhost:5432/changegate
redis:
  addr: localhost:6379
subscription_ttl: tomorrow
`)

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfigFile(t, `
postgres:
  url: postgres://file-value:5432/changegate
redis:
  addr: file-value:6379
`)

	t.Setenv("POSTGRES_URL", "postgres://env-value:5432/changegate")
	t.Setenv("REDIS_ADDR", "env-value:6379")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres://env-value:5432/changegate", cfg.Postgres.URL)
	assert.Equal(t, "env-value:6379", cfg.Redis.Addr)
}

func TestLoadRequiresConnectionEndpoints(t *testing.T) {
	path := writeConfigFile(t, `
redis:
  addr: localhost:6379
`)

	// overrideFromEnv ignores empty values, this only isolates the test from
	// an ambient POSTGRES_URL
	t.Setenv("POSTGRES_URL", "")

	_, err := Load(path)
	require.Error(t, err)
}
