package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, ":8080", cfg.Server.Listen)
	assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
	assert.Equal(t, "file:inspo.db?cache=shared&mode=rwc&_txlock=immediate", cfg.Database.DSN)
	assert.Equal(t, 10, cfg.Database.MaxOpenConns)
	assert.Equal(t, 5, cfg.Database.MaxIdleConns)
	assert.Equal(t, 3600, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, 20, cfg.Feed.PageSize)
}

func TestLoad(t *testing.T) {
	t.Run("full config", func(t *testing.T) {
		path := writeConfig(t, `
server:
  listen: ":9090"
  timeout: 45s
database:
  dsn: "file:/tmp/feed.db?mode=rwc"
  max_open_conns: 20
feed:
  page_size: 50
`)
		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, ":9090", cfg.Server.Listen)
		assert.Equal(t, 45*time.Second, cfg.Server.Timeout)
		assert.Equal(t, "file:/tmp/feed.db?mode=rwc", cfg.Database.DSN)
		assert.Equal(t, 20, cfg.Database.MaxOpenConns)
		assert.Equal(t, 50, cfg.Feed.PageSize)
	})

	t.Run("missing fields take defaults", func(t *testing.T) {
		path := writeConfig(t, `
server:
  listen: ":9090"
`)
		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, ":9090", cfg.Server.Listen)
		assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
		assert.Equal(t, 20, cfg.Feed.PageSize)
	})

	t.Run("environment variables expanded", func(t *testing.T) {
		t.Setenv("INSPO_DB_DSN", "file:/tmp/env.db?mode=rwc")
		path := writeConfig(t, `
database:
  dsn: "${INSPO_DB_DSN}"
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "file:/tmp/env.db?mode=rwc", cfg.Database.DSN)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load("/nonexistent/config.yml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read config file")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := writeConfig(t, "server: [unclosed")
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse config")
	})

	t.Run("timeout below a second rejected", func(t *testing.T) {
		path := writeConfig(t, `
server:
  timeout: 100ms
`)
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "timeout")
	})

	t.Run("page size out of range rejected", func(t *testing.T) {
		path := writeConfig(t, `
feed:
  page_size: 500
`)
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "page_size")
	})
}

func TestConfigAccessors(t *testing.T) {
	cfg := Default()
	cfg.Server.Listen = ":7070"
	cfg.Feed.PageSize = 33

	listen, timeout := cfg.GetServerConfig()
	assert.Equal(t, ":7070", listen)
	assert.Equal(t, 30*time.Second, timeout)
	assert.Equal(t, 33, cfg.GetFeedConfig().PageSize)
}
