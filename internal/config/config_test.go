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
	path := filepath.Join(t.TempDir(), "watchsync.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "http://localhost:8080", cfg.Server.URL)
	assert.Equal(t, DriverBolt, cfg.Storage.Driver)
	assert.Equal(t, "watchsync.db", cfg.Storage.Path)
	assert.Equal(t, Duration(30*time.Second), cfg.Sync.Interval)
	assert.Equal(t, Duration(10*time.Second), cfg.Sync.ProbeInterval)
	assert.Empty(t, cfg.NATS.URL)
	assert.Empty(t, cfg.User.ID)
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeConfig(t, `
server:
  url: https://watchlist.example.com
storage:
  driver: sqlite
  path: /var/lib/watchsync/local.db
nats:
  url: nats://localhost:4222
sync:
  interval: 1m
  probe_interval: 15s
user:
  id: user-42
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://watchlist.example.com", cfg.Server.URL)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "/var/lib/watchsync/local.db", cfg.Storage.Path)
	assert.Equal(t, "nats://localhost:4222", cfg.NATS.URL)
	assert.Equal(t, Duration(time.Minute), cfg.Sync.Interval)
	assert.Equal(t, Duration(15*time.Second), cfg.Sync.ProbeInterval)
	assert.Equal(t, "user-42", cfg.User.ID)
}

func TestLoad_PartialConfigKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  url: https://watchlist.example.com
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	// Незаполненные секции остаются на значениях по умолчанию
	assert.Equal(t, "https://watchlist.example.com", cfg.Server.URL)
	assert.Equal(t, DriverBolt, cfg.Storage.Driver)
	assert.Equal(t, Duration(30*time.Second), cfg.Sync.Interval)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "server: [broken")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoad_InvalidDuration(t *testing.T) {
	path := writeConfig(t, `
sync:
  interval: soon
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid duration")
}

func TestLoad_UnknownDriver(t *testing.T) {
	path := writeConfig(t, `
storage:
  driver: postgres
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown storage driver")
}
