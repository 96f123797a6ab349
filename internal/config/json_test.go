package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON_Success(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	p := filepath.Join(dir, "config.json")

	jsonBody := `{
		"app": {
			"auto_resolve_strategy": "remote-wins",
			"resolved_retention_days": 45,
			"version": "0.9.0"
		},
		"storage": {
			"db": { "dsn": "/data/local.db" },
			"state": { "driver": "bolt", "path": "/data/state.db" }
		},
		"server": { "http_address": "localhost:8088", "request_timeout": "20s" },
		"adapter": {
			"http_address": "http://sync.local",
			"request_timeout": "5s",
			"sync_timeout": "1m"
		},
		"workers": {
			"sync_interval": "10m",
			"probe_interval": "30s",
			"cleanup_interval": "48h"
		}
	}`
	require.NoError(t, os.WriteFile(p, []byte(jsonBody), 0o600))

	// Act
	cfg, err := parseJSON(p)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "remote-wins", cfg.App.AutoResolveStrategy)
	assert.Equal(t, 45, cfg.App.ResolvedRetentionDays)
	assert.Equal(t, "0.9.0", cfg.App.Version)
	assert.Equal(t, "/data/local.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "bolt", cfg.Storage.State.Driver)
	assert.Equal(t, "/data/state.db", cfg.Storage.State.Path)
	assert.Equal(t, "localhost:8088", cfg.Server.HTTPAddress)
	assert.Equal(t, 20*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "http://sync.local", cfg.Adapter.HTTPAddress)
	assert.Equal(t, 5*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, time.Minute, cfg.Adapter.SyncTimeout)
	assert.Equal(t, 10*time.Minute, cfg.Workers.SyncInterval)
	assert.Equal(t, 30*time.Second, cfg.Workers.ProbeInterval)
	assert.Equal(t, 48*time.Hour, cfg.Workers.CleanupInterval)
	assert.Empty(t, cfg.JSONFilePath)
}

func TestParseJSON_InvalidJSON(t *testing.T) {
	p := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"app":`), 0o600))

	_, err := parseJSON(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error decoding json configs")
}

func TestParseJSON_InvalidDuration(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bad-duration.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"workers":{"sync_interval":"often"}}`), 0o600))

	_, err := parseJSON(p)
	assert.Error(t, err)
}

func TestDuration_NumericNanoseconds(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalJSON([]byte(`1000000000`)))
	assert.Equal(t, time.Second, time.Duration(d))

	out, err := d.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"1s"`, string(out))
}
