package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNetAddress_String tests the String method of NetAddress
func TestNetAddress_String(t *testing.T) {
	tests := []struct {
		name     string
		addr     NetAddress
		expected string
	}{
		{name: "empty address", addr: NetAddress{}, expected: ""},
		{name: "localhost with port", addr: NetAddress{Host: "localhost", Port: 8088}, expected: "localhost:8088"},
		{name: "IP address with port", addr: NetAddress{Host: "127.0.0.1", Port: 9090}, expected: "127.0.0.1:9090"},
		{name: "only port no host", addr: NetAddress{Host: "", Port: 8080}, expected: ":8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.addr.String())
		})
	}
}

// TestNetAddress_Set tests the Set method of NetAddress
func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectError bool
		want        NetAddress
	}{
		{name: "localhost", input: "localhost:8088", want: NetAddress{Host: "localhost", Port: 8088}},
		{name: "ip", input: "127.0.0.1:80", want: NetAddress{Host: "127.0.0.1", Port: 80}},
		{name: "missing port", input: "localhost", expectError: true},
		{name: "bad port", input: "localhost:http", expectError: true},
		{name: "zero port", input: "localhost:0", expectError: true},
		{name: "hostname not ip", input: "example.com:80", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a NetAddress
			err := a.Set(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, a)
		})
	}
}

func TestParseFlags_AllFlags(t *testing.T) {
	cfg, err := parseFlags([]string{
		"-a", "127.0.0.1:9000",
		"-d", "local.db",
		"-state-driver", "memory",
		"-state-path", "state.db",
		"-u", "http://sync.local",
		"-config", "cfg.json",
		"-strategy", "manual",
		"-retention-days", "3",
		"-request-timeout", "4s",
		"-sync-timeout", "40s",
		"-sync-interval", "2m",
		"-probe-interval", "7s",
		"-cleanup-interval", "6h",
	})
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.HTTPAddress)
	assert.Equal(t, "local.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "memory", cfg.Storage.State.Driver)
	assert.Equal(t, "state.db", cfg.Storage.State.Path)
	assert.Equal(t, "http://sync.local", cfg.Adapter.HTTPAddress)
	assert.Equal(t, "cfg.json", cfg.JSONFilePath)
	assert.Equal(t, "manual", cfg.App.AutoResolveStrategy)
	assert.Equal(t, 3, cfg.App.ResolvedRetentionDays)
	assert.Equal(t, 4*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, 40*time.Second, cfg.Adapter.SyncTimeout)
	assert.Equal(t, 2*time.Minute, cfg.Workers.SyncInterval)
	assert.Equal(t, 7*time.Second, cfg.Workers.ProbeInterval)
	assert.Equal(t, 6*time.Hour, cfg.Workers.CleanupInterval)
}

func TestParseFlags_NoArgsYieldsZeroConfig(t *testing.T) {
	cfg, err := parseFlags(nil)
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestParseFlags_InvalidAddress(t *testing.T) {
	_, err := parseFlags([]string{"-a", "nowhere"})
	assert.Error(t, err)
}
