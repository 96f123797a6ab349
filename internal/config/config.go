// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the top-level configuration container for the
// field-sync client. It aggregates all sub-configurations and is populated
// by merging built-in defaults, environment variables, command-line flags and
// an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env:       direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds conflict-handling policy and build information.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the local entity database and the
	// sync-state store.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the listen address of the local control API.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the address and timeouts of the remote sync server.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds intervals of the background jobs.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level settings.
type App struct {
	// AutoResolveStrategy is the initial strategy applied to newly detected
	// conflicts: "manual", "local-wins" or "remote-wins". A value persisted
	// by the user at runtime takes precedence.
	// Env: APP_AUTO_RESOLVE_STRATEGY
	AutoResolveStrategy string `env:"AUTO_RESOLVE_STRATEGY"`

	// ResolvedRetentionDays is how long resolved conflicts are kept in history
	// before the retention job purges them.
	// Env: APP_RESOLVED_RETENTION_DAYS
	ResolvedRetentionDays int `env:"RESOLVED_RETENTION_DAYS"`

	// Version is the semantic version string of the running client.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the configuration for all storage backends.
type Storage struct {
	// DB holds the local SQLite entity database settings.
	DB DB `envPrefix:"DB_"`

	// State holds the sync-state key-value store settings.
	State State `envPrefix:"STATE_"`
}

// DB holds connection settings for the local entity database.
type DB struct {
	// DSN is the SQLite database file path.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// State selects the backend persisting conflicts, pending changes and sync
// metadata.
type State struct {
	// Driver is one of "memory", "bolt" or "sqlite".
	// Env: STORAGE_STATE_DRIVER
	Driver string `env:"DRIVER"`

	// Path is the bbolt file path, used only by the "bolt" driver.
	// Env: STORAGE_STATE_PATH
	Path string `env:"PATH"`
}

// Server holds the local control API settings.
type Server struct {
	// HTTPAddress is the TCP address the control API listens on,
	// in "host:port" format (e.g. "localhost:8088").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single control API request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter holds settings of the remote sync server client.
type Adapter struct {
	// HTTPAddress is the base URL of the remote sync server
	// (e.g. "http://localhost:8080").
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// SyncTimeout bounds one whole sync run (push, pull and reconcile).
	// Env: ADAPTER_SYNC_TIMEOUT
	SyncTimeout time.Duration `env:"SYNC_TIMEOUT"`
}

// Workers holds configuration for background jobs.
type Workers struct {
	// SyncInterval is how often a sync is requested while online.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`

	// ProbeInterval is how often the remote server is probed for reachability.
	// Env: WORKERS_PROBE_INTERVAL
	ProbeInterval time.Duration `env:"PROBE_INTERVAL"`

	// CleanupInterval is how often old resolved conflicts are purged.
	// Env: WORKERS_CLEANUP_INTERVAL
	CleanupInterval time.Duration `env:"CLEANUP_INTERVAL"`
}

// GetStructuredConfig loads, merges, and validates the configuration from all
// available sources in the following priority order (last source wins for
// non-zero fields):
//  1. Built-in defaults
//  2. Environment variables
//  3. Command-line flags
//  4. JSON file (path resolved from sources 2 and 3)
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder(os.Args[1:]).
		withDefaults().
		withEnv().
		withFlags().
		withJSON().
		build()
}
