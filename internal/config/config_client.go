package config

import (
	"fmt"
	"time"

	"github.com/MKhiriev/go-field-sync/models"
)

// ClientApp holds conflict policy settings derived from the shared
// structured config.
type ClientApp struct {
	// AutoResolveStrategy is the strategy used until the user persists one.
	AutoResolveStrategy models.AutoResolveStrategy
	// ResolvedRetentionDays is the history retention window in days.
	ResolvedRetentionDays int
	// Version is the build version reported by the control API.
	Version string
}

// ClientAdapter holds network settings used by the remote sync adapter.
type ClientAdapter struct {
	// HTTPAddress is the base URL of the remote sync server.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound requests.
	RequestTimeout time.Duration
	// SyncTimeout bounds one whole sync run.
	SyncTimeout time.Duration
}

// ClientDB contains local database connection settings.
type ClientDB struct {
	// DSN is the SQLite database path.
	DSN string
}

// ClientState selects the sync-state backend.
type ClientState struct {
	Driver string
	Path   string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local entity database settings.
	DB ClientDB
	// State holds sync-state store settings.
	State ClientState
}

// ClientServer holds local control API settings.
type ClientServer struct {
	HTTPAddress    string
	RequestTimeout time.Duration
}

// ClientWorkers contains client background job settings.
type ClientWorkers struct {
	// SyncInterval defines how often the sync job runs.
	SyncInterval time.Duration
	// ProbeInterval defines how often connectivity is probed.
	ProbeInterval time.Duration
	// CleanupInterval defines how often resolved history is purged.
	CleanupInterval time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	Server  ClientServer
	Workers ClientWorkers
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := NewClientConfig(cfg)

	return clientCfg, clientCfg.validate()
}

// NewClientConfig maps the fields relevant to the client runtime.
func NewClientConfig(cfg *StructuredConfig) *ClientConfig {
	return &ClientConfig{
		App: ClientApp{
			AutoResolveStrategy:   models.AutoResolveStrategy(cfg.App.AutoResolveStrategy),
			ResolvedRetentionDays: cfg.App.ResolvedRetentionDays,
			Version:               cfg.App.Version,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
			SyncTimeout:    cfg.Adapter.SyncTimeout,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				DSN: cfg.Storage.DB.DSN,
			},
			State: ClientState{
				Driver: cfg.Storage.State.Driver,
				Path:   cfg.Storage.State.Path,
			},
		},
		Server: ClientServer{
			HTTPAddress:    cfg.Server.HTTPAddress,
			RequestTimeout: cfg.Server.RequestTimeout,
		},
		Workers: ClientWorkers{
			SyncInterval:    cfg.Workers.SyncInterval,
			ProbeInterval:   cfg.Workers.ProbeInterval,
			CleanupInterval: cfg.Workers.CleanupInterval,
		},
	}
}
