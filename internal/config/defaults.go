package config

import "time"

// Built-in defaults, overridden by any non-zero value from env, flags or JSON.
const (
	DefaultAutoResolveStrategy   = "manual"
	DefaultResolvedRetentionDays = 30

	DefaultDBDSN       = "field-sync.db"
	DefaultStateDriver = "sqlite"
	DefaultStatePath   = "field-sync-state.db"

	DefaultServerAddress        = "localhost:8088"
	DefaultServerRequestTimeout = 15 * time.Second

	DefaultAdapterAddress        = "http://localhost:8080"
	DefaultAdapterRequestTimeout = 10 * time.Second
	DefaultAdapterSyncTimeout    = 60 * time.Second

	DefaultSyncInterval    = 5 * time.Minute
	DefaultProbeInterval   = 15 * time.Second
	DefaultCleanupInterval = 24 * time.Hour
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			AutoResolveStrategy:   DefaultAutoResolveStrategy,
			ResolvedRetentionDays: DefaultResolvedRetentionDays,
		},
		Storage: Storage{
			DB:    DB{DSN: DefaultDBDSN},
			State: State{Driver: DefaultStateDriver, Path: DefaultStatePath},
		},
		Server: Server{
			HTTPAddress:    DefaultServerAddress,
			RequestTimeout: DefaultServerRequestTimeout,
		},
		Adapter: Adapter{
			HTTPAddress:    DefaultAdapterAddress,
			RequestTimeout: DefaultAdapterRequestTimeout,
			SyncTimeout:    DefaultAdapterSyncTimeout,
		},
		Workers: Workers{
			SyncInterval:    DefaultSyncInterval,
			ProbeInterval:   DefaultProbeInterval,
			CleanupInterval: DefaultCleanupInterval,
		},
	}
}
