// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// State drivers accepted by [ClientState].
const (
	StateDriverMemory = "memory"
	StateDriverBolt   = "bolt"
	StateDriverSQLite = "sqlite"
)

// validate checks the merged [StructuredConfig]. Only values that can never be
// correct regardless of the consumer are rejected here; the client view is
// checked by [ClientConfig.validate].
func (cfg *StructuredConfig) validate() error {
	if cfg.App.ResolvedRetentionDays < 0 {
		return ErrInvalidAppConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if !cfg.App.AutoResolveStrategy.Valid() || cfg.App.ResolvedRetentionDays <= 0 {
		return ErrInvalidAppConfigs
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	switch cfg.Storage.State.Driver {
	case StateDriverMemory, StateDriverSQLite:
	case StateDriverBolt:
		if cfg.Storage.State.Path == "" {
			return ErrInvalidStorageConfigs
		}
	default:
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 || cfg.Adapter.SyncTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.Workers.SyncInterval <= 0 || cfg.Workers.ProbeInterval <= 0 || cfg.Workers.CleanupInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
