package store

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/MKhiriev/go-field-sync/internal/config"
	"github.com/MKhiriev/go-field-sync/internal/logger"
)

// ClientStorages groups every client-side repository into a single value
// handed to the service layer.
type ClientStorages struct {
	// Entities is the SQLite working copy of domain entities.
	Entities LocalEntityStore

	// Conflicts, PendingChanges and Metadata share one sync-state store
	// selected by the configured driver.
	Conflicts      ConflictRepository
	PendingChanges PendingChangeRepository
	Metadata       MetadataRepository

	closers []io.Closer
}

// NewClientStorages opens the local SQLite database, applies migrations and
// opens the sync-state store chosen by cfg.State.Driver:
//   - "memory" keeps state in process memory;
//   - "bolt" uses a bbolt file at cfg.State.Path;
//   - "sqlite" reuses the kv_state table of the local database.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, log *logger.Logger) (*ClientStorages, error) {
	log.Info().Str("state_driver", cfg.State.Driver).Msg("creating new storages...")

	db, err := NewConnectSQLite(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	kv, err := newStateStore(cfg.State, db)
	if err != nil {
		db.Close()
		return nil, err
	}

	state := NewStateRepository(kv, log)

	return &ClientStorages{
		Entities:       NewSQLiteEntityStore(db, log),
		Conflicts:      state,
		PendingChanges: state,
		Metadata:       state,
		closers:        []io.Closer{kv, db},
	}, nil
}

func newStateStore(cfg config.ClientState, db *DB) (KeyValueStore, error) {
	switch cfg.Driver {
	case config.StateDriverMemory:
		return NewMemoryStore(), nil
	case config.StateDriverBolt:
		kv, err := NewBoltStore(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("bolt state store: %w", err)
		}
		return kv, nil
	case config.StateDriverSQLite:
		return NewSQLiteStore(db), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}
}

// Close releases the state store and the database connection.
func (s *ClientStorages) Close() error {
	var errs []error
	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
