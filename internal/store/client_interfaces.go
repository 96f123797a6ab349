package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-field-sync/models"
)

// KeyValue is a single entry returned by [KeyValueStore.List].
type KeyValue struct {
	Key   string
	Value []byte
}

// KeyValueStore is the persistence port behind the sync-state repositories.
// Implementations must be safe for concurrent use. Get returns [ErrNotFound]
// for a missing key; List returns entries ordered by key.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]KeyValue, error)
	Close() error
}

// ConflictRepository persists the conflict collection.
type ConflictRepository interface {
	SaveConflict(ctx context.Context, conflict models.ConflictRecord) error
	DeleteConflict(ctx context.Context, id string) error
	ListConflicts(ctx context.Context) ([]models.ConflictRecord, error)
}

// PendingChangeRepository persists the pending-change collection.
type PendingChangeRepository interface {
	SavePendingChange(ctx context.Context, change models.PendingChange) error
	DeletePendingChange(ctx context.Context, key models.EntityKey) error
	ListPendingChanges(ctx context.Context) ([]models.PendingChange, error)
	ClearPendingChanges(ctx context.Context) error
}

// MetadataRepository persists sync metadata and user settings.
type MetadataRepository interface {
	// GetLastSyncAt returns nil when no sync has completed yet.
	GetLastSyncAt(ctx context.Context) (*time.Time, error)
	SetLastSyncAt(ctx context.Context, at time.Time) error
	// GetAutoResolveStrategy returns [ErrNotFound] when the user never chose one.
	GetAutoResolveStrategy(ctx context.Context) (models.AutoResolveStrategy, error)
	SetAutoResolveStrategy(ctx context.Context, strategy models.AutoResolveStrategy) error
}
