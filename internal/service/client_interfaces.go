package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-field-sync/models"
)

// Subscriber receives every notification synchronously. It must not block.
type Subscriber func(models.Notification)

// NotificationBus fans out a freshly computed SyncStatus after each mutation.
type NotificationBus interface {
	// Subscribe registers fn and returns a function removing it again. The
	// returned function is safe to call more than once.
	Subscribe(fn Subscriber) (unsubscribe func())
	// Publish delivers a notification of the given kind to every subscriber
	// in registration order.
	Publish(kind models.NotificationKind, conflictID string)
}

// ConflictStore is the durable collection of conflict records.
type ConflictStore interface {
	// DetectConflict diffs two snapshots. It reports false when either
	// snapshot is missing or no field differs.
	DetectConflict(local, remote *models.VersionSnapshot, labels map[string]string) ([]models.FieldDiff, bool)
	// AddConflict records a divergence, refreshing the existing unresolved
	// record of the same entity in place. It reports false when no conflict
	// exists (missing snapshot or empty diff). A new record is resolved
	// immediately when the auto-resolve strategy is not manual.
	AddConflict(ctx context.Context, in models.ConflictInput) (models.ConflictRecord, bool)

	GetConflicts() []models.ConflictRecord
	GetUnresolvedConflicts() []models.ConflictRecord
	GetConflict(id string) (models.ConflictRecord, bool)
	// GetConflictHistory lists resolved records, most recently resolved first.
	GetConflictHistory() []models.ConflictRecord
	// ConflictCount is the number of unresolved records.
	ConflictCount() int
	// ClearResolvedConflicts purges resolved records older than the given
	// number of days and returns how many were removed.
	ClearResolvedConflicts(ctx context.Context, olderThanDays int) int
}

// ResolutionEngine applies resolution strategies to conflicts.
type ResolutionEngine interface {
	ResolveKeepLocal(ctx context.Context, id string) (models.Record, bool)
	ResolveKeepRemote(ctx context.Context, id string) (models.Record, bool)
	ResolveWithMerge(ctx context.Context, id string, merged models.Record) (models.Record, bool)

	ResolveAllKeepLocal(ctx context.Context) int
	ResolveAllKeepRemote(ctx context.Context) int

	AutoResolveStrategy() models.AutoResolveStrategy
	// SetAutoResolveStrategy rejects unknown strategies by returning false.
	SetAutoResolveStrategy(ctx context.Context, strategy models.AutoResolveStrategy) bool
}

// PendingChangeTracker holds the latest unpushed local edit per entity.
type PendingChangeTracker interface {
	// TrackLocalChange records data as the pending edit of the entity,
	// superseding any earlier one. It reports false for an empty key.
	TrackLocalChange(ctx context.Context, entityType, entityID string, data models.Record) bool
	GetPendingChanges() []models.PendingChange
	GetPendingChange(entityType, entityID string) (models.PendingChange, bool)
	PendingChangesCount() int
	ClearPendingChanges(ctx context.Context)
}

// ConnectivityMonitor tracks reachability and drives single-flight syncs.
type ConnectivityMonitor interface {
	IsOnline() bool
	SyncInProgress() bool
	LastSyncAt() *time.Time
	// SetOnline injects a connectivity transition. Going online requests a
	// sync in the background.
	SetOnline(ctx context.Context, online bool)
	// RequestSync runs one sync round and returns when it is over. It is a
	// no-op while offline or while another round is in flight.
	RequestSync(ctx context.Context)
	// StartSync is RequestSync reporting why a round did not start.
	StartSync(ctx context.Context) error

	Start(ctx context.Context)
	Stop()
}

// Reconciler applies pulled remote records to the local working copy.
type Reconciler interface {
	ApplyRemote(ctx context.Context, record models.RemoteRecord) ReconcileOutcome
	RegisterFieldLabels(entityType string, labels map[string]string)
}

// ClientJob is a background loop started and stopped with the process.
type ClientJob interface {
	Start(ctx context.Context)
	Stop()
}
