package service

import (
	"context"
	"errors"
	"sync"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/store"
	"github.com/MKhiriev/go-field-sync/models"
)

// ReconcileOutcome tells what ApplyRemote did with one pulled record.
type ReconcileOutcome string

const (
	// ReconcileStored means the entity was unknown locally and was stored.
	ReconcileStored ReconcileOutcome = "stored"
	// ReconcileUnchanged means local and remote data were already equal.
	ReconcileUnchanged ReconcileOutcome = "unchanged"
	// ReconcileFastForwarded means the local copy had no pending edit and
	// was replaced by the remote data.
	ReconcileFastForwarded ReconcileOutcome = "fast-forwarded"
	// ReconcileConflict means a pending local edit diverges from the remote
	// data and a conflict was recorded.
	ReconcileConflict ReconcileOutcome = "conflict"
	// ReconcileFailed means the local store could not be read or written.
	ReconcileFailed ReconcileOutcome = "failed"
)

const localActor = "local"

type reconciler struct {
	conflicts *conflictStore
	tracker   *pendingChangeTracker
	entities  store.LocalEntityStore
	logger    *logger.Logger

	mu     sync.RWMutex
	labels map[string]map[string]string
}

func newReconciler(conflicts *conflictStore, tracker *pendingChangeTracker, entities store.LocalEntityStore, log *logger.Logger) *reconciler {
	return &reconciler{
		conflicts: conflicts,
		tracker:   tracker,
		entities:  entities,
		logger:    log.WithComponent("reconciler"),
		labels:    make(map[string]map[string]string),
	}
}

// RegisterFieldLabels sets the display labels used for conflicts of the
// given entity type.
func (r *reconciler) RegisterFieldLabels(entityType string, labels map[string]string) {
	copied := make(map[string]string, len(labels))
	for k, v := range labels {
		copied[k] = v
	}

	r.mu.Lock()
	r.labels[entityType] = copied
	r.mu.Unlock()
}

func (r *reconciler) fieldLabels(entityType string) map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.labels[entityType]
}

func (r *reconciler) ApplyRemote(ctx context.Context, record models.RemoteRecord) ReconcileOutcome {
	log := r.logger.With().
		Str("func", "reconciler.ApplyRemote").
		Str("entity_type", record.EntityType).
		Str("entity_id", record.EntityID).
		Logger()

	local := &models.VersionSnapshot{ModifiedBy: localActor}
	pending, hasPending := r.tracker.GetPendingChange(record.EntityType, record.EntityID)
	if hasPending {
		local.Data = pending.Data
		local.ModifiedAt = pending.ChangedAt
	} else {
		stored, err := r.entities.Get(ctx, record.EntityType, record.EntityID)
		if errors.Is(err, store.ErrNotFound) {
			return r.store(ctx, record, ReconcileStored)
		}
		if err != nil {
			log.Err(err).Msg("failed to read local entity")
			return ReconcileFailed
		}
		local.Data = stored
	}

	remote := record.Snapshot
	labels := r.fieldLabels(record.EntityType)
	if _, differ := r.conflicts.DetectConflict(local, &remote, labels); !differ {
		return ReconcileUnchanged
	}

	if !hasPending {
		return r.store(ctx, record, ReconcileFastForwarded)
	}

	conflict, ok := r.conflicts.AddConflict(ctx, models.ConflictInput{
		EntityType:  record.EntityType,
		EntityID:    record.EntityID,
		EntityName:  record.EntityName,
		Local:       local,
		Remote:      &remote,
		FieldLabels: labels,
	})
	if !ok {
		return ReconcileUnchanged
	}

	log.Info().Str("conflict_id", conflict.ID).Msg("pending local edit diverges from remote")

	return ReconcileConflict
}

func (r *reconciler) store(ctx context.Context, record models.RemoteRecord, outcome ReconcileOutcome) ReconcileOutcome {
	if err := r.entities.Upsert(ctx, record.EntityType, record.EntityID, record.Snapshot.Data.Clone()); err != nil {
		r.logger.Err(err).
			Str("func", "reconciler.store").
			Str("entity_type", record.EntityType).
			Str("entity_id", record.EntityID).
			Msg("failed to store remote record")
		return ReconcileFailed
	}

	return outcome
}
