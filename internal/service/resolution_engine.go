package service

import (
	"context"
	"errors"
	"sync"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/store"
	"github.com/MKhiriev/go-field-sync/models"
)

const entityIDField = "id"

type resolutionEngine struct {
	conflicts *conflictStore
	tracker   *pendingChangeTracker
	entities  store.LocalEntityStore
	metadata  store.MetadataRepository
	bus       NotificationBus
	logger    *logger.Logger

	mu       sync.RWMutex
	strategy models.AutoResolveStrategy
}

// newResolutionEngine restores the persisted auto-resolve strategy, falling
// back to defaultStrategy, and registers itself with the conflict store.
func newResolutionEngine(
	ctx context.Context,
	conflicts *conflictStore,
	tracker *pendingChangeTracker,
	entities store.LocalEntityStore,
	metadata store.MetadataRepository,
	bus NotificationBus,
	defaultStrategy models.AutoResolveStrategy,
	log *logger.Logger,
) *resolutionEngine {
	e := &resolutionEngine{
		conflicts: conflicts,
		tracker:   tracker,
		entities:  entities,
		metadata:  metadata,
		bus:       bus,
		logger:    log.WithComponent("resolution-engine"),
		strategy:  models.StrategyManual,
	}

	if defaultStrategy.Valid() {
		e.strategy = defaultStrategy
	}

	persisted, err := metadata.GetAutoResolveStrategy(ctx)
	switch {
	case err == nil && persisted.Valid():
		e.strategy = persisted
	case err == nil:
		e.logger.Warn().
			Str("func", "newResolutionEngine").
			Str("strategy", string(persisted)).
			Msg("ignoring unknown persisted strategy")
	case !errors.Is(err, store.ErrNotFound):
		e.logger.Err(err).
			Str("func", "newResolutionEngine").
			Msg("failed to load auto-resolve strategy")
	}

	conflicts.bindResolver(e)

	return e
}

func (e *resolutionEngine) ResolveKeepLocal(ctx context.Context, id string) (models.Record, bool) {
	return e.resolve(ctx, id, models.ResolutionLocal, nil, true)
}

func (e *resolutionEngine) ResolveKeepRemote(ctx context.Context, id string) (models.Record, bool) {
	return e.resolve(ctx, id, models.ResolutionRemote, nil, true)
}

func (e *resolutionEngine) ResolveWithMerge(ctx context.Context, id string, merged models.Record) (models.Record, bool) {
	return e.resolve(ctx, id, models.ResolutionMerged, merged, true)
}

func (e *resolutionEngine) ResolveAllKeepLocal(ctx context.Context) int {
	return e.resolveAll(ctx, models.ResolutionLocal)
}

func (e *resolutionEngine) ResolveAllKeepRemote(ctx context.Context) int {
	return e.resolveAll(ctx, models.ResolutionRemote)
}

func (e *resolutionEngine) resolveAll(ctx context.Context, resolution models.Resolution) int {
	count := 0
	for _, id := range e.conflicts.unresolvedIDs() {
		// a record resolved concurrently is skipped, not counted
		if _, ok := e.resolve(ctx, id, resolution, nil, false); ok {
			count++
		}
	}

	if count > 0 {
		e.logger.Info().
			Str("func", "resolutionEngine.resolveAll").
			Str("resolution", string(resolution)).
			Int("resolved", count).
			Msg("batch resolution finished")
		e.bus.Publish(models.NotificationConflictsBatchResolved, "")
	}

	return count
}

func (e *resolutionEngine) resolve(ctx context.Context, id string, resolution models.Resolution, merged models.Record, notify bool) (models.Record, bool) {
	conflict, winner, ok := e.conflicts.markResolved(ctx, id, resolution, merged)
	if !ok {
		e.logger.Debug().
			Str("func", "resolutionEngine.resolve").
			Str("conflict_id", id).
			Msg("conflict unknown or already resolved")
		return nil, false
	}

	e.applyWinner(ctx, conflict, winner)

	e.logger.Info().
		Str("func", "resolutionEngine.resolve").
		Str("conflict_id", id).
		Str("entity", conflict.Key().String()).
		Str("resolution", string(resolution)).
		Msg("conflict resolved")

	if notify {
		e.bus.Publish(models.NotificationConflictResolved, id)
	}

	return winner.Clone(), true
}

// applyWinner materializes the winning record locally and queues it for push.
func (e *resolutionEngine) applyWinner(ctx context.Context, conflict models.ConflictRecord, winner models.Record) {
	if err := e.entities.Upsert(ctx, conflict.EntityType, conflict.EntityID, winner.Clone()); err != nil {
		e.logger.Err(err).
			Str("func", "resolutionEngine.applyWinner").
			Str("conflict_id", conflict.ID).
			Str("entity_type", conflict.EntityType).
			Str("entity_id", conflict.EntityID).
			Msg("failed to write winning record to local store")
	}

	e.tracker.track(ctx, models.PendingChange{
		EntityType: conflict.EntityType,
		EntityID:   conflict.EntityID,
		EntityName: conflict.EntityName,
		Data:       winner,
	}, false)
}

func (e *resolutionEngine) AutoResolveStrategy() models.AutoResolveStrategy {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.strategy
}

func (e *resolutionEngine) SetAutoResolveStrategy(ctx context.Context, strategy models.AutoResolveStrategy) bool {
	if !strategy.Valid() {
		e.logger.Warn().
			Str("func", "resolutionEngine.SetAutoResolveStrategy").
			Str("strategy", string(strategy)).
			Msg("rejected unknown auto-resolve strategy")
		return false
	}

	e.mu.Lock()
	e.strategy = strategy
	e.mu.Unlock()

	if err := e.metadata.SetAutoResolveStrategy(ctx, strategy); err != nil {
		e.logger.Err(err).
			Str("func", "resolutionEngine.SetAutoResolveStrategy").
			Str("strategy", string(strategy)).
			Msg("failed to persist auto-resolve strategy")
	}

	e.bus.Publish(models.NotificationSettingsChanged, "")

	return true
}

// winningRecord computes the authoritative data for a resolution. The result
// never aliases the conflict's snapshots.
func winningRecord(c models.ConflictRecord, resolution models.Resolution, merged models.Record) models.Record {
	var winner models.Record

	switch resolution {
	case models.ResolutionRemote:
		winner = c.RemoteVersion.Data.Clone()
	case models.ResolutionMerged:
		winner = c.LocalVersion.Data.Clone()
		if winner == nil {
			winner = make(models.Record, len(merged))
		}
		for k, v := range merged.Clone() {
			winner[k] = v
		}
		winner[entityIDField] = c.EntityID
		return winner
	default:
		winner = c.LocalVersion.Data.Clone()
	}

	if winner == nil {
		winner = make(models.Record)
	}
	if v, ok := winner[entityIDField]; !ok || v == nil {
		winner[entityIDField] = c.EntityID
	}

	return winner
}
