package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/MKhiriev/go-field-sync/internal/diff"
	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/store"
	"github.com/MKhiriev/go-field-sync/models"
)

type pendingChangeTracker struct {
	repo   store.PendingChangeRepository
	bus    NotificationBus
	logger *logger.Logger
	now    func() time.Time

	mu      sync.RWMutex
	changes map[models.EntityKey]models.PendingChange
}

func newPendingChangeTracker(ctx context.Context, repo store.PendingChangeRepository, bus NotificationBus, log *logger.Logger) (*pendingChangeTracker, error) {
	t := &pendingChangeTracker{
		repo:    repo,
		bus:     bus,
		logger:  log.WithComponent("pending-change-tracker"),
		now:     time.Now,
		changes: make(map[models.EntityKey]models.PendingChange),
	}

	persisted, err := repo.ListPendingChanges(ctx)
	if err != nil {
		return nil, fmt.Errorf("load pending changes: %w", err)
	}
	for _, c := range persisted {
		if prev, ok := t.changes[c.Key()]; ok && prev.ChangedAt.After(c.ChangedAt) {
			continue
		}
		t.changes[c.Key()] = c
	}

	return t, nil
}

func (t *pendingChangeTracker) TrackLocalChange(ctx context.Context, entityType, entityID string, data models.Record) bool {
	return t.track(ctx, models.PendingChange{
		EntityType: entityType,
		EntityID:   entityID,
		Data:       data,
	}, true)
}

// track upserts change keyed by entity, stamping ChangedAt. The tracker keeps
// its own copy of the data.
func (t *pendingChangeTracker) track(ctx context.Context, change models.PendingChange, notify bool) bool {
	if change.EntityType == "" || change.EntityID == "" {
		t.logger.Warn().
			Str("func", "pendingChangeTracker.track").
			Str("entity_type", change.EntityType).
			Str("entity_id", change.EntityID).
			Msg("ignoring change without entity key")
		return false
	}

	change.Data = change.Data.Clone()
	if change.EntityName == "" {
		change.EntityName = deriveEntityName(change.EntityID, change.Data)
	}

	t.mu.Lock()
	change.ChangedAt = t.now().UTC()
	if prev, ok := t.changes[change.Key()]; ok && !change.ChangedAt.After(prev.ChangedAt) {
		// keep ChangedAt strictly increasing per entity so clearSynced can
		// tell a newer edit from the pushed one
		change.ChangedAt = prev.ChangedAt.Add(time.Nanosecond)
	}
	t.changes[change.Key()] = change
	t.mu.Unlock()

	if err := t.repo.SavePendingChange(ctx, change); err != nil {
		t.logger.Err(err).
			Str("func", "pendingChangeTracker.track").
			Str("entity", change.Key().String()).
			Msg("failed to persist pending change")
	}

	if notify {
		t.bus.Publish(models.NotificationPendingChanged, "")
	}

	return true
}

// GetPendingChanges returns the most recently changed entries first.
func (t *pendingChangeTracker) GetPendingChanges() []models.PendingChange {
	t.mu.RLock()
	out := make([]models.PendingChange, 0, len(t.changes))
	for _, c := range t.changes {
		c.Data = c.Data.Clone()
		out = append(out, c)
	}
	t.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].ChangedAt.Equal(out[j].ChangedAt) {
			return out[i].ChangedAt.After(out[j].ChangedAt)
		}
		return out[i].Key().String() < out[j].Key().String()
	})

	return out
}

func (t *pendingChangeTracker) GetPendingChange(entityType, entityID string) (models.PendingChange, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	c, ok := t.changes[models.EntityKey{EntityType: entityType, EntityID: entityID}]
	if !ok {
		return models.PendingChange{}, false
	}
	c.Data = c.Data.Clone()
	return c, true
}

func (t *pendingChangeTracker) PendingChangesCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.changes)
}

func (t *pendingChangeTracker) ClearPendingChanges(ctx context.Context) {
	t.mu.Lock()
	t.changes = make(map[models.EntityKey]models.PendingChange)
	t.mu.Unlock()

	if err := t.repo.ClearPendingChanges(ctx); err != nil {
		t.logger.Err(err).
			Str("func", "pendingChangeTracker.ClearPendingChanges").
			Msg("failed to clear persisted pending changes")
	}

	t.bus.Publish(models.NotificationPendingChanged, "")
}

// clearSynced drops the entries that were pushed and not edited since. An
// entity tracked again during the push keeps its newer entry.
func (t *pendingChangeTracker) clearSynced(ctx context.Context, pushed []models.PendingChange) int {
	var removed []models.EntityKey

	t.mu.Lock()
	for _, p := range pushed {
		current, ok := t.changes[p.Key()]
		if !ok || !current.ChangedAt.Equal(p.ChangedAt) || !diff.Equal(map[string]any(current.Data), map[string]any(p.Data)) {
			continue
		}
		delete(t.changes, p.Key())
		removed = append(removed, p.Key())
	}
	t.mu.Unlock()

	for _, key := range removed {
		if err := t.repo.DeletePendingChange(ctx, key); err != nil {
			t.logger.Err(err).
				Str("func", "pendingChangeTracker.clearSynced").
				Str("entity", key.String()).
				Msg("failed to delete synced pending change")
		}
	}

	if len(removed) > 0 {
		t.bus.Publish(models.NotificationPendingChanged, "")
	}

	return len(removed)
}
