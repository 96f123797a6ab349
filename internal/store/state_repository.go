package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/models"
)

// Key layout inside the KeyValueStore.
const (
	conflictsPrefix      = "conflicts/"
	pendingChangesPrefix = "pending_changes/"
	keyLastSyncAt        = "meta/last_sync_at"
	keyAutoResolve       = "settings/auto_resolve_strategy"
)

// StateRepository implements the three durable collections on top of any
// [KeyValueStore]. Values are JSON documents.
type StateRepository struct {
	kv     KeyValueStore
	logger *logger.Logger
}

// NewStateRepository returns a repository implementing [ConflictRepository],
// [PendingChangeRepository] and [MetadataRepository].
func NewStateRepository(kv KeyValueStore, log *logger.Logger) *StateRepository {
	return &StateRepository{kv: kv, logger: log}
}

// ── conflicts ────────────────────────────────────────────────────────────────

func conflictKey(id string) string {
	return conflictsPrefix + url.PathEscape(id)
}

func (r *StateRepository) SaveConflict(ctx context.Context, conflict models.ConflictRecord) error {
	return r.put(ctx, conflictKey(conflict.ID), conflict)
}

func (r *StateRepository) DeleteConflict(ctx context.Context, id string) error {
	return r.kv.Delete(ctx, conflictKey(id))
}

func (r *StateRepository) ListConflicts(ctx context.Context) ([]models.ConflictRecord, error) {
	entries, err := r.kv.List(ctx, conflictsPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list conflicts: %w", err)
	}

	conflicts := make([]models.ConflictRecord, 0, len(entries))
	for _, entry := range entries {
		var c models.ConflictRecord
		if err = decodeJSON(entry.Value, &c); err != nil {
			r.logger.Err(err).
				Str("func", "StateRepository.ListConflicts").
				Str("key", entry.Key).
				Msg("skipping undecodable conflict")
			continue
		}
		conflicts = append(conflicts, c)
	}

	return conflicts, nil
}

// ── pending changes ──────────────────────────────────────────────────────────

func pendingChangeKey(key models.EntityKey) string {
	return pendingChangesPrefix + url.PathEscape(key.EntityType) + "/" + url.PathEscape(key.EntityID)
}

func (r *StateRepository) SavePendingChange(ctx context.Context, change models.PendingChange) error {
	return r.put(ctx, pendingChangeKey(change.Key()), change)
}

func (r *StateRepository) DeletePendingChange(ctx context.Context, key models.EntityKey) error {
	return r.kv.Delete(ctx, pendingChangeKey(key))
}

func (r *StateRepository) ListPendingChanges(ctx context.Context) ([]models.PendingChange, error) {
	entries, err := r.kv.List(ctx, pendingChangesPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending changes: %w", err)
	}

	changes := make([]models.PendingChange, 0, len(entries))
	for _, entry := range entries {
		var c models.PendingChange
		if err = decodeJSON(entry.Value, &c); err != nil {
			r.logger.Err(err).
				Str("func", "StateRepository.ListPendingChanges").
				Str("key", entry.Key).
				Msg("skipping undecodable pending change")
			continue
		}
		changes = append(changes, c)
	}

	return changes, nil
}

func (r *StateRepository) ClearPendingChanges(ctx context.Context) error {
	entries, err := r.kv.List(ctx, pendingChangesPrefix)
	if err != nil {
		return fmt.Errorf("failed to list pending changes: %w", err)
	}

	var errs []error
	for _, entry := range entries {
		if err = r.kv.Delete(ctx, entry.Key); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// ── metadata ─────────────────────────────────────────────────────────────────

func (r *StateRepository) GetLastSyncAt(ctx context.Context) (*time.Time, error) {
	var at time.Time
	if err := r.get(ctx, keyLastSyncAt, &at); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &at, nil
}

func (r *StateRepository) SetLastSyncAt(ctx context.Context, at time.Time) error {
	return r.put(ctx, keyLastSyncAt, at.UTC())
}

func (r *StateRepository) GetAutoResolveStrategy(ctx context.Context) (models.AutoResolveStrategy, error) {
	var s models.AutoResolveStrategy
	if err := r.get(ctx, keyAutoResolve, &s); err != nil {
		return "", err
	}

	return s, nil
}

func (r *StateRepository) SetAutoResolveStrategy(ctx context.Context, strategy models.AutoResolveStrategy) error {
	return r.put(ctx, keyAutoResolve, strategy)
}

// ── helpers ──────────────────────────────────────────────────────────────────

func (r *StateRepository) put(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncodingRecord, err)
	}

	if err = r.kv.Set(ctx, key, data); err != nil {
		return fmt.Errorf("failed to store %q: %w", key, err)
	}

	return nil
}

func (r *StateRepository) get(ctx context.Context, key string, v any) error {
	data, err := r.kv.Get(ctx, key)
	if err != nil {
		return err
	}

	return decodeJSON(data, v)
}
