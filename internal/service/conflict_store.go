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

// autoResolver is the part of the resolution engine the store consults when
// a new conflict is created.
type autoResolver interface {
	AutoResolveStrategy() models.AutoResolveStrategy
	applyWinner(ctx context.Context, conflict models.ConflictRecord, winner models.Record)
}

type idGenerator interface {
	Generate() string
}

type conflictStore struct {
	repo   store.ConflictRepository
	bus    NotificationBus
	ids    idGenerator
	logger *logger.Logger
	now    func() time.Time

	mu         sync.RWMutex
	conflicts  map[string]*models.ConflictRecord
	unresolved map[models.EntityKey]string
	resolver   autoResolver
}

// newConflictStore loads the persisted collection into memory. It is the only
// conflict operation that returns an error.
func newConflictStore(ctx context.Context, repo store.ConflictRepository, bus NotificationBus, ids idGenerator, log *logger.Logger) (*conflictStore, error) {
	s := &conflictStore{
		repo:       repo,
		bus:        bus,
		ids:        ids,
		logger:     log.WithComponent("conflict-store"),
		now:        time.Now,
		conflicts:  make(map[string]*models.ConflictRecord),
		unresolved: make(map[models.EntityKey]string),
	}

	persisted, err := repo.ListConflicts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load conflicts: %w", err)
	}

	var stale []string
	for i := range persisted {
		c := persisted[i]
		s.conflicts[c.ID] = &c
		if c.IsResolved() {
			continue
		}
		if prevID, dup := s.unresolved[c.Key()]; dup {
			// only the newest unresolved record per entity stays live
			staleID := prevID
			if s.conflicts[prevID].CreatedAt.After(c.CreatedAt) {
				staleID = c.ID
			}
			s.logger.Warn().
				Str("func", "conflictStore.load").
				Str("entity", c.Key().String()).
				Str("conflict_id", staleID).
				Msg("dropping stale unresolved conflict persisted for entity")
			delete(s.conflicts, staleID)
			stale = append(stale, staleID)
			if staleID == c.ID {
				continue
			}
		}
		s.unresolved[c.Key()] = c.ID
	}

	for _, id := range stale {
		if err := repo.DeleteConflict(ctx, id); err != nil {
			s.logger.Err(err).
				Str("func", "conflictStore.load").
				Str("conflict_id", id).
				Msg("failed to delete stale conflict")
		}
	}

	s.logger.Debug().Int("conflicts", len(s.conflicts)).Msg("conflict store loaded")

	return s, nil
}

func (s *conflictStore) bindResolver(r autoResolver) {
	s.mu.Lock()
	s.resolver = r
	s.mu.Unlock()
}

func (s *conflictStore) DetectConflict(local, remote *models.VersionSnapshot, labels map[string]string) ([]models.FieldDiff, bool) {
	if local == nil || remote == nil {
		return nil, false
	}

	fields := diff.Generate(local.Data, remote.Data, labels)
	return fields, len(fields) > 0
}

func (s *conflictStore) AddConflict(ctx context.Context, in models.ConflictInput) (models.ConflictRecord, bool) {
	if in.Local == nil || in.Remote == nil {
		return models.ConflictRecord{}, false
	}
	local, remote := in.Local.Clone(), in.Remote.Clone()

	fields, ok := s.DetectConflict(&local, &remote, in.FieldLabels)
	if !ok {
		return models.ConflictRecord{}, false
	}

	key := models.EntityKey{EntityType: in.EntityType, EntityID: in.EntityID}
	name := in.EntityName
	if name == "" {
		name = deriveEntityName(in.EntityID, remote.Data, local.Data)
	}

	s.mu.Lock()

	if id, exists := s.unresolved[key]; exists {
		c := s.conflicts[id]
		c.LocalVersion = local
		c.RemoteVersion = remote
		c.ConflictingFields = fields
		c.EntityName = name
		refreshed := c.Clone()
		s.mu.Unlock()

		s.persist(ctx, refreshed)
		s.logger.Info().
			Str("func", "conflictStore.AddConflict").
			Str("conflict_id", refreshed.ID).
			Str("entity", key.String()).
			Int("fields", len(fields)).
			Msg("refreshed unresolved conflict")
		s.bus.Publish(models.NotificationConflictUpdated, refreshed.ID)

		return refreshed, true
	}

	strategy := models.StrategyManual
	if s.resolver != nil {
		strategy = s.resolver.AutoResolveStrategy()
	}

	now := s.now().UTC()
	c := &models.ConflictRecord{
		ID:                s.ids.Generate(),
		EntityType:        in.EntityType,
		EntityID:          in.EntityID,
		EntityName:        name,
		LocalVersion:      local,
		RemoteVersion:     remote,
		ConflictingFields: fields,
		Status:            models.ConflictUnresolved,
		CreatedAt:         now,
	}

	var winner models.Record
	if resolution := strategy.Resolution(); resolution != models.ResolutionNone {
		// created already resolved: no reader ever sees it unresolved
		winner = winningRecord(*c, resolution, nil)
		c.Status = models.ConflictResolved
		c.Resolution = resolution
		c.ResolvedAt = &now
	} else {
		s.unresolved[key] = c.ID
	}
	s.conflicts[c.ID] = c
	created := c.Clone()
	resolver := s.resolver
	s.mu.Unlock()

	s.persist(ctx, created)
	s.logger.Info().
		Str("func", "conflictStore.AddConflict").
		Str("conflict_id", created.ID).
		Str("entity", key.String()).
		Str("strategy", string(strategy)).
		Strs("fields", diff.Fields(fields)).
		Msg("conflict recorded")
	s.bus.Publish(models.NotificationConflictAdded, created.ID)

	if created.IsResolved() {
		resolver.applyWinner(ctx, created, winner)
		s.bus.Publish(models.NotificationConflictResolved, created.ID)
	}

	return created, true
}

// markResolved is the atomic unresolved -> resolved transition. It returns
// false when the record is unknown or already resolved.
func (s *conflictStore) markResolved(ctx context.Context, id string, resolution models.Resolution, merged models.Record) (models.ConflictRecord, models.Record, bool) {
	s.mu.Lock()

	c, ok := s.conflicts[id]
	if !ok || c.IsResolved() {
		s.mu.Unlock()
		return models.ConflictRecord{}, nil, false
	}

	winner := winningRecord(*c, resolution, merged)
	now := s.now().UTC()
	c.Status = models.ConflictResolved
	c.Resolution = resolution
	c.ResolvedAt = &now
	if resolution == models.ResolutionMerged {
		c.MergedData = winner.Clone()
	}
	delete(s.unresolved, c.Key())
	resolved := c.Clone()
	s.mu.Unlock()

	s.persist(ctx, resolved)

	return resolved, winner, true
}

func (s *conflictStore) hasUnresolved(key models.EntityKey) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.unresolved[key]
	return ok
}

func (s *conflictStore) unresolvedIDs() []string {
	conflicts := s.GetUnresolvedConflicts()
	ids := make([]string, 0, len(conflicts))
	for _, c := range conflicts {
		ids = append(ids, c.ID)
	}
	return ids
}

func (s *conflictStore) GetConflicts() []models.ConflictRecord {
	return s.collect(func(*models.ConflictRecord) bool { return true }, byCreatedAtDesc)
}

func (s *conflictStore) GetUnresolvedConflicts() []models.ConflictRecord {
	return s.collect(func(c *models.ConflictRecord) bool { return !c.IsResolved() }, byCreatedAtDesc)
}

func (s *conflictStore) GetConflictHistory() []models.ConflictRecord {
	return s.collect(func(c *models.ConflictRecord) bool { return c.IsResolved() }, byResolvedAtDesc)
}

func (s *conflictStore) GetConflict(id string) (models.ConflictRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.conflicts[id]
	if !ok {
		return models.ConflictRecord{}, false
	}
	return c.Clone(), true
}

func (s *conflictStore) ConflictCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.unresolved)
}

func (s *conflictStore) ClearResolvedConflicts(ctx context.Context, olderThanDays int) int {
	if olderThanDays < 0 {
		olderThanDays = 0
	}
	cutoff := s.now().UTC().AddDate(0, 0, -olderThanDays)

	s.mu.Lock()
	var purged []string
	for id, c := range s.conflicts {
		if c.IsResolved() && c.ResolvedAt != nil && c.ResolvedAt.Before(cutoff) {
			delete(s.conflicts, id)
			purged = append(purged, id)
		}
	}
	s.mu.Unlock()

	for _, id := range purged {
		if err := s.repo.DeleteConflict(ctx, id); err != nil {
			s.logger.Err(err).
				Str("func", "conflictStore.ClearResolvedConflicts").
				Str("conflict_id", id).
				Msg("failed to delete purged conflict")
		}
	}

	if len(purged) > 0 {
		s.logger.Info().
			Str("func", "conflictStore.ClearResolvedConflicts").
			Int("older_than_days", olderThanDays).
			Int("purged", len(purged)).
			Msg("purged resolved conflicts")
		s.bus.Publish(models.NotificationConflictsPurged, "")
	}

	return len(purged)
}

// persist writes through to the repository. A failure is logged only: the
// in-memory state has already advanced.
func (s *conflictStore) persist(ctx context.Context, c models.ConflictRecord) {
	if err := s.repo.SaveConflict(ctx, c); err != nil {
		s.logger.Err(err).
			Str("func", "conflictStore.persist").
			Str("conflict_id", c.ID).
			Msg("failed to persist conflict")
	}
}

func (s *conflictStore) collect(keep func(*models.ConflictRecord) bool, less func(a, b *models.ConflictRecord) bool) []models.ConflictRecord {
	s.mu.RLock()
	selected := make([]*models.ConflictRecord, 0, len(s.conflicts))
	for _, c := range s.conflicts {
		if keep(c) {
			selected = append(selected, c)
		}
	}
	sort.Slice(selected, func(i, j int) bool { return less(selected[i], selected[j]) })

	out := make([]models.ConflictRecord, 0, len(selected))
	for _, c := range selected {
		out = append(out, c.Clone())
	}
	s.mu.RUnlock()

	return out
}

func byCreatedAtDesc(a, b *models.ConflictRecord) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}

func byResolvedAtDesc(a, b *models.ConflictRecord) bool {
	at, bt := resolvedAt(a), resolvedAt(b)
	if !at.Equal(bt) {
		return at.After(bt)
	}
	return a.ID > b.ID
}

func resolvedAt(c *models.ConflictRecord) time.Time {
	if c.ResolvedAt == nil {
		return time.Time{}
	}
	return *c.ResolvedAt
}
