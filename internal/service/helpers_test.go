package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/store"
	"github.com/MKhiriev/go-field-sync/models"
	"github.com/stretchr/testify/require"
)

// memEntities is an in-memory LocalEntityStore.
type memEntities struct {
	mu      sync.Mutex
	records map[models.EntityKey]models.Record
	upserts int
}

func newMemEntities() *memEntities {
	return &memEntities{records: make(map[models.EntityKey]models.Record)}
}

func (m *memEntities) Get(_ context.Context, entityType, entityID string) (models.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.records[models.EntityKey{EntityType: entityType, EntityID: entityID}]
	if !ok {
		return nil, store.ErrNotFound
	}
	return r.Clone(), nil
}

func (m *memEntities) Upsert(_ context.Context, entityType, entityID string, record models.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records[models.EntityKey{EntityType: entityType, EntityID: entityID}] = record.Clone()
	m.upserts++
	return nil
}

func (m *memEntities) put(entityType, entityID string, record models.Record) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records[models.EntityKey{EntityType: entityType, EntityID: entityID}] = record.Clone()
}

func (m *memEntities) record(entityType, entityID string) models.Record {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.records[models.EntityKey{EntityType: entityType, EntityID: entityID}].Clone()
}

// seqIDs hands out increasing conflict ids so ordering ties are stable.
type seqIDs struct {
	n atomic.Int64
}

func (g *seqIDs) Generate() string {
	return fmt.Sprintf("conflict-%03d", g.n.Add(1))
}

// eventLog records every notification delivered by a bus.
type eventLog struct {
	mu     sync.Mutex
	events []models.Notification
}

func (l *eventLog) record(n models.Notification) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.events = append(l.events, n)
}

func (l *eventLog) kinds() []models.NotificationKind {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.NotificationKind, 0, len(l.events))
	for _, e := range l.events {
		out = append(out, e.Kind)
	}
	return out
}

func (l *eventLog) count(kind models.NotificationKind) int {
	n := 0
	for _, k := range l.kinds() {
		if k == kind {
			n++
		}
	}
	return n
}

func (l *eventLog) last() models.Notification {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.events) == 0 {
		return models.Notification{}
	}
	return l.events[len(l.events)-1]
}

// testEngine wires the components over an in-memory state store.
type testEngine struct {
	state      *store.StateRepository
	entities   *memEntities
	bus        *notificationBus
	events     *eventLog
	conflicts  *conflictStore
	tracker    *pendingChangeTracker
	resolution *resolutionEngine
	reconciler *reconciler
}

func newTestEngine(t *testing.T, strategy models.AutoResolveStrategy) *testEngine {
	t.Helper()
	return newTestEngineOn(t, store.NewStateRepository(store.NewMemoryStore(), logger.Nop()), newMemEntities(), strategy)
}

func newTestEngineOn(t *testing.T, state *store.StateRepository, entities *memEntities, strategy models.AutoResolveStrategy) *testEngine {
	t.Helper()
	ctx := context.Background()
	log := logger.Nop()

	bus := newNotificationBus(log)
	events := &eventLog{}
	bus.Subscribe(events.record)

	conflicts, err := newConflictStore(ctx, state, bus, &seqIDs{}, log)
	require.NoError(t, err)

	tracker, err := newPendingChangeTracker(ctx, state, bus, log)
	require.NoError(t, err)

	resolution := newResolutionEngine(ctx, conflicts, tracker, entities, state, bus, strategy, log)

	return &testEngine{
		state:      state,
		entities:   entities,
		bus:        bus,
		events:     events,
		conflicts:  conflicts,
		tracker:    tracker,
		resolution: resolution,
		reconciler: newReconciler(conflicts, tracker, entities, log),
	}
}

func snapshot(data models.Record, by string) *models.VersionSnapshot {
	return &models.VersionSnapshot{
		Data:       data,
		ModifiedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		ModifiedBy: by,
	}
}

func orderInput(id string, local, remote models.Record) models.ConflictInput {
	return models.ConflictInput{
		EntityType: "order",
		EntityID:   id,
		Local:      snapshot(local, "local"),
		Remote:     snapshot(remote, "server"),
	}
}
