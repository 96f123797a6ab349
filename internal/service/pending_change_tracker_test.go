package service

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-field-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPendingChangeTracker_TrackLocalChange(t *testing.T) {
	e := newTestEngine(t, models.StrategyManual)
	ctx := context.Background()

	ok := e.tracker.TrackLocalChange(ctx, "customer", "c1", models.Record{"firmenname": "Muster GmbH", "city": "Bonn"})
	require.True(t, ok)

	change, ok := e.tracker.GetPendingChange("customer", "c1")
	require.True(t, ok)
	assert.Equal(t, "Muster GmbH", change.EntityName)
	assert.Equal(t, "Bonn", change.Data["city"])
	assert.False(t, change.ChangedAt.IsZero())
	assert.Equal(t, 1, e.tracker.PendingChangesCount())
	assert.Equal(t, []models.NotificationKind{models.NotificationPendingChanged}, e.events.kinds())

	persisted, err := e.state.ListPendingChanges(ctx)
	require.NoError(t, err)
	require.Len(t, persisted, 1)
	assert.Equal(t, "c1", persisted[0].EntityID)
}

func TestPendingChangeTracker_LatestEditSupersedes(t *testing.T) {
	e := newTestEngine(t, models.StrategyManual)
	ctx := context.Background()
	fixed := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	e.tracker.now = func() time.Time { return fixed }

	e.tracker.TrackLocalChange(ctx, "order", "1", models.Record{"status": "draft"})
	first, _ := e.tracker.GetPendingChange("order", "1")
	e.tracker.TrackLocalChange(ctx, "order", "1", models.Record{"status": "sent"})
	second, _ := e.tracker.GetPendingChange("order", "1")

	assert.Equal(t, 1, e.tracker.PendingChangesCount())
	assert.Equal(t, "sent", second.Data["status"])
	assert.True(t, second.ChangedAt.After(first.ChangedAt), "changedAt strictly increases even with a frozen clock")
}

func TestPendingChangeTracker_RejectsEmptyKey(t *testing.T) {
	e := newTestEngine(t, models.StrategyManual)
	ctx := context.Background()

	assert.False(t, e.tracker.TrackLocalChange(ctx, "", "1", models.Record{"a": 1.0}))
	assert.False(t, e.tracker.TrackLocalChange(ctx, "order", "", models.Record{"a": 1.0}))
	assert.Zero(t, e.tracker.PendingChangesCount())
	assert.Empty(t, e.events.kinds())
}

func TestPendingChangeTracker_DataIsCopied(t *testing.T) {
	e := newTestEngine(t, models.StrategyManual)
	ctx := context.Background()

	data := models.Record{"lines": []any{"a"}}
	e.tracker.TrackLocalChange(ctx, "order", "1", data)
	data["lines"].([]any)[0] = "mutated"

	got, _ := e.tracker.GetPendingChange("order", "1")
	assert.Equal(t, []any{"a"}, got.Data["lines"])

	got.Data["lines"] = nil
	again, _ := e.tracker.GetPendingChange("order", "1")
	assert.Equal(t, []any{"a"}, again.Data["lines"])
}

func TestPendingChangeTracker_GetPendingChanges_NewestFirst(t *testing.T) {
	e := newTestEngine(t, models.StrategyManual)
	ctx := context.Background()
	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "c"} {
		e.tracker.now = func() time.Time { return base.Add(time.Duration(i) * time.Minute) }
		e.tracker.TrackLocalChange(ctx, "order", id, models.Record{"v": float64(i)})
	}

	got := e.tracker.GetPendingChanges()
	require.Len(t, got, 3)
	assert.Equal(t, []string{"c", "b", "a"}, []string{got[0].EntityID, got[1].EntityID, got[2].EntityID})
}

func TestPendingChangeTracker_GetPendingChange_Missing(t *testing.T) {
	e := newTestEngine(t, models.StrategyManual)

	_, ok := e.tracker.GetPendingChange("order", "nope")
	assert.False(t, ok)
}

func TestPendingChangeTracker_ClearPendingChanges(t *testing.T) {
	e := newTestEngine(t, models.StrategyManual)
	ctx := context.Background()

	e.tracker.TrackLocalChange(ctx, "order", "1", models.Record{"a": 1.0})
	e.tracker.TrackLocalChange(ctx, "order", "2", models.Record{"a": 2.0})

	e.tracker.ClearPendingChanges(ctx)

	assert.Zero(t, e.tracker.PendingChangesCount())
	persisted, err := e.state.ListPendingChanges(ctx)
	require.NoError(t, err)
	assert.Empty(t, persisted)
	assert.Equal(t, 3, e.events.count(models.NotificationPendingChanged))
}

func TestPendingChangeTracker_ClearSyncedKeepsNewerEdits(t *testing.T) {
	e := newTestEngine(t, models.StrategyManual)
	ctx := context.Background()

	e.tracker.TrackLocalChange(ctx, "order", "1", models.Record{"status": "draft"})
	e.tracker.TrackLocalChange(ctx, "order", "2", models.Record{"status": "draft"})
	pushed := e.tracker.GetPendingChanges()

	// edited again while the push was in flight
	e.tracker.TrackLocalChange(ctx, "order", "2", models.Record{"status": "sent"})

	cleared := e.tracker.clearSynced(ctx, pushed)

	assert.Equal(t, 1, cleared)
	_, ok := e.tracker.GetPendingChange("order", "1")
	assert.False(t, ok)
	kept, ok := e.tracker.GetPendingChange("order", "2")
	require.True(t, ok)
	assert.Equal(t, "sent", kept.Data["status"])

	persisted, err := e.state.ListPendingChanges(ctx)
	require.NoError(t, err)
	require.Len(t, persisted, 1)
	assert.Equal(t, "2", persisted[0].EntityID)
}

func TestPendingChangeTracker_ReloadsPersistedChanges(t *testing.T) {
	first := newTestEngine(t, models.StrategyManual)
	ctx := context.Background()
	first.tracker.TrackLocalChange(ctx, "order", "1", models.Record{"status": "draft"})

	second := newTestEngineOn(t, first.state, first.entities, models.StrategyManual)

	change, ok := second.tracker.GetPendingChange("order", "1")
	require.True(t, ok)
	assert.Equal(t, "draft", change.Data["status"])
}
