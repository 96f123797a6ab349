package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/store"
	"github.com/MKhiriev/go-field-sync/models"
)

const defaultSyncTimeout = time.Minute

type connectivityMonitor struct {
	synchronizer Synchronizer
	prober       Prober
	tracker      *pendingChangeTracker
	conflicts    *conflictStore
	reconciler   Reconciler
	metadata     store.MetadataRepository
	bus          NotificationBus
	logger       *logger.Logger
	now          func() time.Time

	syncTimeout time.Duration

	online     atomic.Bool
	inProgress atomic.Bool

	mu         sync.RWMutex
	lastSyncAt *time.Time

	background sync.WaitGroup
	probeJob   *clientJob
}

func newConnectivityMonitor(
	ctx context.Context,
	synchronizer Synchronizer,
	prober Prober,
	tracker *pendingChangeTracker,
	conflicts *conflictStore,
	reconciler Reconciler,
	metadata store.MetadataRepository,
	bus NotificationBus,
	syncTimeout, probeInterval time.Duration,
	log *logger.Logger,
) (*connectivityMonitor, error) {
	if syncTimeout <= 0 {
		syncTimeout = defaultSyncTimeout
	}

	m := &connectivityMonitor{
		synchronizer: synchronizer,
		prober:       prober,
		tracker:      tracker,
		conflicts:    conflicts,
		reconciler:   reconciler,
		metadata:     metadata,
		bus:          bus,
		logger:       log.WithComponent("connectivity-monitor"),
		now:          time.Now,
		syncTimeout:  syncTimeout,
	}
	m.probeJob = newClientJob("connectivity-probe", probeInterval, true, m.probe, log)

	lastSyncAt, err := metadata.GetLastSyncAt(ctx)
	if err != nil {
		return nil, fmt.Errorf("load last sync time: %w", err)
	}
	m.lastSyncAt = lastSyncAt

	return m, nil
}

func (m *connectivityMonitor) IsOnline() bool {
	return m.online.Load()
}

func (m *connectivityMonitor) SyncInProgress() bool {
	return m.inProgress.Load()
}

func (m *connectivityMonitor) LastSyncAt() *time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.lastSyncAt == nil {
		return nil
	}
	at := *m.lastSyncAt
	return &at
}

func (m *connectivityMonitor) SetOnline(ctx context.Context, online bool) {
	if m.online.Swap(online) == online {
		return
	}

	m.logger.Info().
		Str("func", "connectivityMonitor.SetOnline").
		Bool("online", online).
		Msg("connectivity changed")
	m.bus.Publish(models.NotificationConnectivityChanged, "")

	if online {
		// the caller's context may end with the request that reported the
		// transition; the sync must outlive it
		syncCtx := context.WithoutCancel(ctx)
		m.background.Add(1)
		go func() {
			defer m.background.Done()
			m.RequestSync(syncCtx)
		}()
	}
}

func (m *connectivityMonitor) RequestSync(ctx context.Context) {
	_ = m.StartSync(ctx)
}

func (m *connectivityMonitor) StartSync(ctx context.Context) error {
	if !m.online.Load() {
		m.logger.Debug().Str("func", "connectivityMonitor.StartSync").Msg("offline, sync skipped")
		return ErrOffline
	}
	if !m.inProgress.CompareAndSwap(false, true) {
		m.logger.Debug().Str("func", "connectivityMonitor.StartSync").Msg("sync already in progress, skipped")
		return ErrSyncInProgress
	}

	m.bus.Publish(models.NotificationSyncStarted, "")

	defer func() {
		if r := recover(); r != nil {
			m.logger.Error().
				Str("func", "connectivityMonitor.StartSync").
				Interface("panic", r).
				Msg("sync panicked")
		}
		m.inProgress.Store(false)
		m.bus.Publish(models.NotificationSyncFinished, "")
	}()

	syncCtx, cancel := context.WithTimeout(ctx, m.syncTimeout)
	defer cancel()

	if err := m.runSync(syncCtx); err != nil {
		m.logger.Err(err).
			Str("func", "connectivityMonitor.StartSync").
			Int("pending_changes", m.tracker.PendingChangesCount()).
			Msg("sync failed, pending changes kept")
	}

	return nil
}

// runSync pulls remote updates and reconciles them against pending local
// edits first, so a divergent entity becomes a conflict instead of being
// overwritten. Pending changes without an unresolved conflict are then pushed.
// Pushed changes are cleared and lastSyncAt advances only when the whole round
// succeeds.
func (m *connectivityMonitor) runSync(ctx context.Context) error {
	startedAt := m.now().UTC()

	records, err := m.synchronizer.Pull(ctx, m.LastSyncAt())
	if err != nil {
		return fmt.Errorf("pull remote changes: %w", err)
	}

	outcomes := make(map[ReconcileOutcome]int)
	for _, record := range records {
		outcomes[m.reconciler.ApplyRemote(ctx, record)]++
	}

	var pushable []models.PendingChange
	held := 0
	for _, change := range m.tracker.GetPendingChanges() {
		if m.conflicts.hasUnresolved(change.Key()) {
			held++
			continue
		}
		pushable = append(pushable, change)
	}

	if len(pushable) > 0 {
		if err = m.synchronizer.Push(ctx, pushable); err != nil {
			return fmt.Errorf("push %d pending changes: %w", len(pushable), err)
		}
	}

	cleared := m.tracker.clearSynced(ctx, pushable)

	m.mu.Lock()
	m.lastSyncAt = &startedAt
	m.mu.Unlock()

	if err = m.metadata.SetLastSyncAt(ctx, startedAt); err != nil {
		m.logger.Err(err).
			Str("func", "connectivityMonitor.runSync").
			Msg("failed to persist last sync time")
	}

	m.logger.Info().
		Str("func", "connectivityMonitor.runSync").
		Int("pulled", len(records)).
		Int("stored", outcomes[ReconcileStored]).
		Int("fast_forwarded", outcomes[ReconcileFastForwarded]).
		Int("conflicts", outcomes[ReconcileConflict]).
		Int("failed", outcomes[ReconcileFailed]).
		Int("pushed", len(pushable)).
		Int("cleared", cleared).
		Int("held_by_conflict", held).
		Msg("sync finished")

	return nil
}

func (m *connectivityMonitor) probe(ctx context.Context) {
	if m.prober == nil {
		return
	}
	m.SetOnline(ctx, m.prober.Probe(ctx))
}

// Start probes reachability right away and then every probe interval.
func (m *connectivityMonitor) Start(ctx context.Context) {
	m.probeJob.Start(ctx)
}

// Stop ends the probe loop and waits for background syncs to return.
func (m *connectivityMonitor) Stop() {
	m.probeJob.Stop()
	m.background.Wait()
}
