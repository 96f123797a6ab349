package service

import (
	"context"

	"github.com/MKhiriev/go-field-sync/internal/config"
	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/store"
	"github.com/MKhiriev/go-field-sync/internal/utils"
	"github.com/MKhiriev/go-field-sync/models"
)

// ClientServices is the explicitly wired engine. Every component receives
// its collaborators through its constructor.
type ClientServices struct {
	Notifications  NotificationBus
	Conflicts      ConflictStore
	Resolution     ResolutionEngine
	PendingChanges PendingChangeTracker
	Connectivity   ConnectivityMonitor
	Reconciler     Reconciler
	SyncJob        ClientJob
	RetentionJob   ClientJob
}

// NewClientServices loads persisted state and wires the components. Errors
// are returned only when persisted state cannot be loaded.
func NewClientServices(
	ctx context.Context,
	storages *store.ClientStorages,
	synchronizer Synchronizer,
	prober Prober,
	cfg *config.ClientConfig,
	log *logger.Logger,
) (*ClientServices, error) {
	bus := newNotificationBus(log)

	conflicts, err := newConflictStore(ctx, storages.Conflicts, bus, utils.NewUUIDGenerator(), log)
	if err != nil {
		return nil, err
	}

	tracker, err := newPendingChangeTracker(ctx, storages.PendingChanges, bus, log)
	if err != nil {
		return nil, err
	}

	resolution := newResolutionEngine(ctx, conflicts, tracker, storages.Entities, storages.Metadata, bus, cfg.App.AutoResolveStrategy, log)
	reconciler := newReconciler(conflicts, tracker, storages.Entities, log)

	monitor, err := newConnectivityMonitor(ctx, synchronizer, prober, tracker, conflicts, reconciler, storages.Metadata, bus,
		cfg.Adapter.SyncTimeout, cfg.Workers.ProbeInterval, log)
	if err != nil {
		return nil, err
	}

	s := &ClientServices{
		Notifications:  bus,
		Conflicts:      conflicts,
		Resolution:     resolution,
		PendingChanges: tracker,
		Connectivity:   monitor,
		Reconciler:     reconciler,
		SyncJob:        NewSyncJob(monitor, cfg.Workers.SyncInterval, log),
		RetentionJob:   NewRetentionJob(conflicts, cfg.App.ResolvedRetentionDays, cfg.Workers.CleanupInterval, log),
	}
	bus.bindStatus(s.SyncStatus)

	return s, nil
}

// SyncStatus computes the aggregate status from live component state.
func (s *ClientServices) SyncStatus() models.SyncStatus {
	return models.SyncStatus{
		IsOnline:       s.Connectivity.IsOnline(),
		LastSyncAt:     s.Connectivity.LastSyncAt(),
		PendingChanges: s.PendingChanges.PendingChangesCount(),
		Conflicts:      s.Conflicts.ConflictCount(),
		SyncInProgress: s.Connectivity.SyncInProgress(),
	}
}
