package client

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/server"
	"github.com/MKhiriev/go-field-sync/internal/service"
	"github.com/MKhiriev/go-field-sync/internal/workers"
)

type App struct {
	services *service.ClientServices
	server   server.Server
	workers  *workers.Workers
	logger   *logger.Logger
}

// NewApp assembles the client runtime. srv may be nil for a headless client.
func NewApp(services *service.ClientServices, srv server.Server, log *logger.Logger) (*App, error) {
	if services == nil {
		return nil, errNoServices
	}

	return &App{
		services: services,
		server:   srv,
		// probes first so the sync job finds a settled connectivity state
		workers: workers.NewWorkers(log,
			services.Connectivity,
			services.SyncJob,
			services.RetentionJob,
		),
		logger: log,
	}, nil
}

// Run starts the background workers and the control API and blocks until ctx
// is cancelled. Workers are stopped before Run returns.
func (a *App) Run(ctx context.Context) error {
	status := a.services.SyncStatus()
	a.logger.Info().
		Int("pending_changes", status.PendingChanges).
		Int("conflicts", status.Conflicts).
		Msg("client state restored")

	a.workers.Start(ctx)
	defer a.workers.Stop()

	if a.server == nil {
		<-ctx.Done()
		return nil
	}

	if err := a.server.RunServer(ctx); err != nil {
		return fmt.Errorf("control api: %w", err)
	}
	return nil
}
