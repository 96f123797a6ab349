package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-field-sync/models"
)

//go:generate mockgen -source=collaborators.go -destination=../mock/collaborators_mock.go -package=mock

// Synchronizer moves data between the device and the remote store.
type Synchronizer interface {
	// Push sends pending local edits. A nil error means every change was
	// accepted by the remote side.
	Push(ctx context.Context, changes []models.PendingChange) error
	// Pull returns remote records changed since the given instant; nil since
	// requests everything.
	Pull(ctx context.Context, since *time.Time) ([]models.RemoteRecord, error)
}

// Prober reports whether the remote store is reachable.
type Prober interface {
	Probe(ctx context.Context) bool
}
