package store

import (
	"context"

	"github.com/MKhiriev/go-field-sync/models"
)

//go:generate mockgen -source=entity_interfaces.go -destination=../mock/entity_store_mock.go -package=mock

// LocalEntityStore is the device-local database holding the working copy of
// every entity.
type LocalEntityStore interface {
	// Get returns [ErrNotFound] when the entity is not stored locally.
	Get(ctx context.Context, entityType, entityID string) (models.Record, error)
	// Upsert replaces the stored record of the entity.
	Upsert(ctx context.Context, entityType, entityID string, record models.Record) error
}
