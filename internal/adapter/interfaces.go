// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter talks to the remote sync server.
//
// [ServerAdapter] bundles the two collaborators the engine consumes: the
// Synchronizer (push pending edits, pull remote changes) and the connectivity
// Prober. The package ships an HTTP/REST implementation over resty
// ([NewHTTPServerAdapter]).
//
// Non-2xx responses are mapped by mapHTTPError to the sentinel values in
// errors.go so callers can use [errors.Is] without knowing the transport.
package adapter

import (
	"context"
	"time"

	"github.com/MKhiriev/go-field-sync/models"
)

// ServerAdapter is the transport-agnostic view of the remote sync server.
type ServerAdapter interface {
	// Push sends pending local edits to POST /api/sync/push. A nil error
	// means the server accepted every change.
	Push(ctx context.Context, changes []models.PendingChange) error

	// Pull fetches records changed since the given instant from
	// GET /api/sync/pull. A nil since requests a full pull.
	Pull(ctx context.Context, since *time.Time) ([]models.RemoteRecord, error)

	// Probe reports whether GET /api/health answers with a 2xx status.
	Probe(ctx context.Context) bool
}
