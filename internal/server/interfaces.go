package server

import "context"

// Server is the lifecycle contract of the control API.
type Server interface {
	// RunServer serves requests until ctx is cancelled or the listener
	// fails. A graceful shutdown returns nil.
	RunServer(ctx context.Context) error

	// Shutdown stops accepting connections and waits for in-flight
	// requests, bounded by ctx.
	Shutdown(ctx context.Context) error
}
