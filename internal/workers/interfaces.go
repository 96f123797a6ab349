// Package workers runs the client's background loops as one unit.
package workers

import "context"

// Worker is a background loop owned by the process. Start must not block;
// Stop blocks until the loop has returned.
//
// Example implementation:
//
//	type ticker struct{ cancel context.CancelFunc }
//
//	func (t *ticker) Start(ctx context.Context) { ctx, t.cancel = context.WithCancel(ctx); go loop(ctx) }
//	func (t *ticker) Stop()                     { t.cancel() }
type Worker interface {
	Start(ctx context.Context)
	Stop()
}
