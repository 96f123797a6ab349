package service

import (
	"sync"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/models"
)

type subscription struct {
	id uint64
	fn Subscriber
}

type notificationBus struct {
	logger *logger.Logger

	mu     sync.RWMutex
	nextID uint64
	subs   []subscription
	status func() models.SyncStatus
}

// newNotificationBus returns a bus publishing an empty status until a status
// source is bound by [NewClientServices].
func newNotificationBus(log *logger.Logger) *notificationBus {
	return &notificationBus{
		logger: log.WithComponent("notification-bus"),
		status: func() models.SyncStatus { return models.SyncStatus{} },
	}
}

func (b *notificationBus) bindStatus(status func() models.SyncStatus) {
	b.mu.Lock()
	b.status = status
	b.mu.Unlock()
}

func (b *notificationBus) Subscribe(fn Subscriber) func() {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, fn: fn})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.unsubscribe(id) })
	}
}

func (b *notificationBus) unsubscribe(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return
		}
	}
}

// Publish must never be called while holding a component lock: computing the
// status reads every component.
func (b *notificationBus) Publish(kind models.NotificationKind, conflictID string) {
	b.mu.RLock()
	subs := make([]subscription, len(b.subs))
	copy(subs, b.subs)
	status := b.status
	b.mu.RUnlock()

	if len(subs) == 0 {
		return
	}

	n := models.Notification{
		Kind:       kind,
		ConflictID: conflictID,
		Status:     status(),
	}

	for _, s := range subs {
		b.deliver(s, n)
	}
}

func (b *notificationBus) deliver(s subscription, n models.Notification) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error().
				Str("func", "notificationBus.deliver").
				Uint64("subscriber", s.id).
				Str("kind", string(n.Kind)).
				Interface("panic", r).
				Msg("subscriber panicked")
		}
	}()

	s.fn(n)
}
