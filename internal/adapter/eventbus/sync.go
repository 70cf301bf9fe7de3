// Package eventbus provides the synchronous EventBus implementation.
package eventbus

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/trackdeck/trackdeck/internal/domain"
	"github.com/trackdeck/trackdeck/internal/ports"
)

// SyncBus delivers events to handlers synchronously, in subscription order.
//
// Thread-safety: multiple goroutines may publish and subscribe concurrently.
// Slow handlers block delivery; handlers that need long processing should
// dispatch to a background goroutine.
type SyncBus struct {
	logger *slog.Logger

	// subscribers maps event types to their subscriptions
	subscribers map[domain.EventType][]subscription

	// allSubscribers receive every event regardless of type
	allSubscribers []subscription

	mu        sync.RWMutex
	idCounter uint64
	closed    bool
}

type subscription struct {
	id      domain.SubscriptionID
	handler domain.EventHandler
}

// NewSyncBus creates a new synchronous event bus.
// The logger is used for handler panic reports; it may be nil.
func NewSyncBus(logger *slog.Logger) *SyncBus {
	return &SyncBus{
		logger:      logger,
		subscribers: make(map[domain.EventType][]subscription),
	}
}

// Publish delivers an event to all subscribers of its type, then to the
// wildcard subscribers. Panics in handlers are recovered and logged; they do
// not stop delivery to the remaining handlers. Publishing on a closed bus or
// publishing a nil event is a no-op.
func (bus *SyncBus) Publish(event domain.Event) {
	if event == nil {
		return
	}

	bus.mu.RLock()
	if bus.closed {
		bus.mu.RUnlock()
		return
	}
	typed := make([]subscription, len(bus.subscribers[event.Type()]))
	copy(typed, bus.subscribers[event.Type()])
	wildcard := make([]subscription, len(bus.allSubscribers))
	copy(wildcard, bus.allSubscribers)
	bus.mu.RUnlock()

	for _, sub := range typed {
		bus.call(sub.handler, event)
	}
	for _, sub := range wildcard {
		bus.call(sub.handler, event)
	}
}

func (bus *SyncBus) call(handler domain.EventHandler, event domain.Event) {
	defer func() {
		if r := recover(); r != nil {
			if bus.logger != nil {
				bus.logger.Error("event handler panicked",
					slog.Any("panic", r),
					slog.String("event_type", string(event.Type())))
			}
		}
	}()
	handler(event)
}

// Subscribe registers a handler for events of the specified type and returns
// a unique subscription id. The same handler can be registered multiple
// times, each registration receiving its own id.
func (bus *SyncBus) Subscribe(eventType domain.EventType, handler domain.EventHandler) domain.SubscriptionID {
	if handler == nil {
		panic("event handler cannot be nil")
	}

	bus.mu.Lock()
	defer bus.mu.Unlock()

	if bus.closed {
		panic("cannot subscribe to closed event bus")
	}

	id := domain.SubscriptionID(fmt.Sprintf("sub-%d", atomic.AddUint64(&bus.idCounter, 1)))
	bus.subscribers[eventType] = append(bus.subscribers[eventType], subscription{id: id, handler: handler})
	return id
}

// Unsubscribe removes a previously registered handler.
// Unknown ids are a no-op.
func (bus *SyncBus) Unsubscribe(id domain.SubscriptionID) {
	bus.mu.Lock()
	defer bus.mu.Unlock()

	for eventType, subs := range bus.subscribers {
		for i, sub := range subs {
			if sub.id == id {
				subs[i] = subs[len(subs)-1]
				bus.subscribers[eventType] = subs[:len(subs)-1]
				return
			}
		}
	}

	for i, sub := range bus.allSubscribers {
		if sub.id == id {
			bus.allSubscribers[i] = bus.allSubscribers[len(bus.allSubscribers)-1]
			bus.allSubscribers = bus.allSubscribers[:len(bus.allSubscribers)-1]
			return
		}
	}
}

// SubscribeAll registers a handler that receives every event.
func (bus *SyncBus) SubscribeAll(handler domain.EventHandler) domain.SubscriptionID {
	if handler == nil {
		panic("event handler cannot be nil")
	}

	bus.mu.Lock()
	defer bus.mu.Unlock()

	if bus.closed {
		panic("cannot subscribe to closed event bus")
	}

	id := domain.SubscriptionID(fmt.Sprintf("sub-all-%d", atomic.AddUint64(&bus.idCounter, 1)))
	bus.allSubscribers = append(bus.allSubscribers, subscription{id: id, handler: handler})
	return id
}

// HasSubscribers reports whether the given event type has any active
// subscription, counting wildcard subscribers.
func (bus *SyncBus) HasSubscribers(eventType domain.EventType) bool {
	bus.mu.RLock()
	defer bus.mu.RUnlock()

	return len(bus.subscribers[eventType]) > 0 || len(bus.allSubscribers) > 0
}

// Close shuts down the bus and clears all subscriptions.
// Returns an error if already closed.
func (bus *SyncBus) Close() error {
	bus.mu.Lock()
	defer bus.mu.Unlock()

	if bus.closed {
		return fmt.Errorf("event bus already closed")
	}

	bus.closed = true
	bus.subscribers = make(map[domain.EventType][]subscription)
	bus.allSubscribers = nil
	return nil
}

// Verify that SyncBus implements the EventBus interface
var _ ports.EventBus = (*SyncBus)(nil)
