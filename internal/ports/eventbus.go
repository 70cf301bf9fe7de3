// Package ports defines the EventBus interface for event-driven communication.
package ports

import (
	"github.com/trackdeck/trackdeck/internal/domain"
)

// EventBus is the interface for publishing and subscribing to bus events.
// It decouples event producers (services) from event consumers (CLI output,
// logging, tests).
//
// Thread-safety: implementations must be safe for concurrent publishing and
// subscription.
type EventBus interface {
	// Publish delivers an event to all subscribers of its type.
	// Handlers should process events quickly; slow work belongs in a
	// background goroutine.
	Publish(event domain.Event)

	// Subscribe registers a handler for events of the specified type.
	// The same handler can be registered multiple times, each registration
	// receiving its own SubscriptionID.
	Subscribe(eventType domain.EventType, handler domain.EventHandler) domain.SubscriptionID

	// Unsubscribe removes a previously registered handler.
	// Unknown or already-removed ids are a no-op.
	Unsubscribe(id domain.SubscriptionID)

	// SubscribeAll registers a handler that receives every event regardless
	// of type. Useful for logging and debugging.
	SubscribeAll(handler domain.EventHandler) domain.SubscriptionID

	// HasSubscribers reports whether the given event type has any active
	// subscription.
	HasSubscribers(eventType domain.EventType) bool

	// Close shuts down the event bus and clears all subscriptions.
	Close() error
}
