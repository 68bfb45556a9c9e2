package shared

import "context"

// EventHandler reacts to domain events delivered by the bus.
type EventHandler interface {
	Handle(ctx context.Context, event DomainEvent) error

	// EventTypes names the event types this handler wants. Empty means
	// every event.
	EventTypes() []string
}

// EventPublisher is the side of the bus that services see when they
// drain an aggregate's pending events.
type EventPublisher interface {
	Publish(ctx context.Context, events ...DomainEvent) error
}

// EventSubscriber registers and removes handlers.
type EventSubscriber interface {
	Subscribe(handler EventHandler, eventTypes ...string)
	Unsubscribe(handler EventHandler)
}

// EventBus is the full contract: publish, subscribe, and a lifecycle so
// implementations with background machinery can start and drain cleanly.
type EventBus interface {
	EventPublisher
	EventSubscriber
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}
