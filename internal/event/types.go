package event

import (
	"context"

	"github.com/dshills/richtype/internal/event/dispatch"
)

// DeliveryMode specifies how events are delivered to handlers.
type DeliveryMode int

const (
	// DeliverySync executes the handler in the publisher's goroutine before
	// Publish returns.
	DeliverySync DeliveryMode = iota

	// DeliveryLazy queues the handler on the bus worker. It runs after the
	// publishing call has returned, in publish order.
	DeliveryLazy
)

// String returns a human-readable delivery mode name.
func (m DeliveryMode) String() string {
	switch m {
	case DeliverySync:
		return "sync"
	case DeliveryLazy:
		return "lazy"
	default:
		return "unknown"
	}
}

// Handler is the interface for event handlers.
type Handler interface {
	// Handle processes an event.
	// The event parameter is type-erased; handlers should type-assert
	// or use Payload.
	Handle(ctx context.Context, event any) error
}

// HandlerFunc is a function adapter for Handler.
type HandlerFunc func(ctx context.Context, event any) error

// Handle implements the Handler interface.
func (f HandlerFunc) Handle(ctx context.Context, event any) error {
	return f(ctx, event)
}

// TypedHandlerFunc handles events carrying a payload of type T.
type TypedHandlerFunc[T any] func(ctx context.Context, event Event[T]) error

// AsHandler converts a TypedHandlerFunc to a generic Handler. Events
// with another payload type are skipped.
func AsHandler[T any](fn TypedHandlerFunc[T]) Handler {
	return HandlerFunc(func(ctx context.Context, event any) error {
		if e, ok := event.(Event[T]); ok {
			return fn(ctx, e)
		}
		return nil
	})
}

// Stats contains event bus statistics.
type Stats struct {
	// EventsPublished is the total number of events published.
	EventsPublished uint64

	// HandlersExecuted is the number of sync handler executions.
	HandlersExecuted uint64

	// HandlerErrors is the number of sync handlers that returned errors.
	HandlerErrors uint64

	// HandlerPanics is the number of sync handlers that panicked.
	HandlerPanics uint64

	// Lazy holds the counters of the lazy delivery queue.
	Lazy dispatch.QueueStats

	// ActiveSubscribers is the current number of subscriptions.
	ActiveSubscribers int
}

// PanicHandler is called when a handler panics.
type PanicHandler func(event any, recovered any, stack []byte)
