package event

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dshills/richtype/internal/event/dispatch"
	"github.com/dshills/richtype/internal/event/topic"
)

// Bus is the editor event bus interface.
type Bus interface {
	// Publishing
	Publish(ctx context.Context, event any) error
	Emit(ctx context.Context, t topic.Topic, payload any, source string) error

	// Subscription
	Subscribe(topicPattern topic.Topic, handler Handler, opts ...SubscriptionOption) (Subscription, error)
	SubscribeFunc(topicPattern topic.Topic, fn HandlerFunc, opts ...SubscriptionOption) (Subscription, error)
	Once(topicPattern topic.Topic, fn HandlerFunc, opts ...SubscriptionOption) (Subscription, error)
	Unsubscribe(sub Subscription) error
	RemoveAll(topicPattern topic.Topic) int
	Listeners(topicPattern topic.Topic) int
	SetMaxListeners(n int)

	// Lifecycle
	Start() error
	Stop(ctx context.Context) error
	Flush(ctx context.Context) error

	// Status
	Stats() Stats
	IsRunning() bool
}

// bus is the default Bus implementation.
type bus struct {
	registry *registry
	queue    *dispatch.Queue
	config   busConfig

	running      atomic.Bool
	maxListeners atomic.Int64

	warnMu sync.Mutex
	warned map[topic.Topic]bool

	eventsPublished  atomic.Uint64
	handlersExecuted atomic.Uint64
	handlerErrors    atomic.Uint64
	handlerPanics    atomic.Uint64
}

// NewBus creates a new event bus with the given options.
// The bus must be started before events are published.
func NewBus(opts ...BusOption) Bus {
	config := defaultBusConfig()
	for _, opt := range opts {
		opt(&config)
	}

	b := &bus{
		registry: newRegistry(),
		config:   config,
		warned:   make(map[topic.Topic]bool),
	}
	b.maxListeners.Store(int64(config.maxListeners))
	b.queue = dispatch.NewQueue(
		dispatch.WithQueueSize(config.queueSize),
		dispatch.WithPanicHandler(b.onPanic),
	)
	return b
}

// Start starts the lazy delivery worker.
func (b *bus) Start() error {
	if b.running.Load() {
		return ErrBusAlreadyRunning
	}
	if err := b.queue.Start(); err != nil {
		return err
	}
	b.running.Store(true)
	return nil
}

// Stop stops the bus. Lazy deliveries already queued still run; Stop
// waits for them or until ctx is done.
func (b *bus) Stop(ctx context.Context) error {
	if !b.running.Swap(false) {
		return ErrBusNotRunning
	}
	return b.queue.Stop(ctx)
}

// IsRunning returns true if the bus is running.
func (b *bus) IsRunning() bool {
	return b.running.Load()
}

// Flush waits until every lazy delivery queued so far has run.
func (b *bus) Flush(ctx context.Context) error {
	if !b.running.Load() {
		return ErrBusNotRunning
	}
	return b.queue.Flush(ctx)
}

// Publish delivers event to every matching subscription in subscription
// order. Sync handlers run before Publish returns; all of them run even
// when one fails, and their errors are joined into the result. Lazy
// handlers are queued.
func (b *bus) Publish(ctx context.Context, event any) error {
	if !b.running.Load() {
		return ErrBusNotRunning
	}
	tp, ok := event.(TopicProvider)
	if !ok || !tp.EventTopic().IsValid() {
		return ErrInvalidEvent
	}
	eventTopic := tp.EventTopic()

	b.eventsPublished.Add(1)

	var errs []error
	for _, sub := range b.registry.match(eventTopic) {
		if !sub.shouldDeliver(event) {
			continue
		}
		if sub.config.Once {
			if !sub.cancelled.CompareAndSwap(false, true) {
				continue
			}
			b.registry.remove(sub.id)
		}

		if sub.config.DeliveryMode == DeliveryLazy {
			if err := b.queue.Enqueue(ctx, event, b.lazy(sub, eventTopic)); err != nil {
				errs = append(errs, fmt.Errorf("queue %s for %s: %w", eventTopic, sub.id, err))
			}
			continue
		}

		result := dispatch.Execute(ctx, event, sub.handler, b.onPanic)
		b.handlersExecuted.Add(1)
		switch {
		case result.Panicked:
			b.handlerPanics.Add(1)
			errs = append(errs, panicError(sub.id, eventTopic, result.PanicValue))
		case result.Error != nil:
			b.handlerErrors.Add(1)
			errs = append(errs, &HandlerError{SubscriptionID: sub.id, Topic: eventTopic, Err: result.Error})
		}
	}
	return errors.Join(errs...)
}

// Emit publishes payload under t as an Envelope.
func (b *bus) Emit(ctx context.Context, t topic.Topic, payload any, source string) error {
	return b.Publish(ctx, Envelope{Topic: t, Payload: payload, Metadata: newMetadata(source)})
}

// lazy wraps the handler of a lazy subscription so its errors are logged;
// nobody is waiting for them.
func (b *bus) lazy(sub *subscription, t topic.Topic) dispatch.Handler {
	return dispatch.HandlerFunc(func(ctx context.Context, event any) error {
		if !sub.IsActive() && !sub.config.Once {
			return nil
		}
		err := sub.handler.Handle(ctx, event)
		if err != nil {
			b.config.logger.Warn("lazy event handler failed",
				"topic", t, "subscription", sub.id, "err", err)
		}
		return err
	})
}

func (b *bus) onPanic(event any, value any, stack []byte) {
	b.config.logger.Error("event handler panicked", "panic", value)
	if b.config.panicHandler != nil {
		b.config.panicHandler(event, value, stack)
	}
}

// Subscribe creates a new subscription for the given topic pattern.
// It is safe to call from a handler.
func (b *bus) Subscribe(topicPattern topic.Topic, handler Handler, opts ...SubscriptionOption) (Subscription, error) {
	if handler == nil {
		return nil, ErrNilHandler
	}
	if !topicPattern.IsValid() {
		return nil, ErrInvalidTopic
	}

	sub := newSubscription(uuid.NewString(), topicPattern, handler, opts...)
	n := b.registry.add(sub)

	if limit := int(b.maxListeners.Load()); limit > 0 && n > limit {
		b.warnMu.Lock()
		if !b.warned[topicPattern] {
			b.warned[topicPattern] = true
			b.config.logger.Warn("possible event listener leak",
				"topic", topicPattern, "listeners", n, "max", limit)
		}
		b.warnMu.Unlock()
	}
	return sub, nil
}

// SubscribeFunc is a convenience method for subscribing with a function handler.
func (b *bus) SubscribeFunc(topicPattern topic.Topic, fn HandlerFunc, opts ...SubscriptionOption) (Subscription, error) {
	if fn == nil {
		return nil, ErrNilHandler
	}
	return b.Subscribe(topicPattern, fn, opts...)
}

// Once subscribes fn for a single delivery.
func (b *bus) Once(topicPattern topic.Topic, fn HandlerFunc, opts ...SubscriptionOption) (Subscription, error) {
	return b.SubscribeFunc(topicPattern, fn, append(opts, WithOnce())...)
}

// Unsubscribe removes a subscription.
func (b *bus) Unsubscribe(sub Subscription) error {
	if sub == nil {
		return ErrInvalidSubscription
	}
	sub.Cancel()
	if !b.registry.remove(sub.ID()) {
		return ErrSubscriptionNotFound
	}
	return nil
}

// RemoveAll removes every subscription to topicPattern, or all
// subscriptions when it is empty.
func (b *bus) RemoveAll(topicPattern topic.Topic) int {
	return b.registry.clear(topicPattern)
}

// Listeners returns the number of subscriptions to topicPattern, or all
// subscriptions when it is empty.
func (b *bus) Listeners(topicPattern topic.Topic) int {
	return b.registry.count(topicPattern)
}

// SetMaxListeners changes the per-topic warning threshold. Zero disables
// the warning.
func (b *bus) SetMaxListeners(n int) {
	if n < 0 {
		n = 0
	}
	b.maxListeners.Store(int64(n))
	b.warnMu.Lock()
	clear(b.warned)
	b.warnMu.Unlock()
}

// Stats returns current bus statistics.
func (b *bus) Stats() Stats {
	return Stats{
		EventsPublished:   b.eventsPublished.Load(),
		HandlersExecuted:  b.handlersExecuted.Load(),
		HandlerErrors:     b.handlerErrors.Load(),
		HandlerPanics:     b.handlerPanics.Load(),
		Lazy:              b.queue.Stats(),
		ActiveSubscribers: b.registry.count(""),
	}
}
