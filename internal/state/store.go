package state

import (
	"context"
	"log/slog"
	"sync"

	"github.com/dshills/richtype/internal/event"
	"github.com/dshills/richtype/internal/event/events"
)

// Action describes a state change.
type Action struct {
	// Type identifies the action (e.g., "selection.set"). Required.
	Type string

	// Payload carries action-specific data.
	Payload any
}

// Reducer computes the next state from the current state and an action.
// Reducers must be pure and must not dispatch.
type Reducer[S any] func(state S, action Action) S

// Listener is called after every dispatched action with the new state.
type Listener[S any] func(state S, action Action)

// Option configures a Store.
type Option func(*config)

type config struct {
	bus    event.Bus
	logger *slog.Logger
}

// WithBus publishes events.TopicStateChanged on bus after every dispatch.
func WithBus(bus event.Bus) Option {
	return func(c *config) {
		c.bus = bus
	}
}

// WithLogger sets the logger of the store.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

type subscriber[S any] struct {
	id int
	fn Listener[S]
}

// Store is a reducer driven state container.
//
// Dispatch runs the reducer and then notifies listeners in subscription
// order. Dispatches from several goroutines are reduced one at a time.
// Listeners may dispatch; a reducer that dispatches to its own store
// deadlocks.
type Store[S any] struct {
	mu        sync.Mutex
	state     S
	reducer   Reducer[S]
	listeners []subscriber[S]
	nextID    int

	reducing sync.Mutex
	cfg      config
}

// New creates a store holding initial. A nil reducer keeps the state
// unchanged.
func New[S any](initial S, reducer Reducer[S], opts ...Option) *Store[S] {
	cfg := config{logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if reducer == nil {
		reducer = func(s S, _ Action) S { return s }
	}
	return &Store[S]{state: initial, reducer: reducer, cfg: cfg}
}

// State returns the current state.
func (s *Store[S]) State() S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies action.
func (s *Store[S]) Dispatch(ctx context.Context, action Action) error {
	if action.Type == "" {
		return &ActionError{Err: ErrMissingActionType}
	}
	next := s.reduce(action)

	s.mu.Lock()
	listeners := make([]subscriber[S], len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, l := range listeners {
		l.fn(next, action)
	}

	if s.cfg.bus != nil {
		err := s.cfg.bus.Publish(ctx, event.NewEvent(events.TopicStateChanged,
			events.StateChanged{Action: action.Type}, "state"))
		if err != nil {
			s.cfg.logger.Warn("state change listeners failed", "action", action.Type, "err", err)
		}
	}
	return nil
}

func (s *Store[S]) reduce(action Action) S {
	s.reducing.Lock()
	defer s.reducing.Unlock()

	s.mu.Lock()
	cur, reducer := s.state, s.reducer
	s.mu.Unlock()

	next := reducer(cur, action)

	s.mu.Lock()
	s.state = next
	s.mu.Unlock()
	return next
}

// Subscribe adds a listener and returns the function that removes it.
// Removing a listener more than once is a no-op.
func (s *Store[S]) Subscribe(fn Listener[S]) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, subscriber[S]{id: id, fn: fn})
	return func() { s.unsubscribe(id) }
}

func (s *Store[S]) unsubscribe(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, l := range s.listeners {
		if l.id == id {
			s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
			return
		}
	}
}

// Listeners returns the number of subscribed listeners.
func (s *Store[S]) Listeners() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners)
}

// ReplaceReducer swaps the reducer used by later dispatches.
func (s *Store[S]) ReplaceReducer(r Reducer[S]) {
	if r == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reducer = r
}
