package input

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/dshills/richtype/internal/event"
	"github.com/dshills/richtype/internal/event/events"
	"github.com/dshills/richtype/internal/input/key"
)

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithBus publishes an events.InputKey event for every key no filter
// canceled.
func WithBus(bus event.Bus) Option {
	return func(p *Pipeline) {
		p.bus = bus
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// Pipeline runs key events through an ordered chain of filters.
//
// Filters may be added and removed while events are processed; a running
// Process call keeps the chain it started with.
type Pipeline struct {
	mu      sync.Mutex
	filters []Registration
	nextID  FilterID
	sorted  bool

	bus    event.Bus
	logger *slog.Logger
}

// NewPipeline creates an empty pipeline.
func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{
		sorted: true,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Add appends a filter to the chain. Named filters must have unique
// names.
func (p *Pipeline) Add(f Filter, opts ...FilterOption) (FilterID, error) {
	if f == nil {
		return 0, ErrNilFilter
	}
	reg := Registration{Filter: f, Priority: PriorityNormal}
	for _, opt := range opts {
		opt(&reg)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if reg.Name != "" && p.indexByName(reg.Name) >= 0 {
		return 0, fmt.Errorf("%w: %s", ErrDuplicateFilter, reg.Name)
	}
	p.nextID++
	reg.ID = p.nextID
	p.filters = append(p.filters, reg)
	p.sorted = false
	return reg.ID, nil
}

// Remove removes a filter by ID.
func (p *Pipeline) Remove(id FilterID) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	i := slices.IndexFunc(p.filters, func(r Registration) bool { return r.ID == id })
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrFilterNotFound, id)
	}
	p.filters = slices.Delete(p.filters, i, i+1)
	return nil
}

// RemoveByName removes a filter by name.
func (p *Pipeline) RemoveByName(name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	i := p.indexByName(name)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrFilterNotFound, name)
	}
	p.filters = slices.Delete(p.filters, i, i+1)
	return nil
}

func (p *Pipeline) indexByName(name string) int {
	return slices.IndexFunc(p.filters, func(r Registration) bool { return r.Name == name })
}

// Filters returns the registrations in execution order.
func (p *Pipeline) Filters() []Registration {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.ensureSorted()
	return slices.Clone(p.filters)
}

// Len returns the number of filters.
func (p *Pipeline) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.filters)
}

// ensureSorted sorts filters by priority if needed.
func (p *Pipeline) ensureSorted() {
	if p.sorted {
		return
	}
	slices.SortStableFunc(p.filters, func(a, b Registration) int {
		return int(a.Priority) - int(b.Priority)
	})
	p.sorted = true
}

// Process runs k through the filters in priority order. The chain stops
// at the first filter that cancels the event or returns an error; the
// error is returned as a *FilterError together with the event.
func (p *Pipeline) Process(ctx context.Context, k key.Event) (*Event, error) {
	p.mu.Lock()
	p.ensureSorted()
	filters := slices.Clone(p.filters)
	p.mu.Unlock()

	ev := NewEvent(k)
	for _, reg := range filters {
		if err := ctx.Err(); err != nil {
			return ev, err
		}
		if err := reg.Filter.Process(ctx, ev); err != nil {
			return ev, &FilterError{Name: reg.label(), Key: k.String(), Err: err}
		}
		if ev.Canceled() {
			p.logger.Debug("key event canceled", "key", k.String(), "filter", reg.label())
			return ev, nil
		}
	}

	if p.bus != nil {
		payload := events.InputKey{Key: k.String(), Command: k.Command()}
		if err := p.bus.Publish(ctx, event.NewEvent(events.TopicInputKey, payload, "input")); err != nil {
			p.logger.Warn("publish key event", "key", k.String(), "err", err)
		}
	}
	return ev, nil
}
