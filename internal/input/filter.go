package input

import (
	"context"
	"strconv"
)

// Filter processes key events in a Pipeline.
type Filter interface {
	// Process handles the event. A filter stops the chain by calling
	// ev.Cancel; a returned error stops it as well.
	Process(ctx context.Context, ev *Event) error
}

// FilterFunc adapts a function to the Filter interface.
type FilterFunc func(ctx context.Context, ev *Event) error

// Process calls f.
func (f FilterFunc) Process(ctx context.Context, ev *Event) error {
	return f(ctx, ev)
}

// Priority defines the execution order for filters.
// Lower values execute first; equal priorities run in the order added.
type Priority int

const (
	// PriorityHighest runs before all other filters.
	PriorityHighest Priority = -1000
	// PriorityHigh runs early in the chain.
	PriorityHigh Priority = -100
	// PriorityNormal is the default priority.
	PriorityNormal Priority = 0
	// PriorityLow runs late in the chain.
	PriorityLow Priority = 100
	// PriorityLowest runs after all other filters.
	PriorityLowest Priority = 1000
)

// FilterID uniquely identifies a filter added to a pipeline.
type FilterID uint64

// String returns the decimal form of the ID.
func (id FilterID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// Registration holds metadata about an added filter.
type Registration struct {
	ID       FilterID
	Name     string
	Priority Priority
	Filter   Filter
}

// label names the registration in errors and logs.
func (r Registration) label() string {
	if r.Name != "" {
		return r.Name
	}
	return "#" + r.ID.String()
}

// FilterOption configures a filter registration.
type FilterOption func(*Registration)

// WithName names the filter so it can be removed by name.
func WithName(name string) FilterOption {
	return func(r *Registration) {
		r.Name = name
	}
}

// WithPriority sets the filter priority.
func WithPriority(p Priority) FilterOption {
	return func(r *Registration) {
		r.Priority = p
	}
}
