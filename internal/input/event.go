package input

import "github.com/dshills/richtype/internal/input/key"

// Event is a key event travelling through the pipeline.
type Event struct {
	// Key is the normalized key event.
	Key key.Event

	// Command is the format a filter ran for this event, if any.
	Command string

	canceled bool
}

// NewEvent wraps a key event for the pipeline.
func NewEvent(k key.Event) *Event {
	return &Event{Key: k}
}

// Cancel stops the remaining filters and prevents the host's default
// action for the key.
func (e *Event) Cancel() {
	e.canceled = true
}

// Canceled reports whether a filter canceled the event.
func (e *Event) Canceled() bool {
	return e.canceled
}

// DefaultPrevented reports whether the host should skip its default
// handling of the key. Canceled events always prevent the default.
func (e *Event) DefaultPrevented() bool {
	return e.canceled
}
