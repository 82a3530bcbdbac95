package input

import (
	"context"
	"errors"
	"sync"

	"github.com/dshills/richtype/internal/engine/selection"
	"github.com/dshills/richtype/internal/event"
	"github.com/dshills/richtype/internal/event/events"
	"github.com/dshills/richtype/internal/event/topic"
)

// Selector reports the current selection as a bookmark.
// *selection.Selection implements it.
type Selector interface {
	Save() (selection.Bookmark, error)
}

// SelectionFilter watches the selection and publishes selection events:
//
//   - selection.start and selection.change when a non-collapsed selection
//     appears
//   - selection.change when a non-collapsed selection moves
//   - selection.end when it collapses or disappears
//
// Hosts call Check after pointer input; Process checks after key input.
type SelectionFilter struct {
	sel Selector
	bus event.Bus

	mu   sync.Mutex
	last *selection.Bookmark
}

// NewSelectionFilter creates a filter reading from sel and publishing to
// bus.
func NewSelectionFilter(sel Selector, bus event.Bus) *SelectionFilter {
	return &SelectionFilter{sel: sel, bus: bus}
}

// Process implements Filter. It never cancels the event.
func (f *SelectionFilter) Process(ctx context.Context, _ *Event) error {
	return f.Check(ctx)
}

// Check compares the selection with the one seen last and publishes the
// matching events.
func (f *SelectionFilter) Check(ctx context.Context) error {
	b, err := f.sel.Save()
	switch {
	case errors.Is(err, selection.ErrNoSelection):
		b = selection.Bookmark{}
	case err != nil:
		return err
	}
	selected := err == nil && !b.IsCollapsed()

	f.mu.Lock()
	last := f.last
	if selected {
		f.last = &b
	} else {
		f.last = nil
	}
	f.mu.Unlock()

	var topics []topic.Topic
	if last == nil && selected {
		topics = append(topics, events.TopicSelectionStart, events.TopicSelectionChange)
	}
	if last != nil && *last != b {
		topics = append(topics, events.TopicSelectionChange)
	}
	if last != nil && !selected {
		topics = append(topics, events.TopicSelectionEnd)
	}

	if f.bus == nil {
		return nil
	}
	var errs []error
	for _, t := range topics {
		ev := event.NewEvent(t, events.Selection{Bookmark: b}, "input")
		if err := f.bus.Publish(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Reset forgets the last seen selection.
func (f *SelectionFilter) Reset() {
	f.mu.Lock()
	f.last = nil
	f.mu.Unlock()
}
