package input

import (
	"context"
	"errors"
	"testing"

	"github.com/dshills/richtype/internal/dom"
	"github.com/dshills/richtype/internal/engine/selection"
	"github.com/dshills/richtype/internal/event"
	"github.com/dshills/richtype/internal/event/events"
	"github.com/dshills/richtype/internal/event/topic"
	"github.com/dshills/richtype/internal/input/key"
)

// scripted returns the queued results of Save in order.
type scripted struct {
	results []any
}

func (s *scripted) Save() (selection.Bookmark, error) {
	r := s.results[0]
	s.results = s.results[1:]
	if err, ok := r.(error); ok {
		return selection.Bookmark{}, err
	}
	return r.(selection.Bookmark), nil
}

type published struct {
	topic    topic.Topic
	bookmark selection.Bookmark
}

func selectionBus(t *testing.T) (event.Bus, *[]published) {
	t.Helper()
	bus := event.NewBus()
	if err := bus.Start(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = bus.Stop(context.Background()) })

	var got []published
	_, err := bus.SubscribeFunc("selection.*", func(_ context.Context, e any) error {
		s, ok := event.Payload[events.Selection](e)
		if !ok {
			t.Errorf("unexpected payload %T", e)
			return nil
		}
		got = append(got, published{e.(event.TopicProvider).EventTopic(), s.Bookmark})
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	return bus, &got
}

func TestSelectionFilterEvents(t *testing.T) {
	bus, got := selectionBus(t)
	sel := &scripted{results: []any{
		selection.NewBookmark(2, 2), // collapsed: nothing
		selection.NewBookmark(2, 5), // start + change
		selection.NewBookmark(2, 5), // unchanged: nothing
		selection.NewBookmark(2, 7), // change
		selection.NewBookmark(4, 4), // change + end
		selection.ErrNoSelection,    // nothing
	}}
	f := NewSelectionFilter(sel, bus)

	ctx := context.Background()
	for range 6 {
		if err := f.Process(ctx, NewEvent(key.NewRuneEvent('x', key.ModNone, key.PlatformLinux))); err != nil {
			t.Fatal(err)
		}
	}

	want := []published{
		{events.TopicSelectionStart, selection.NewBookmark(2, 5)},
		{events.TopicSelectionChange, selection.NewBookmark(2, 5)},
		{events.TopicSelectionChange, selection.NewBookmark(2, 7)},
		{events.TopicSelectionChange, selection.NewBookmark(4, 4)},
		{events.TopicSelectionEnd, selection.NewBookmark(4, 4)},
	}
	if len(*got) != len(want) {
		t.Fatalf("published %v, want %v", *got, want)
	}
	for i := range want {
		if (*got)[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, (*got)[i], want[i])
		}
	}
}

func TestSelectionFilterEndsOnLostSelection(t *testing.T) {
	bus, got := selectionBus(t)
	sel := &scripted{results: []any{
		selection.NewBookmark(0, 3),
		selection.ErrNoSelection,
	}}
	f := NewSelectionFilter(sel, bus)
	ctx := context.Background()
	_ = f.Check(ctx)
	_ = f.Check(ctx)

	if n := len(*got); n != 4 {
		t.Fatalf("published %d events: %v", n, *got)
	}
	if (*got)[3].topic != events.TopicSelectionEnd {
		t.Errorf("last event = %v", (*got)[3])
	}
}

func TestSelectionFilterReset(t *testing.T) {
	bus, got := selectionBus(t)
	sel := &scripted{results: []any{
		selection.NewBookmark(0, 3),
		selection.NewBookmark(0, 3),
	}}
	f := NewSelectionFilter(sel, bus)
	ctx := context.Background()
	_ = f.Check(ctx)
	f.Reset()
	_ = f.Check(ctx)

	if n := len(*got); n != 4 {
		t.Errorf("after Reset a selection should start again, got %v", *got)
	}
}

func TestSelectionFilterError(t *testing.T) {
	boom := errors.New("boom")
	f := NewSelectionFilter(&scripted{results: []any{boom}}, nil)
	if err := f.Check(context.Background()); !errors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}
}

func TestSelectionFilterWithSelection(t *testing.T) {
	bus, got := selectionBus(t)
	root, err := dom.Parse("<p>hello world</p>")
	if err != nil {
		t.Fatal(err)
	}
	text := dom.First(root, dom.TextNode)
	sel := selection.New(root)
	f := NewSelectionFilter(sel, bus)
	ctx := context.Background()

	if err := f.Check(ctx); err != nil {
		t.Fatal(err)
	}
	if err := sel.Set(selection.NewRange(text, 6, text, 11)); err != nil {
		t.Fatal(err)
	}
	if err := f.Check(ctx); err != nil {
		t.Fatal(err)
	}
	if len(*got) != 2 || (*got)[0].bookmark != selection.NewBookmark(6, 11) {
		t.Errorf("published %v", *got)
	}
}
