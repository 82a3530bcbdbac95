package state

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/dshills/richtype/internal/event"
	"github.com/dshills/richtype/internal/event/events"
)

func counter(n int, a Action) int {
	switch a.Type {
	case "inc":
		return n + 1
	case "add":
		return n + a.Payload.(int)
	}
	return n
}

func TestStoreDispatch(t *testing.T) {
	s := New(0, counter)
	ctx := context.Background()

	tests := []struct {
		action Action
		want   int
	}{
		{Action{Type: "inc"}, 1},
		{Action{Type: "add", Payload: 4}, 5},
		{Action{Type: "unknown"}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.action.Type, func(t *testing.T) {
			if err := s.Dispatch(ctx, tt.action); err != nil {
				t.Fatal(err)
			}
			if s.State() != tt.want {
				t.Errorf("State() = %d, want %d", s.State(), tt.want)
			}
		})
	}
}

func TestStoreMissingType(t *testing.T) {
	s := New(0, counter)
	err := s.Dispatch(context.Background(), Action{Payload: 1})
	if !errors.Is(err, ErrMissingActionType) {
		t.Fatalf("expected ErrMissingActionType, got %v", err)
	}
	var aerr *ActionError
	if !errors.As(err, &aerr) {
		t.Errorf("expected *ActionError, got %T", err)
	}
}

func TestStoreConcurrentDispatch(t *testing.T) {
	s := New(0, counter)
	ctx := context.Background()

	const workers, per = 16, 50
	var wg sync.WaitGroup
	errs := make(chan error, workers*per)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range per {
				if err := s.Dispatch(ctx, Action{Type: "inc"}); err != nil {
					errs <- err
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent dispatch: %v", err)
	}
	if got := s.State(); got != workers*per {
		t.Errorf("State() = %d, want %d", got, workers*per)
	}
}

func TestStoreReducerPanicReleasesLock(t *testing.T) {
	s := New(0, func(n int, a Action) int {
		if a.Type == "boom" {
			panic("bad reducer")
		}
		return counter(n, a)
	})

	func() {
		defer func() { _ = recover() }()
		_ = s.Dispatch(context.Background(), Action{Type: "boom"})
	}()
	if err := s.Dispatch(context.Background(), Action{Type: "inc"}); err != nil {
		t.Errorf("dispatch after panic: %v", err)
	}
}

func TestStoreListeners(t *testing.T) {
	s := New(0, counter)
	ctx := context.Background()

	var seen []int
	unsubscribe := s.Subscribe(func(n int, _ Action) {
		seen = append(seen, n)
	})
	var types []string
	s.Subscribe(func(_ int, a Action) {
		types = append(types, a.Type)
	})
	if s.Listeners() != 2 {
		t.Fatalf("Listeners() = %d", s.Listeners())
	}

	_ = s.Dispatch(ctx, Action{Type: "inc"})
	unsubscribe()
	unsubscribe()
	_ = s.Dispatch(ctx, Action{Type: "inc"})

	if len(seen) != 1 || seen[0] != 1 {
		t.Errorf("first listener saw %v", seen)
	}
	if len(types) != 2 {
		t.Errorf("second listener saw %v", types)
	}
	if s.Listeners() != 1 {
		t.Errorf("Listeners() = %d after unsubscribe", s.Listeners())
	}
}

func TestStoreListenerMayDispatch(t *testing.T) {
	s := New(0, counter)
	ctx := context.Background()

	s.Subscribe(func(n int, a Action) {
		if a.Type == "add" {
			if err := s.Dispatch(ctx, Action{Type: "inc"}); err != nil {
				t.Errorf("listener dispatch: %v", err)
			}
		}
	})
	if err := s.Dispatch(ctx, Action{Type: "add", Payload: 2}); err != nil {
		t.Fatal(err)
	}
	if s.State() != 3 {
		t.Errorf("State() = %d, want 3", s.State())
	}
}

func TestStoreDefaultReducer(t *testing.T) {
	s := New("keep", nil)
	if err := s.Dispatch(context.Background(), Action{Type: "anything"}); err != nil {
		t.Fatal(err)
	}
	if s.State() != "keep" {
		t.Errorf("State() = %q", s.State())
	}

	s.ReplaceReducer(func(string, Action) string { return "new" })
	_ = s.Dispatch(context.Background(), Action{Type: "anything"})
	if s.State() != "new" {
		t.Errorf("State() = %q after ReplaceReducer", s.State())
	}
}

func TestStorePublishesStateChanged(t *testing.T) {
	bus := event.NewBus()
	if err := bus.Start(); err != nil {
		t.Fatal(err)
	}
	defer bus.Stop(context.Background())

	var got []string
	_, _ = bus.SubscribeFunc(events.TopicStateChanged, func(_ context.Context, e any) error {
		p, _ := event.Payload[events.StateChanged](e)
		got = append(got, p.Action)
		return nil
	})

	s := New(0, counter, WithBus(bus))
	_ = s.Dispatch(context.Background(), Action{Type: "inc"})
	if len(got) != 1 || got[0] != "inc" {
		t.Errorf("state.changed events: %v", got)
	}
}
