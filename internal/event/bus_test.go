package event

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/dshills/richtype/internal/event/topic"
)

func startBus(t *testing.T, opts ...BusOption) Bus {
	t.Helper()
	b := NewBus(opts...)
	if err := b.Start(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = b.Stop(context.Background()) })
	return b
}

func TestBus_Lifecycle(t *testing.T) {
	b := NewBus()
	ctx := context.Background()

	if err := b.Publish(ctx, NewEvent[int]("format", 1, "test")); !errors.Is(err, ErrBusNotRunning) {
		t.Errorf("Publish before Start: %v", err)
	}
	if err := b.Start(); err != nil {
		t.Fatal(err)
	}
	if err := b.Start(); !errors.Is(err, ErrBusAlreadyRunning) {
		t.Errorf("second Start: %v", err)
	}
	if !b.IsRunning() {
		t.Error("bus should be running")
	}
	if err := b.Stop(ctx); err != nil {
		t.Fatal(err)
	}
	if err := b.Stop(ctx); !errors.Is(err, ErrBusNotRunning) {
		t.Errorf("second Stop: %v", err)
	}
}

func TestBus_SyncOrder(t *testing.T) {
	b := startBus(t)

	var got []string
	for _, name := range []string{"a", "b", "c"} {
		name := name
		if _, err := b.SubscribeFunc("format", func(context.Context, any) error {
			got = append(got, name)
			return nil
		}); err != nil {
			t.Fatal(err)
		}
	}

	if err := b.Publish(context.Background(), NewEvent("format", "strong", "test")); err != nil {
		t.Fatal(err)
	}
	if strings.Join(got, "") != "abc" {
		t.Errorf("handlers ran in order %v", got)
	}
}

func TestBus_Wildcards(t *testing.T) {
	b := startBus(t)

	var got []topic.Topic
	record := func(_ context.Context, e any) error {
		got = append(got, e.(TopicProvider).EventTopic())
		return nil
	}
	_, _ = b.SubscribeFunc("selection.*", record)

	ctx := context.Background()
	_ = b.Emit(ctx, "selection.start", nil, "test")
	_ = b.Emit(ctx, "format", nil, "test")
	_ = b.Emit(ctx, "selection.end", nil, "test")

	if len(got) != 2 || got[0] != "selection.start" || got[1] != "selection.end" {
		t.Errorf("wildcard subscription saw %v", got)
	}
}

func TestBus_Payload(t *testing.T) {
	b := startBus(t)

	var typed, erased string
	_, _ = b.Subscribe("format", AsHandler(func(_ context.Context, e Event[string]) error {
		typed = e.Payload
		return nil
	}))
	_, _ = b.SubscribeFunc("format", func(_ context.Context, e any) error {
		erased, _ = Payload[string](e)
		return nil
	})

	evt := NewEvent[string]("format", "em", "test")
	if evt.Metadata.ID == "" || evt.Metadata.Timestamp.IsZero() {
		t.Error("event metadata should be filled in")
	}
	if err := b.Publish(context.Background(), evt); err != nil {
		t.Fatal(err)
	}
	if typed != "em" || erased != "em" {
		t.Errorf("typed=%q erased=%q", typed, erased)
	}

	erased = ""
	_ = b.Emit(context.Background(), "format", "u", "test")
	if erased != "u" {
		t.Errorf("Payload from envelope = %q", erased)
	}
}

func TestBus_Once(t *testing.T) {
	b := startBus(t)

	calls := 0
	if _, err := b.Once("format", func(context.Context, any) error {
		calls++
		return nil
	}); err != nil {
		t.Fatal(err)
	}
	if b.Listeners("format") != 1 {
		t.Fatal("once subscription should be registered")
	}

	ctx := context.Background()
	_ = b.Emit(ctx, "format", nil, "test")
	_ = b.Emit(ctx, "format", nil, "test")

	if calls != 1 {
		t.Errorf("once handler ran %d times", calls)
	}
	if b.Listeners("format") != 0 {
		t.Error("once subscription should remove itself")
	}
}

func TestBus_Unsubscribe(t *testing.T) {
	b := startBus(t)

	calls := 0
	sub, _ := b.SubscribeFunc("format", func(context.Context, any) error {
		calls++
		return nil
	})
	if err := b.Unsubscribe(sub); err != nil {
		t.Fatal(err)
	}
	if sub.IsActive() {
		t.Error("unsubscribed subscription should be inactive")
	}
	_ = b.Emit(context.Background(), "format", nil, "test")
	if calls != 0 {
		t.Error("unsubscribed handler should not run")
	}
	if err := b.Unsubscribe(sub); !errors.Is(err, ErrSubscriptionNotFound) {
		t.Errorf("second Unsubscribe: %v", err)
	}
	if err := b.Unsubscribe(nil); !errors.Is(err, ErrInvalidSubscription) {
		t.Errorf("nil Unsubscribe: %v", err)
	}
}

func TestBus_UnsubscribeDuringPublish(t *testing.T) {
	b := startBus(t)

	var second Subscription
	calls := 0
	_, _ = b.SubscribeFunc("format", func(context.Context, any) error {
		return b.Unsubscribe(second)
	})
	second, _ = b.SubscribeFunc("format", func(context.Context, any) error {
		calls++
		return nil
	})

	if err := b.Emit(context.Background(), "format", nil, "test"); err != nil {
		t.Fatal(err)
	}
	if calls != 0 {
		t.Error("a handler removed earlier in the same publish should not run")
	}
}

func TestBus_Errors(t *testing.T) {
	b := startBus(t)
	errBoom := errors.New("boom")

	ran := false
	_, _ = b.SubscribeFunc("format", func(context.Context, any) error { return errBoom })
	_, _ = b.SubscribeFunc("format", func(context.Context, any) error { panic("bad") })
	_, _ = b.SubscribeFunc("format", func(context.Context, any) error {
		ran = true
		return nil
	})

	err := b.Emit(context.Background(), "format", nil, "test")
	if !ran {
		t.Error("a failing handler should not stop the others")
	}
	if !errors.Is(err, errBoom) {
		t.Errorf("expected handler error, got %v", err)
	}
	if !errors.Is(err, ErrHandlerPanic) {
		t.Errorf("expected panic error, got %v", err)
	}
	var herr *HandlerError
	if !errors.As(err, &herr) || herr.Topic != "format" {
		t.Errorf("expected *HandlerError, got %v", err)
	}

	s := b.Stats()
	if s.HandlersExecuted != 3 || s.HandlerErrors != 1 || s.HandlerPanics != 1 {
		t.Errorf("unexpected stats %+v", s)
	}
}

func TestBus_InvalidInput(t *testing.T) {
	b := startBus(t)
	ctx := context.Background()

	if err := b.Publish(ctx, "not an event"); !errors.Is(err, ErrInvalidEvent) {
		t.Errorf("expected ErrInvalidEvent, got %v", err)
	}
	if err := b.Emit(ctx, "", nil, "test"); !errors.Is(err, ErrInvalidEvent) {
		t.Errorf("expected ErrInvalidEvent, got %v", err)
	}
	if _, err := b.Subscribe("format", nil); !errors.Is(err, ErrNilHandler) {
		t.Errorf("expected ErrNilHandler, got %v", err)
	}
	if _, err := b.SubscribeFunc("bad..topic", func(context.Context, any) error { return nil }); !errors.Is(err, ErrInvalidTopic) {
		t.Errorf("expected ErrInvalidTopic, got %v", err)
	}
}

func TestBus_Lazy(t *testing.T) {
	b := startBus(t)
	ctx := context.Background()

	var (
		mu  sync.Mutex
		got []string
	)
	_, _ = b.SubscribeFunc("selection.change", func(_ context.Context, e any) error {
		p, _ := Payload[string](e)
		mu.Lock()
		got = append(got, "lazy:"+p)
		mu.Unlock()
		return nil
	}, WithLazy())
	_, _ = b.SubscribeFunc("selection.change", func(_ context.Context, e any) error {
		p, _ := Payload[string](e)
		mu.Lock()
		got = append(got, "sync:"+p)
		mu.Unlock()
		return nil
	})

	release := make(chan struct{})
	_, _ = b.Once("format", func(context.Context, any) error {
		<-release
		return nil
	}, WithLazy())

	// The worker is blocked, so no lazy delivery can overtake the sync ones.
	_ = b.Emit(ctx, "format", nil, "test")
	_ = b.Emit(ctx, "selection.change", "1", "test")
	_ = b.Emit(ctx, "selection.change", "2", "test")

	mu.Lock()
	if strings.Join(got, ",") != "sync:1,sync:2" {
		t.Errorf("before flush got %v", got)
	}
	mu.Unlock()

	close(release)
	if err := b.Flush(ctx); err != nil {
		t.Fatal(err)
	}

	mu.Lock()
	defer mu.Unlock()
	if strings.Join(got, ",") != "sync:1,sync:2,lazy:1,lazy:2" {
		t.Errorf("after flush got %v", got)
	}
}

func TestBus_Filter(t *testing.T) {
	b := startBus(t)

	calls := 0
	_, _ = b.SubscribeFunc("format", func(context.Context, any) error {
		calls++
		return nil
	}, WithFilter(func(e any) bool {
		p, _ := Payload[string](e)
		return p == "strong"
	}))

	ctx := context.Background()
	_ = b.Emit(ctx, "format", "em", "test")
	_ = b.Emit(ctx, "format", "strong", "test")
	if calls != 1 {
		t.Errorf("filtered handler ran %d times", calls)
	}
}

func TestBus_MaxListeners(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	b := startBus(t, WithLogger(logger), WithMaxListeners(2))

	noop := func(context.Context, any) error { return nil }
	for i := 0; i < 4; i++ {
		if _, err := b.SubscribeFunc("format", noop); err != nil {
			t.Fatalf("subscribing past the limit must not fail: %v", err)
		}
	}
	if b.Listeners("format") != 4 {
		t.Errorf("Listeners = %d", b.Listeners("format"))
	}
	if n := strings.Count(buf.String(), "possible event listener leak"); n != 1 {
		t.Errorf("expected one warning, got %d:\n%s", n, buf.String())
	}

	buf.Reset()
	b.SetMaxListeners(0)
	_, _ = b.SubscribeFunc("format", noop)
	if buf.Len() != 0 {
		t.Errorf("no warning expected with the limit disabled:\n%s", buf.String())
	}

	if n := b.RemoveAll("format"); n != 5 {
		t.Errorf("RemoveAll = %d", n)
	}
	if b.Listeners("") != 0 {
		t.Error("all listeners should be gone")
	}
}
