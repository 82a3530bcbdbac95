package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/dshills/richtype/internal/config/loader"
	"github.com/dshills/richtype/internal/config/watcher"
	"github.com/dshills/richtype/internal/event"
	"github.com/dshills/richtype/internal/event/events"
	"github.com/dshills/richtype/internal/input/key"
)

func TestDefaults(t *testing.T) {
	c := New()
	if got := c.String(OptionDefaultBlockTag); got != "p" {
		t.Errorf("defaultBlockTag = %q", got)
	}
	if !c.Bool(OptionSanitize) || c.Bool(OptionMinify) {
		t.Error("sanitize should default to true and minify to false")
	}
	if c.Platform() != key.CurrentPlatform() {
		t.Errorf("platform = %q", c.Platform())
	}
	if len(c.Options()) != len(Names()) {
		t.Errorf("Options() = %v", c.Options())
	}
	if _, ok := c.GetOption("nope"); ok {
		t.Error("unknown option should not be found")
	}
}

func TestSetOption(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name    string
		option  string
		value   any
		want    any
		wantErr error
	}{
		{"block tag", OptionDefaultBlockTag, " H2 ", "h2", nil},
		{"empty block tag", OptionDefaultBlockTag, "", "", nil},
		{"inline tag", OptionDefaultBlockTag, "strong", nil, ErrValidationFailed},
		{"block tag type", OptionDefaultBlockTag, 3, nil, ErrTypeMismatch},
		{"platform alias", OptionPlatform, "darwin", "mac", nil},
		{"bad platform", OptionPlatform, "beos", nil, ErrValidationFailed},
		{"bool", OptionMinify, true, true, nil},
		{"bool type", OptionSanitize, "yes", nil, ErrTypeMismatch},
		{"unknown", "colour", "red", nil, ErrUnknownOption},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			before := c.Options()
			err := c.SetOption(ctx, tt.option, tt.value)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				var ve *ValidationError
				if !errors.As(err, &ve) || ve.Name != tt.option {
					t.Errorf("expected *ValidationError for %s, got %v", tt.option, err)
				}
				if got := c.Options(); len(got) != len(before) || got[tt.option] != before[tt.option] {
					t.Error("invalid value must not be stored")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got, _ := c.GetOption(tt.option); got != tt.want {
				t.Errorf("GetOption = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSetOptionsIsAtomic(t *testing.T) {
	c := New()
	err := c.SetOptions(context.Background(), map[string]any{
		OptionDefaultBlockTag: "h3",
		OptionMinify:          "no",
	})
	if !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("expected ErrTypeMismatch, got %v", err)
	}
	if c.String(OptionDefaultBlockTag) != "p" {
		t.Error("no option may change when one value is invalid")
	}
}

type recorder struct {
	mu       sync.Mutex
	changed  []events.ConfigChanged
	reloaded []events.ConfigReloaded
}

func (r *recorder) changes() []events.ConfigChanged {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]events.ConfigChanged(nil), r.changed...)
}

func (r *recorder) reloads() []events.ConfigReloaded {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]events.ConfigReloaded(nil), r.reloaded...)
}

func newBus(t *testing.T) (event.Bus, *recorder) {
	t.Helper()
	bus := event.NewBus()
	if err := bus.Start(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = bus.Stop(context.Background()) })

	rec := &recorder{}
	_, _ = bus.SubscribeFunc("config.*", func(_ context.Context, e any) error {
		rec.mu.Lock()
		defer rec.mu.Unlock()
		if c, ok := event.Payload[events.ConfigChanged](e); ok {
			rec.changed = append(rec.changed, c)
		}
		if r, ok := event.Payload[events.ConfigReloaded](e); ok {
			rec.reloaded = append(rec.reloaded, r)
		}
		return nil
	})
	return bus, rec
}

func TestChangeEvents(t *testing.T) {
	bus, rec := newBus(t)
	c := New(WithBus(bus))
	ctx := context.Background()

	_ = c.SetOption(ctx, OptionMinify, true)
	_ = c.SetOption(ctx, OptionMinify, true) // unchanged
	_ = c.SetOptions(ctx, map[string]any{OptionSanitize: false, OptionDefaultBlockTag: "h1"})

	got := rec.changes()
	want := []events.ConfigChanged{
		{Name: OptionMinify, OldValue: false, NewValue: true},
		{Name: OptionDefaultBlockTag, OldValue: "p", NewValue: "h1"},
		{Name: OptionSanitize, OldValue: true, NewValue: false},
	}
	if len(got) != len(want) {
		t.Fatalf("changes = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("change %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"options.toml": "defaultBlockTag = \"blockquote\"\nminify = true\n",
		"options.yaml": "defaultBlockTag: blockquote\nminify: true\n",
	}
	for name, content := range files {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				t.Fatal(err)
			}
			bus, rec := newBus(t)
			c := New(WithBus(bus))
			if err := c.Load(context.Background(), path); err != nil {
				t.Fatal(err)
			}
			if c.String(OptionDefaultBlockTag) != "blockquote" || !c.Bool(OptionMinify) {
				t.Errorf("options = %v", c.Options())
			}
			if r := rec.reloads(); len(r) != 1 || r[0].Path != path || r[0].Err != nil {
				t.Errorf("reload events = %+v", r)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.toml")
	invalid := filepath.Join(dir, "invalid.yaml")
	_ = os.WriteFile(bad, []byte("minify = \n"), 0o644)
	_ = os.WriteFile(invalid, []byte("platform: plan9\n"), 0o644)

	bus, rec := newBus(t)
	c := New(WithBus(bus))
	ctx := context.Background()

	var pe *loader.ParseError
	if err := c.Load(ctx, bad); !errors.As(err, &pe) {
		t.Errorf("expected *loader.ParseError, got %v", err)
	}
	if err := c.Load(ctx, invalid); !errors.Is(err, ErrValidationFailed) {
		t.Errorf("expected ErrValidationFailed, got %v", err)
	}
	if err := c.Load(ctx, filepath.Join(dir, "options.ini")); !errors.Is(err, loader.ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
	if err := c.Load(ctx, filepath.Join(dir, "missing.toml")); err != nil {
		t.Errorf("missing file should be ignored, got %v", err)
	}

	r := rec.reloads()
	if len(r) != 4 || r[0].Err == nil || r[3].Err != nil {
		t.Errorf("reload events = %+v", r)
	}
}

func TestWatchReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "options.toml")
	if err := os.WriteFile(path, []byte("minify = false\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	bus, rec := newBus(t)
	c := New(WithBus(bus))
	defer c.Close()

	if err := c.Watch(context.Background(), path, watcher.WithDebounce(10*time.Millisecond)); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("minify = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for !c.Bool(OptionMinify) {
		if time.Now().After(deadline) {
			t.Fatal("options were not reloaded")
		}
		time.Sleep(10 * time.Millisecond)
	}
	if len(rec.reloads()) < 2 {
		t.Errorf("expected a reload event per load, got %+v", rec.reloads())
	}

	if err := c.Close(); err != nil {
		t.Fatal(err)
	}
	if err := c.Watch(context.Background(), path); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
}
