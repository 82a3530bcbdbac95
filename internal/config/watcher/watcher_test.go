package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func newWatcher(t *testing.T) *Watcher {
	t.Helper()
	w, err := New(WithDebounce(20 * time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = w.Close() })
	return w
}

func TestWatcherDeliversChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "options.toml")
	if err := os.WriteFile(path, []byte("a = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w := newWatcher(t)
	events := make(chan Event, 4)
	w.OnChange(func(e Event) { events <- e })
	if err := w.Watch(path); err != nil {
		t.Fatal(err)
	}

	// A burst of writes settles into one event.
	for i := range 3 {
		if err := os.WriteFile(path, []byte("a = "+string(rune('2'+i))+"\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case e := <-events:
		abs, _ := filepath.Abs(path)
		if e.Path != abs || !e.Op.Has(OpWrite) {
			t.Errorf("event = %+v", e)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no change event")
	}

	select {
	case e := <-events:
		t.Errorf("burst should be debounced, got extra %+v", e)
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "options.yaml")
	w := newWatcher(t)
	events := make(chan Event, 4)
	w.OnChange(func(e Event) { events <- e })
	if err := w.Watch(path); err != nil {
		t.Fatal(err)
	}
	if !w.IsWatching(path) {
		t.Fatal("IsWatching should be true")
	}

	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case e := <-events:
		t.Errorf("unexpected event %+v", e)
	case <-time.After(150 * time.Millisecond):
	}

	// Creating the watched file is reported.
	if err := os.WriteFile(path, []byte("x: 1"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case e := <-events:
		if !e.Op.Has(OpCreate) {
			t.Errorf("expected create, got %s", e.Op)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no create event")
	}
}

func TestWatcherUnwatchAndClose(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "options.toml")
	w := newWatcher(t)
	if err := w.Watch(path); err != nil {
		t.Fatal(err)
	}
	if err := w.Unwatch(path); err != nil {
		t.Fatal(err)
	}
	if w.IsWatching(path) {
		t.Error("IsWatching should be false after Unwatch")
	}

	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close = %v", err)
	}
	if err := w.Watch(path); err != ErrWatcherClosed {
		t.Errorf("expected ErrWatcherClosed, got %v", err)
	}
}

func TestWatchMissingDirectory(t *testing.T) {
	w := newWatcher(t)
	if err := w.Watch(filepath.Join(t.TempDir(), "nope", "options.toml")); err == nil {
		t.Error("watching a file in a missing directory should fail")
	}
}

func TestConvertOp(t *testing.T) {
	tests := []struct {
		in   fsnotify.Op
		want Op
	}{
		{fsnotify.Create, OpCreate},
		{fsnotify.Write | fsnotify.Chmod, OpWrite},
		{fsnotify.Remove | fsnotify.Rename, OpRemove | OpRename},
		{fsnotify.Chmod, 0},
	}
	for _, tt := range tests {
		if got := convertOp(tt.in); got != tt.want {
			t.Errorf("convertOp(%v) = %s, want %s", tt.in, got, tt.want)
		}
	}
	if s := (OpCreate | OpWrite).String(); s != "create|write" {
		t.Errorf("String() = %q", s)
	}
}
