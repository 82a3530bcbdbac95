package config

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/dshills/richtype/internal/config/loader"
	"github.com/dshills/richtype/internal/config/watcher"
	"github.com/dshills/richtype/internal/event"
	"github.com/dshills/richtype/internal/event/events"
	"github.com/dshills/richtype/internal/input/key"
)

// Config holds validated editor options.
type Config struct {
	mu     sync.RWMutex
	values map[string]any

	bus     event.Bus
	logger  *slog.Logger
	watcher *watcher.Watcher
	closed  bool
}

// Option configures a Config instance.
type Option func(*Config)

// WithBus publishes config events on bus.
func WithBus(bus event.Bus) Option {
	return func(c *Config) {
		c.bus = bus
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a configuration holding the default options.
func New(opts ...Option) *Config {
	c := &Config{
		values: defaults(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetOption returns the value of an option.
func (c *Config) GetOption(name string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.values[name]
	return v, ok
}

// String returns a string option, or "" when it is unset or not a string.
func (c *Config) String(name string) string {
	v, _ := c.GetOption(name)
	s, _ := v.(string)
	return s
}

// Bool returns a bool option, or false when it is unset or not a bool.
func (c *Config) Bool(name string) bool {
	v, _ := c.GetOption(name)
	b, _ := v.(bool)
	return b
}

// Platform returns the configured platform.
func (c *Config) Platform() key.Platform {
	return key.Platform(c.String(OptionPlatform))
}

// Options returns a copy of all options.
func (c *Config) Options() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return maps.Clone(c.values)
}

// SetOption validates and stores one option.
func (c *Config) SetOption(ctx context.Context, name string, value any) error {
	return c.SetOptions(ctx, map[string]any{name: value})
}

// SetOptions validates every value and then stores them all. Nothing is
// stored when any value is invalid.
func (c *Config) SetOptions(ctx context.Context, values map[string]any) error {
	normalized := make(map[string]any, len(values))
	for _, name := range sortedKeys(values) {
		v, err := validate(name, values[name])
		if err != nil {
			return err
		}
		normalized[name] = v
	}

	c.mu.Lock()
	var changes []events.ConfigChanged
	for _, name := range sortedKeys(normalized) {
		old := c.values[name]
		if old == normalized[name] {
			continue
		}
		c.values[name] = normalized[name]
		changes = append(changes, events.ConfigChanged{Name: name, OldValue: old, NewValue: normalized[name]})
	}
	c.mu.Unlock()

	for _, ch := range changes {
		c.logger.Debug("option changed", "name", ch.Name, "old", ch.OldValue, "new", ch.NewValue)
		c.publish(ctx, event.NewEvent(events.TopicConfigChanged, ch, "config"))
	}
	return nil
}

// Load reads options from a TOML or YAML file and applies them with
// SetOptions. A missing file leaves the options unchanged.
func (c *Config) Load(ctx context.Context, path string) error {
	err := c.load(ctx, path)
	c.publish(ctx, event.NewEvent(events.TopicConfigReloaded, events.ConfigReloaded{Path: path, Err: err}, "config"))
	return err
}

func (c *Config) load(ctx context.Context, path string) error {
	values, err := loader.Load(path)
	if err != nil {
		return fmt.Errorf("load options: %w", err)
	}
	if values == nil {
		return nil
	}
	if err := c.SetOptions(ctx, values); err != nil {
		return fmt.Errorf("load options from %s: %w", path, err)
	}
	return nil
}

// Watch loads path and reloads it whenever the file changes. Reload
// errors are logged and published; the previous options stay in place.
func (c *Config) Watch(ctx context.Context, path string, opts ...watcher.Option) error {
	if err := c.Load(ctx, path); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if c.watcher == nil {
		w, err := watcher.New(append([]watcher.Option{watcher.WithLogger(c.logger)}, opts...)...)
		if err != nil {
			return fmt.Errorf("watch options: %w", err)
		}
		w.OnChange(func(e watcher.Event) {
			if e.Op.Has(watcher.OpRemove) && !e.Op.Has(watcher.OpCreate) {
				return
			}
			if err := c.Load(context.Background(), e.Path); err != nil {
				c.logger.Warn("reload options", "path", e.Path, "err", err)
			}
		})
		c.watcher = w
	}
	return c.watcher.Watch(path)
}

// Close stops watching option files.
func (c *Config) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	if c.watcher == nil {
		return nil
	}
	err := c.watcher.Close()
	c.watcher = nil
	return err
}

func (c *Config) publish(ctx context.Context, ev any) {
	if c.bus == nil || !c.bus.IsRunning() {
		return
	}
	if err := c.bus.Publish(ctx, ev); err != nil {
		c.logger.Warn("publish config event", "err", err)
	}
}

func sortedKeys(m map[string]any) []string {
	return slices.Sorted(maps.Keys(m))
}
