package event

import "log/slog"

// DefaultMaxListeners is the number of subscriptions to one topic pattern
// above which the bus logs a possible leak.
const DefaultMaxListeners = 12

// BusOption configures an event Bus.
type BusOption func(*busConfig)

// busConfig contains configuration for the event bus.
type busConfig struct {
	// queueSize is the size of the lazy delivery queue.
	queueSize int

	// maxListeners is the warning threshold per topic pattern. Zero
	// disables the warning.
	maxListeners int

	// panicHandler is called when a handler panics.
	panicHandler PanicHandler

	logger *slog.Logger
}

// defaultBusConfig returns sensible default configuration.
func defaultBusConfig() busConfig {
	return busConfig{
		queueSize:    1024,
		maxListeners: DefaultMaxListeners,
		logger:       slog.Default(),
	}
}

// WithQueueSize sets the lazy delivery queue size.
func WithQueueSize(size int) BusOption {
	return func(c *busConfig) {
		if size > 0 {
			c.queueSize = size
		}
	}
}

// WithMaxListeners sets the per-topic listener warning threshold.
func WithMaxListeners(n int) BusOption {
	return func(c *busConfig) {
		if n >= 0 {
			c.maxListeners = n
		}
	}
}

// WithPanicHandler sets the panic handler for the bus.
func WithPanicHandler(h PanicHandler) BusOption {
	return func(c *busConfig) {
		c.panicHandler = h
	}
}

// WithLogger sets the logger used for bus warnings.
func WithLogger(l *slog.Logger) BusOption {
	return func(c *busConfig) {
		if l != nil {
			c.logger = l
		}
	}
}
