package format

import (
	"log/slog"

	"github.com/dshills/richtype/internal/event"
)

// Option configures a Formatter or a DOM formatter.
type Option func(*options)

type options struct {
	bus          event.Bus
	logger       *slog.Logger
	defaultBlock string
}

func defaultOptions() options {
	return options{
		logger:       slog.Default(),
		defaultBlock: "p",
	}
}

// WithBus publishes an events.Format event after every change.
func WithBus(bus event.Bus) Option {
	return func(o *options) {
		o.bus = bus
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithDefaultBlock sets the tag a block reverts to when the block format
// is toggled off. On the DOM an empty tag unwraps the block instead.
func WithDefaultBlock(tag string) Option {
	return func(o *options) {
		o.defaultBlock = tag
	}
}
