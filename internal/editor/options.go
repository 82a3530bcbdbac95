package editor

import (
	"log/slog"

	"github.com/dshills/richtype/internal/config"
	"github.com/dshills/richtype/internal/event"
)

// Option configures an Editor.
type Option func(*settings)

type settings struct {
	logger  *slog.Logger
	bus     event.Bus
	config  *config.Config
	options map[string]any
}

// WithLogger sets the logger shared by all editor components.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithBus uses an existing bus instead of creating one. The caller owns
// its lifecycle and must start it before creating the editor.
func WithBus(bus event.Bus) Option {
	return func(s *settings) {
		s.bus = bus
	}
}

// WithConfig uses an existing configuration.
func WithConfig(c *config.Config) Option {
	return func(s *settings) {
		s.config = c
	}
}

// WithOptions sets editor options (see package config) before the root is
// read.
func WithOptions(values map[string]any) Option {
	return func(s *settings) {
		s.options = values
	}
}
