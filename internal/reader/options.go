package reader

import (
	"log/slog"
	"strings"

	"github.com/dshills/richtype/internal/engine/document"
)

// Option configures a Reader during creation.
type Option func(*Reader)

// WithDefaultBlock sets the block type used to wrap inline content found
// directly below the root. Invalid types are ignored.
func WithDefaultBlock(typ document.BlockType) Option {
	return func(r *Reader) {
		if typ.Valid() {
			r.defaultBlock = typ
		}
	}
}

// WithTagAttribute maps an inline tag to the attribute it applies to
// the text inside it.
func WithTagAttribute(tag string, attr document.Attribute) Option {
	return func(r *Reader) {
		r.tags[strings.ToLower(tag)] = attr
	}
}

// WithSanitize enables sanitizing markup passed to ReadString.
func WithSanitize(enabled bool) Option {
	return func(r *Reader) {
		r.sanitize = enabled
	}
}

// WithLogger sets the logger for skipped content.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reader) {
		if logger != nil {
			r.logger = logger
		}
	}
}
