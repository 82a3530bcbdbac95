package renderer

import (
	"log/slog"

	"github.com/dshills/richtype/internal/engine/document"
)

// IDAttribute is the element attribute holding the document node ID.
const IDAttribute = "data-document-node-id"

// Options configures the renderer.
type Options struct {
	// Tags maps attribute names to the inline tag rendered for them.
	// Attributes without a tag are rendered as a span carrying a
	// data-<name> attribute.
	Tags map[string]string

	// Minify compacts the markup returned by HTML.
	Minify bool

	// Logger receives debug output. Nil means slog.Default().
	Logger *slog.Logger
}

// DefaultOptions returns the standard attribute to tag mapping.
func DefaultOptions() Options {
	return Options{
		Tags: map[string]string{
			document.AttrBold:      "strong",
			document.AttrItalic:    "em",
			document.AttrUnderline: "u",
			document.AttrDel:       "del",
		},
	}
}
