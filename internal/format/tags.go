package format

import (
	"strings"

	"github.com/dshills/richtype/internal/engine/document"
)

// Kind tells how a tag formats content.
type Kind int

const (
	// KindUnknown is a tag the formatter does not implement.
	KindUnknown Kind = iota

	// KindInline tags toggle a character attribute.
	KindInline

	// KindBlock tags change the type of whole blocks.
	KindBlock
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindInline:
		return "inline"
	case KindBlock:
		return "block"
	default:
		return "unknown"
	}
}

// inlineTags maps inline tags to the attribute they toggle.
var inlineTags = map[string]string{
	"strong": document.AttrBold,
	"b":      document.AttrBold,
	"em":     document.AttrItalic,
	"i":      document.AttrItalic,
	"u":      document.AttrUnderline,
	"s":      document.AttrDel,
	"del":    document.AttrDel,
}

// aliases maps alternative spellings of inline tags to the tag that is
// written.
var aliases = map[string]string{
	"b":   "strong",
	"i":   "em",
	"del": "s",
}

// spellingsOf returns the other tags that mean the same as tag.
func spellingsOf(tag string) []string {
	var out []string
	for alias, canonical := range aliases {
		if canonical == tag {
			out = append(out, alias)
		}
	}
	return out
}

var blockTags = map[string]bool{
	"h1":         true,
	"h2":         true,
	"h3":         true,
	"h4":         true,
	"h5":         true,
	"h6":         true,
	"blockquote": true,
}

// Lookup normalizes tag and reports how it formats. Inline aliases come
// back as the tag they stand for: b as strong, i as em and del as s.
func Lookup(tag string) (string, Kind) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if _, ok := inlineTags[tag]; ok {
		if canonical, ok := aliases[tag]; ok {
			tag = canonical
		}
		return tag, KindInline
	}
	if blockTags[tag] {
		return tag, KindBlock
	}
	return tag, KindUnknown
}

// Attribute returns the document attribute toggled by an inline tag.
func Attribute(tag string) (document.Attribute, bool) {
	name, ok := inlineTags[strings.ToLower(tag)]
	if !ok {
		return document.Attribute{}, false
	}
	return document.Named(name), true
}
