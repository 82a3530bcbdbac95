package document

import (
	"fmt"
	"unicode/utf8"
)

// TextNode is a leaf holding a run of text and its attributes.
// TextNodes are immutable once constructed.
type TextNode struct {
	id        ID
	text      string
	attrs     AttributeSet
	lineBreak bool
}

// NewTextNode creates a text node with a fresh ID. The text is kept as
// given; trimming is the reader's job.
func NewTextNode(ids *IDSource, text string, attrs ...Attribute) *TextNode {
	return &TextNode{
		id:    ids.Next(),
		text:  text,
		attrs: NewAttributeSet(attrs...),
	}
}

// NewLineBreak creates a leaf standing for a <br>. It holds a single
// "\n" character and is never merged with neighbouring runs.
func NewLineBreak(ids *IDSource, attrs ...Attribute) *TextNode {
	return &TextNode{
		id:        ids.Next(),
		text:      "\n",
		attrs:     NewAttributeSet(attrs...),
		lineBreak: true,
	}
}

func newTextNode(ids *IDSource, text string, attrs AttributeSet) *TextNode {
	return &TextNode{id: ids.Next(), text: text, attrs: attrs.Copy()}
}

// derive returns a node like t with a fresh ID and the given attributes.
func (t *TextNode) derive(ids *IDSource, attrs AttributeSet) *TextNode {
	n := newTextNode(ids, t.text, attrs)
	n.lineBreak = t.lineBreak
	return n
}

// ID returns the node's identity.
func (t *TextNode) ID() ID { return t.id }

// Text returns the node's content.
func (t *TextNode) Text() string { return t.text }

// Attributes returns a copy of the node's attributes.
func (t *TextNode) Attributes() AttributeSet { return t.attrs.Copy() }

// IsLineBreak reports whether the node stands for a <br>.
func (t *TextNode) IsLineBreak() bool { return t.lineBreak }

// Len returns the content length in characters.
func (t *TextNode) Len() int { return utf8.RuneCountInString(t.text) }

func (t *TextNode) sealed() {}

// Copy returns a node with the same content, a copy of the attributes and
// a fresh ID.
func (t *TextNode) Copy(ids *IDSource) *TextNode {
	return t.derive(ids, t.attrs)
}

// SplitAt splits the node into [0, offset) and [offset, end). Both halves
// get fresh IDs and independent copies of the attributes.
//
// Splitting at 0 or at the end would produce an empty node and returns
// ErrDegenerateSplit.
func (t *TextNode) SplitAt(ids *IDSource, offset int) (*TextNode, *TextNode, error) {
	if offset <= 0 || offset >= t.Len() {
		return nil, nil, fmt.Errorf("split %q at %d: %w", t.text, offset, ErrDegenerateSplit)
	}
	left, right := splitRunes(t.text, offset)
	return newTextNode(ids, left, t.attrs), newTextNode(ids, right, t.attrs), nil
}

// String returns the text and attributes, for debugging.
func (t *TextNode) String() string {
	if t.lineBreak {
		return "<br>" + t.attrs.String()
	}
	return fmt.Sprintf("%q%s", t.text, t.attrs)
}

// splitRunes splits s before the rune at index i.
func splitRunes(s string, i int) (string, string) {
	n := 0
	for pos := range s {
		if n == i {
			return s[:pos], s[pos:]
		}
		n++
	}
	return s, ""
}

// sliceRunes returns the runes of s in [from, to).
func sliceRunes(s string, from, to int) string {
	_, tail := splitRunes(s, from)
	head, _ := splitRunes(tail, to-from)
	return head
}
