package dom

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Filter selects nodes during a walk. A nil Filter accepts every node.
type Filter func(n *html.Node) bool

// whitespace matches the characters a browser collapses between blocks.
const whitespace = "\t\n\r "

// TextNode accepts any text node.
func TextNode(n *html.Node) bool {
	return n.Type == html.TextNode
}

// Text accepts text nodes that are not entirely whitespace.
func Text(n *html.Node) bool {
	return n.Type == html.TextNode && strings.Trim(n.Data, whitespace) != ""
}

// Textual accepts nodes that display as characters: non-whitespace text
// and line breaks.
func Textual(n *html.Node) bool {
	return IsBR(n) || Text(n)
}

// NonWhitespace accepts everything except whitespace-only text.
func NonWhitespace(n *html.Node) bool {
	return n.Type != html.TextNode || strings.Trim(n.Data, whitespace) != ""
}

// Visible accepts nodes that render something: textual nodes, images and
// elements holding a textual descendant. There is no layout engine, so
// visibility is judged from content alone.
func Visible(n *html.Node) bool {
	switch {
	case Textual(n):
		return true
	case n.Type != html.ElementNode:
		return false
	case n.DataAtom == atom.Img || n.DataAtom == atom.Hr:
		return true
	}
	return First(n, Textual) != nil
}

var filters = map[string]Filter{
	"text":          Text,
	"textNode":      TextNode,
	"textual":       Textual,
	"visible":       Visible,
	"nonWhitespace": NonWhitespace,
}

// FilterByName returns the filter registered under name.
func FilterByName(name string) (Filter, bool) {
	f, ok := filters[name]
	return f, ok
}

// IsBR returns true for <br> elements.
func IsBR(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode && n.DataAtom == atom.Br
}

// IsElement returns true if n is an element with the given tag name.
// Tag names are compared case-insensitively.
func IsElement(n *html.Node, tag string) bool {
	return n != nil && n.Type == html.ElementNode && strings.EqualFold(n.Data, tag)
}

// Length returns the number of characters n contributes to offsets: one
// for a line break, the rune count for non-whitespace text and the sum of
// textual descendants for elements. Whitespace-only text counts nothing.
func Length(n *html.Node) int {
	switch {
	case n == nil:
		return 0
	case IsBR(n):
		return 1
	case n.Type == html.TextNode:
		if !Text(n) {
			return 0
		}
		return utf8.RuneCountInString(n.Data)
	}
	total := 0
	for c := First(n, Textual); c != nil; c = Next(c, Textual, n) {
		total += Length(c)
	}
	return total
}
