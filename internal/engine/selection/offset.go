package selection

import (
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/dshills/richtype/internal/dom"
)

// Point is a DOM boundary point. For text nodes Offset counts characters;
// for elements it is a child index.
type Point struct {
	Node   *html.Node
	Offset int
}

// OffsetFrom counts the characters between the start of root and the
// boundary point (node, offset). Only textual nodes count: a <br> is one
// character and whitespace-only text is skipped.
func OffsetFrom(root, node *html.Node, offset int) (int, error) {
	if node == nil {
		return 0, ErrNilContainer
	}
	if !dom.Contains(root, node) {
		return 0, ErrNotInRoot
	}

	before := precedes(node, offset)
	total := 0
	for t := dom.First(root, dom.Textual); t != nil; t = dom.Next(t, dom.Textual, root) {
		if t == node {
			return total + clamp(offset, 0, dom.Length(t)), nil
		}
		if !before(t) {
			break
		}
		total += dom.Length(t)
	}
	return total, nil
}

// precedes returns a predicate telling whether a textual leaf lies entirely
// before the boundary point (node, offset).
func precedes(node *html.Node, offset int) func(*html.Node) bool {
	if node.Type != html.ElementNode {
		return func(t *html.Node) bool { return dom.Compare(t, node) < 0 }
	}
	child := dom.ChildAt(node, offset)
	if child == nil {
		return func(t *html.Node) bool {
			return dom.Compare(t, node) < 0 || dom.Contains(node, t)
		}
	}
	return func(t *html.Node) bool { return dom.Compare(t, child) < 0 }
}

// PointAt resolves a character offset from root into a boundary point.
// An offset on the border between two textual nodes resolves into the
// following node when preferEnd is false and into the preceding node
// otherwise. A <br> is addressed by its parent and child index.
func PointAt(root *html.Node, offset int, preferEnd bool) (Point, error) {
	if offset < 0 {
		return Point{}, &OffsetError{Offset: offset, Length: dom.Length(root)}
	}

	var first, last *html.Node
	total := 0
	for t := dom.First(root, dom.Textual); t != nil; t = dom.Next(t, dom.Textual, root) {
		n := dom.Length(t)
		if first == nil {
			first = t
		}
		if !preferEnd && offset < total+n {
			return pointIn(t, offset-total), nil
		}
		if preferEnd && offset > total && offset <= total+n {
			return pointIn(t, offset-total), nil
		}
		total += n
		last = t
	}

	switch {
	case first == nil && offset == 0:
		return Point{Node: root, Offset: 0}, nil
	case offset == 0:
		return pointIn(first, 0), nil
	case offset == total:
		return pointIn(last, dom.Length(last)), nil
	}
	return Point{}, &OffsetError{Offset: offset, Length: total}
}

func pointIn(t *html.Node, local int) Point {
	if dom.IsBR(t) {
		return Point{Node: t.Parent, Offset: dom.Index(t) + local}
	}
	return Point{Node: t, Offset: local}
}

// comparePoints orders two boundary points. It returns -1 if a is before
// b, 1 if after and 0 if they are equal.
func comparePoints(a, b Point) int {
	if a.Node == b.Node {
		return cmpInt(a.Offset, b.Offset)
	}
	if c := childContaining(a.Node, b.Node); c != nil {
		if a.Offset <= dom.Index(c) {
			return -1
		}
		return 1
	}
	if c := childContaining(b.Node, a.Node); c != nil {
		if b.Offset <= dom.Index(c) {
			return 1
		}
		return -1
	}
	return dom.Compare(a.Node, b.Node)
}

// childContaining returns the child of ancestor that contains n, or nil if
// n is not a proper descendant of ancestor.
func childContaining(ancestor, n *html.Node) *html.Node {
	for ; n != nil; n = n.Parent {
		if n.Parent == ancestor {
			return n
		}
	}
	return nil
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// maxOffset returns the largest valid offset in node.
func maxOffset(n *html.Node) int {
	if n.Type == html.TextNode {
		return utf8.RuneCountInString(n.Data)
	}
	return dom.ChildCount(n)
}
