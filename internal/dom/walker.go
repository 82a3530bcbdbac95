package dom

import "golang.org/x/net/html"

// Next returns the node following n in document order that matches filter.
// The walk descends into children before moving to siblings and then to
// the siblings of ancestors. It never leaves constrain; a nil constrain
// bounds the walk by the tree root.
func Next(n *html.Node, filter Filter, constrain *html.Node) *html.Node {
	for n != nil {
		n = nextInOrder(n, constrain)
		if n != nil && matches(n, filter) {
			return n
		}
	}
	return nil
}

// Prev returns the node preceding n in document order that matches filter.
// Ancestors are visited after their earlier descendants. constrain itself
// is never returned.
func Prev(n *html.Node, filter Filter, constrain *html.Node) *html.Node {
	for n != nil {
		n = prevInOrder(n, constrain)
		if n != nil && matches(n, filter) {
			return n
		}
	}
	return nil
}

// First returns n itself if it matches filter, otherwise the first
// matching descendant of n.
func First(n *html.Node, filter Filter) *html.Node {
	if n == nil {
		return nil
	}
	if matches(n, filter) {
		return n
	}
	return Next(n, filter, n)
}

// Last returns the last matching descendant of n in document order, or n
// itself if it matches and no descendant does.
func Last(n *html.Node, filter Filter) *html.Node {
	if n == nil {
		return nil
	}
	for cur := lastDescendant(n); cur != nil && cur != n; cur = prevInOrder(cur, n) {
		if matches(cur, filter) {
			return cur
		}
	}
	if matches(n, filter) {
		return n
	}
	return nil
}

func matches(n *html.Node, filter Filter) bool {
	return filter == nil || filter(n)
}

func nextInOrder(n, constrain *html.Node) *html.Node {
	if n.FirstChild != nil {
		return n.FirstChild
	}
	for ; n != nil && n != constrain; n = n.Parent {
		if n.NextSibling != nil {
			return n.NextSibling
		}
	}
	return nil
}

func prevInOrder(n, constrain *html.Node) *html.Node {
	if n == constrain {
		return nil
	}
	if n.PrevSibling != nil {
		return lastDescendant(n.PrevSibling)
	}
	if n.Parent == constrain {
		return nil
	}
	return n.Parent
}

func lastDescendant(n *html.Node) *html.Node {
	for n.LastChild != nil {
		n = n.LastChild
	}
	return n
}

// Walker is a cursor over a DOM tree. Each move updates the current node
// unless nothing is found.
type Walker struct {
	node      *html.Node
	filter    Filter
	constrain *html.Node
}

// NewWalker creates a walker positioned on n.
func NewWalker(n *html.Node, filter Filter, constrain *html.Node) *Walker {
	return &Walker{node: n, filter: filter, constrain: constrain}
}

// Node returns the current node.
func (w *Walker) Node() *html.Node {
	return w.node
}

// SetNode moves the walker to n.
func (w *Walker) SetNode(n *html.Node) {
	w.node = n
}

// Next moves to the next matching node.
func (w *Walker) Next() *html.Node {
	return w.move(Next(w.node, w.filter, w.constrain))
}

// Prev moves to the previous matching node.
func (w *Walker) Prev() *html.Node {
	return w.move(Prev(w.node, w.filter, w.constrain))
}

// First moves to the first matching node within the current one.
func (w *Walker) First() *html.Node {
	return w.move(First(w.node, w.filter))
}

// Last moves to the last matching node within the current one.
func (w *Walker) Last() *html.Node {
	return w.move(Last(w.node, w.filter))
}

// PeekNext returns the next matching node without moving.
func (w *Walker) PeekNext() *html.Node {
	return Next(w.node, w.filter, w.constrain)
}

// PeekPrev returns the previous matching node without moving.
func (w *Walker) PeekPrev() *html.Node {
	return Prev(w.node, w.filter, w.constrain)
}

func (w *Walker) move(n *html.Node) *html.Node {
	if n != nil {
		w.node = n
	}
	return n
}
