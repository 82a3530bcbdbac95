package dom

import (
	"errors"
	"fmt"

	"golang.org/x/net/html"
)

// Path is the list of child indices leading from a root to a node.
type Path []int

// ErrNotDescendant indicates a node is not inside the given root.
var ErrNotDescendant = errors.New("node is not a descendant of root")

// PathOf returns the path from root to target.
func PathOf(root, target *html.Node) (Path, error) {
	var path Path
	for cur := target; cur != root; cur = cur.Parent {
		if cur == nil || cur.Parent == nil {
			return nil, ErrNotDescendant
		}
		path = append(path, Index(cur))
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}

// NodeAt follows path from root.
func NodeAt(root *html.Node, path Path) (*html.Node, error) {
	cur := root
	for step, i := range path {
		child := ChildAt(cur, i)
		if child == nil {
			return nil, fmt.Errorf("node not found at path %v (failed at index %d, step %d)", path, i, step)
		}
		cur = child
	}
	return cur, nil
}

// Index returns the position of n among its siblings.
func Index(n *html.Node) int {
	i := 0
	for c := n.PrevSibling; c != nil; c = c.PrevSibling {
		i++
	}
	return i
}

// ChildAt returns the i-th child of parent or nil.
func ChildAt(parent *html.Node, i int) *html.Node {
	if i < 0 {
		return nil
	}
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		if i == 0 {
			return c
		}
		i--
	}
	return nil
}

// ChildCount returns the number of children of n.
func ChildCount(n *html.Node) int {
	count := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		count++
	}
	return count
}

// Contains reports whether b is a or a descendant of a.
func Contains(a, b *html.Node) bool {
	for ; b != nil; b = b.Parent {
		if b == a {
			return true
		}
	}
	return false
}

// Compare orders two nodes of the same tree in document order. It returns
// -1 if a precedes b, 1 if b precedes a and 0 if they are the same node.
// An ancestor precedes its descendants.
func Compare(a, b *html.Node) int {
	if a == b {
		return 0
	}
	pa, pb := ancestry(a), ancestry(b)

	// Strip the common prefix; both chains start at the tree root.
	i := 0
	for i < len(pa) && i < len(pb) && pa[i] == pb[i] {
		i++
	}
	switch {
	case i == len(pa):
		return -1
	case i == len(pb):
		return 1
	case i == 0:
		// Different trees; fall back to a stable but arbitrary order.
		return 1
	}
	for c := pa[i]; c != nil; c = c.NextSibling {
		if c == pb[i] {
			return -1
		}
	}
	return 1
}

// ancestry returns the chain from the tree root down to n.
func ancestry(n *html.Node) []*html.Node {
	var chain []*html.Node
	for ; n != nil; n = n.Parent {
		chain = append(chain, n)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// Closest returns the nearest node starting at n and moving up through its
// ancestors whose tag matches. The search stops before constrain and
// returns nil if nothing matches.
func Closest(n *html.Node, tag string, constrain *html.Node) *html.Node {
	for ; n != nil && n != constrain; n = n.Parent {
		if IsElement(n, tag) {
			return n
		}
	}
	return nil
}
