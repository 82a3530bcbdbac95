package dom

import (
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// NewElement creates a detached element.
func NewElement(tag string) *html.Node {
	tag = strings.ToLower(tag)
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
}

// NewText creates a detached text node.
func NewText(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// Clone returns a deep copy of n. The copy has no parent or siblings.
func Clone(n *html.Node) *html.Node {
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      slices.Clone(n.Attr),
	}
	for k := n.FirstChild; k != nil; k = k.NextSibling {
		c.AppendChild(Clone(k))
	}
	return c
}

// Detach removes n from its parent, if any.
func Detach(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// InsertAfter inserts n as the next sibling of ref.
func InsertAfter(ref, n *html.Node) {
	Detach(n)
	ref.Parent.InsertBefore(n, ref.NextSibling)
}

// MoveInside appends nodes to target in order.
func MoveInside(target *html.Node, nodes ...*html.Node) {
	for _, n := range nodes {
		Detach(n)
		target.AppendChild(n)
	}
}

// Children returns the children of n as a slice.
func Children(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

// GetAttr returns the value of the attribute key on n.
func GetAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets or replaces the attribute key on n.
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr deletes the attribute key from n.
func RemoveAttr(n *html.Node, key string) {
	out := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace != "" || a.Key != key {
			out = append(out, a)
		}
	}
	n.Attr = out
}

// SplitText splits the text node n at the character offset and inserts the
// tail as a new sibling after n. It returns the tail, or nil when offset is
// on either edge of the text and nothing was split.
func SplitText(n *html.Node, offset int) *html.Node {
	if n == nil || n.Type != html.TextNode || offset <= 0 {
		return nil
	}
	count := 0
	for pos := range n.Data {
		if count == offset {
			tail := NewText(n.Data[pos:])
			n.Data = n.Data[:pos]
			if n.Parent != nil {
				n.Parent.InsertBefore(tail, n.NextSibling)
			}
			return tail
		}
		count++
	}
	return nil
}

// Wrap inserts a new tag element where the first node is and moves all
// nodes into it. Elements of the same tag nested inside the moved nodes
// are unwrapped.
func Wrap(tag string, nodes ...*html.Node) *html.Node {
	if len(nodes) == 0 || nodes[0].Parent == nil {
		return nil
	}
	wrapper := NewElement(tag)
	nodes[0].Parent.InsertBefore(wrapper, nodes[0])
	MoveInside(wrapper, nodes...)
	for _, n := range nodes {
		RemoveTag(n, tag, true)
	}
	return wrapper
}

// Unwrap replaces el with its children and merges the text nodes this
// leaves adjacent in the parent.
func Unwrap(el *html.Node) {
	parent := el.Parent
	if parent == nil {
		return
	}
	for c := el.FirstChild; c != nil; c = el.FirstChild {
		el.RemoveChild(c)
		parent.InsertBefore(c, el)
	}
	parent.RemoveChild(el)
	Normalize(parent)
}

// RemoveTag unwraps el if it has the given tag. With deep set, matching
// descendants are unwrapped too.
func RemoveTag(el *html.Node, tag string, deep bool) {
	if deep {
		for _, c := range Children(el) {
			RemoveTag(c, tag, true)
		}
	}
	if IsElement(el, tag) {
		Unwrap(el)
	}
}

// Normalize merges adjacent text nodes and drops empty ones throughout n.
func Normalize(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		switch {
		case c.Type == html.TextNode && c.Data == "":
			n.RemoveChild(c)
		case c.Type == html.TextNode && next != nil && next.Type == html.TextNode:
			c.Data += next.Data
			n.RemoveChild(next)
			continue
		case c.Type == html.ElementNode:
			Normalize(c)
		}
		c = next
	}
}

// ChangeTag replaces el by a new element with the given tag holding the
// same attributes and children, and returns the replacement.
func ChangeTag(el *html.Node, tag string) *html.Node {
	repl := NewElement(tag)
	repl.Attr = append(repl.Attr, el.Attr...)
	for c := el.FirstChild; c != nil; c = el.FirstChild {
		el.RemoveChild(c)
		repl.AppendChild(c)
	}
	if el.Parent != nil {
		el.Parent.InsertBefore(repl, el)
		el.Parent.RemoveChild(el)
	}
	return repl
}

// Similar reports whether two nodes are elements with the same tag.
func Similar(a, b *html.Node) bool {
	return a != nil && b != nil &&
		a.Type == html.ElementNode && b.Type == html.ElementNode &&
		strings.EqualFold(a.Data, b.Data)
}

// MergeInto moves the children of source to the end of target and removes
// source.
func MergeInto(target, source *html.Node) *html.Node {
	MoveInside(target, Children(source)...)
	Detach(source)
	return target
}

// ConnectLeft merges el into the nearest similar previous sibling when
// only whitespace text separates them. It returns the element holding the
// content afterwards.
func ConnectLeft(el *html.Node) *html.Node {
	var between []*html.Node
	for sib := el.PrevSibling; sib != nil; sib = sib.PrevSibling {
		switch {
		case Text(sib):
			return el
		case TextNode(sib):
			between = append([]*html.Node{sib}, between...)
		case Similar(el, sib):
			MoveInside(sib, between...)
			MergeInto(sib, el)
			Normalize(sib)
			return sib
		default:
			return el
		}
	}
	return el
}

// ConnectRight merges the nearest similar next sibling into el when only
// whitespace text separates them. It returns el.
func ConnectRight(el *html.Node) *html.Node {
	var between []*html.Node
	for sib := el.NextSibling; sib != nil; sib = sib.NextSibling {
		switch {
		case Text(sib):
			return el
		case TextNode(sib):
			between = append(between, sib)
		case Similar(el, sib):
			MoveInside(el, between...)
			MergeInto(el, sib)
			Normalize(el)
			return el
		default:
			return el
		}
	}
	return el
}

// Connect joins el with similar neighbours on both sides.
func Connect(el *html.Node) *html.Node {
	return ConnectRight(ConnectLeft(el))
}
