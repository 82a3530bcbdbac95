package renderer

import "github.com/dshills/richtype/internal/engine/document"

// inlineNode is a formatting wrapper or a text leaf in the inline tree of
// a block. Wrappers carry the attributes they add on top of their
// ancestors; leaves carry a text node.
type inlineNode struct {
	attrs    document.AttributeSet
	text     *document.TextNode
	children []*inlineNode
}

// inlineTree groups a run of text nodes so that adjacent runs sharing
// attributes render inside one wrapper:
//
//	"Hello"[bold] " world"[bold]  ->  <strong>Hello world</strong>
//	"a"[bold] "b"[bold italic]    ->  <strong>a<em>b</em></strong>
func inlineTree(run []*document.TextNode) *inlineNode {
	root := &inlineNode{}
	for _, t := range run {
		leaf := &inlineNode{text: t}
		attrs := t.Attributes()
		if attrs.IsEmpty() {
			root.append(leaf)
			continue
		}
		root.append(&inlineNode{attrs: attrs, children: []*inlineNode{leaf}})
	}
	return root
}

// append adds that as the last child of n. Attributes already provided
// by n are dropped from that. When the current last child can contain
// that, it is nested there instead; a wrapper left without attributes is
// flattened into its children.
func (n *inlineNode) append(that *inlineNode) {
	if that.text == nil {
		that.attrs = that.attrs.Diff(n.attrs)
	}
	if k := len(n.children); k > 0 && n.children[k-1].canContain(that) {
		n.children[k-1].append(that)
		return
	}
	if that.text == nil && that.attrs.IsEmpty() {
		n.children = append(n.children, that.children...)
		return
	}
	n.children = append(n.children, that)
}

// canContain reports whether that can be nested in n: n is a wrapper
// with attributes and every one of them is also carried by that.
func (n *inlineNode) canContain(that *inlineNode) bool {
	if n.text != nil || that.text != nil || n.attrs.IsEmpty() {
		return false
	}
	return n.attrs.Diff(that.attrs).IsEmpty()
}
