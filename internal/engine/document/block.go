package document

import (
	"fmt"
	"strings"
)

// BlockNode is a structural container such as a paragraph or list item.
// Its children are text runs or nested blocks.
type BlockNode struct {
	id       ID
	typ      BlockType
	attrs    AttributeSet
	children []Node
}

// NewBlockNode creates a block with a fresh ID.
// It fails with ErrInvalidBlockType if typ is not a known block type.
func NewBlockNode(ids *IDSource, typ BlockType, children ...Node) (*BlockNode, error) {
	if !typ.Valid() {
		return nil, &BlockTypeError{Type: string(typ)}
	}
	kids := make([]Node, len(children))
	copy(kids, children)
	return &BlockNode{id: ids.Next(), typ: typ, children: kids}, nil
}

// ID returns the node's identity.
func (b *BlockNode) ID() ID { return b.id }

// Type returns the block's tag.
func (b *BlockNode) Type() BlockType { return b.typ }

// Attributes returns a copy of the block's attributes.
func (b *BlockNode) Attributes() AttributeSet { return b.attrs.Copy() }

func (b *BlockNode) sealed() {}

// Children returns a copy of the child list.
func (b *BlockNode) Children() []Node {
	out := make([]Node, len(b.children))
	copy(out, b.children)
	return out
}

// ChildCount returns the number of direct children.
func (b *BlockNode) ChildCount() int { return len(b.children) }

// Len returns the number of characters in the block.
func (b *BlockNode) Len() int {
	n := 0
	for _, c := range b.children {
		n += c.Len()
	}
	return n
}

// Text returns the concatenated text of the block.
func (b *BlockNode) Text() string {
	var sb strings.Builder
	for _, t := range b.TextNodes() {
		sb.WriteString(t.text)
	}
	return sb.String()
}

// TextNodes returns the text runs of the block in order, descending into
// nested blocks.
func (b *BlockNode) TextNodes() []*TextNode {
	var out []*TextNode
	var walk func(*BlockNode)
	walk = func(blk *BlockNode) {
		for _, c := range blk.children {
			switch n := c.(type) {
			case *TextNode:
				out = append(out, n)
			case *BlockNode:
				walk(n)
			}
		}
	}
	walk(b)
	return out
}

// TextNodeAt returns the text node holding the character at offset and the
// offset within that node. The end of the block is exclusive: an offset
// equal to Len, or beyond it, is not found.
func (b *BlockNode) TextNodeAt(offset int) (*TextNode, int, bool) {
	if offset < 0 {
		return nil, 0, false
	}
	walked := 0
	for _, t := range b.TextNodes() {
		n := t.Len()
		if offset < walked+n {
			return t, offset - walked, true
		}
		walked += n
	}
	return nil, 0, false
}

// OffsetOf returns the block-relative offset at which the text node with
// the given ID starts.
func (b *BlockNode) OffsetOf(id ID) (int, bool) {
	walked := 0
	for _, t := range b.TextNodes() {
		if t.id == id {
			return walked, true
		}
		walked += t.Len()
	}
	return 0, false
}

// Child finds a descendant by ID.
func (b *BlockNode) Child(id ID) (Node, bool) {
	n, _ := b.find(id)
	return n, n != nil
}

// find returns the descendant with the given ID and its parent block.
func (b *BlockNode) find(id ID) (Node, *BlockNode) {
	for _, c := range b.children {
		if c.ID() == id {
			return c, b
		}
		if cb, ok := c.(*BlockNode); ok {
			if n, p := cb.find(id); n != nil {
				return n, p
			}
		}
	}
	return nil, nil
}

// Copy returns a block with a fresh ID sharing the child nodes of b.
// The attribute set is copied.
func (b *BlockNode) Copy(ids *IDSource) *BlockNode {
	return &BlockNode{
		id:       ids.Next(),
		typ:      b.typ,
		attrs:    b.attrs.Copy(),
		children: b.Children(),
	}
}

// WithType returns a copy of the block carrying a different type.
func (b *BlockNode) WithType(ids *IDSource, typ BlockType) (*BlockNode, error) {
	if !typ.Valid() {
		return nil, &BlockTypeError{Type: string(typ)}
	}
	nb := b.Copy(ids)
	nb.typ = typ
	return nb, nil
}

// SplitAtRange returns a copy of the block in which the text nodes touched
// by the block-relative offsets start and end are split so that both
// offsets fall on node boundaries. A node containing both offsets is split
// into up to three parts in one pass. Offsets already on a boundary leave
// the touched node as it is.
func (b *BlockNode) SplitAtRange(ids *IDSource, start, end int) (*BlockNode, error) {
	if start > end {
		start, end = end, start
	}
	if err := b.checkOffset("start", start); err != nil {
		return nil, err
	}
	if err := b.checkOffset("end", end); err != nil {
		return nil, err
	}
	if start == end {
		return b.SplitAtStart(ids, start)
	}
	rw := &rewriter{ids: ids}
	nb, _ := rw.block(b, start, end)
	return nb, nil
}

// SplitAtStart splits the text node containing offset so that offset falls
// on a node boundary.
func (b *BlockNode) SplitAtStart(ids *IDSource, offset int) (*BlockNode, error) {
	if err := b.checkOffset("start", offset); err != nil {
		return nil, err
	}
	rw := &rewriter{ids: ids}
	nb, _ := rw.block(b, offset, b.Len())
	return nb, nil
}

// SplitAtEnd is SplitAtStart for the end boundary of a range.
func (b *BlockNode) SplitAtEnd(ids *IDSource, offset int) (*BlockNode, error) {
	if err := b.checkOffset("end", offset); err != nil {
		return nil, err
	}
	rw := &rewriter{ids: ids}
	nb, _ := rw.block(b, 0, offset)
	return nb, nil
}

func (b *BlockNode) checkOffset(endpoint string, offset int) error {
	if offset < 0 || offset > b.Len() {
		return &RangeError{Endpoint: endpoint, Offset: offset}
	}
	return nil
}

// String returns the block type and children, for debugging.
func (b *BlockNode) String() string {
	parts := make([]string, len(b.children))
	for i, c := range b.children {
		parts[i] = fmt.Sprint(c)
	}
	return fmt.Sprintf("%s(%s)", b.typ, strings.Join(parts, " "))
}
