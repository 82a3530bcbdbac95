package document

import "fmt"

// Range is a span of a document expressed as text nodes and offsets local
// to those nodes.
type Range struct {
	StartNode   *TextNode
	StartOffset int
	EndNode     *TextNode
	EndOffset   int
}

// NewRange creates a range. Ordering is not checked; Document.Normalize
// puts the endpoints in document order.
func NewRange(startNode *TextNode, startOffset int, endNode *TextNode, endOffset int) Range {
	return Range{
		StartNode:   startNode,
		StartOffset: startOffset,
		EndNode:     endNode,
		EndOffset:   endOffset,
	}
}

// IsCollapsed returns true if both endpoints are the same position.
func (r Range) IsCollapsed() bool {
	return r.StartNode == r.EndNode && r.StartOffset == r.EndOffset
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%s:%d, %s:%d)", nodeID(r.StartNode), r.StartOffset, nodeID(r.EndNode), r.EndOffset)
}

func nodeID(t *TextNode) string {
	if t == nil {
		return "nil"
	}
	return t.id.String()
}

// span is a range resolved to top-level block indices and block-relative
// offsets.
type span struct {
	startBlock, start int
	endBlock, end     int
}

func (s span) collapsed() bool {
	return s.startBlock == s.endBlock && s.start == s.end
}

// resolve locates both endpoints of r and orders them.
func (d *Document) resolve(r Range) (span, error) {
	si, so, err := d.locate("start", r.StartNode, r.StartOffset)
	if err != nil {
		return span{}, err
	}
	ei, eo, err := d.locate("end", r.EndNode, r.EndOffset)
	if err != nil {
		return span{}, err
	}
	if si > ei || (si == ei && so > eo) {
		si, so, ei, eo = ei, eo, si, so
	}
	return span{startBlock: si, start: so, endBlock: ei, end: eo}, nil
}

// locate returns the top-level block index and block-relative offset of a
// text node position.
func (d *Document) locate(endpoint string, t *TextNode, offset int) (int, int, error) {
	if t == nil {
		return 0, 0, &RangeError{Endpoint: endpoint, Offset: offset}
	}
	if n, ok := d.cache.Get(t.id); !ok || n != Node(t) {
		return 0, 0, &RangeError{Endpoint: endpoint, Node: t.id, Offset: offset}
	}
	idx := d.topLevelIndex(t.id)
	if idx < 0 {
		return 0, 0, &RangeError{Endpoint: endpoint, Node: t.id, Offset: offset}
	}
	base, ok := d.nodes[idx].OffsetOf(t.id)
	if !ok || offset < 0 || offset > t.Len() {
		return 0, 0, &RangeError{Endpoint: endpoint, Node: t.id, Offset: offset}
	}
	return idx, base + offset, nil
}

// Normalize returns r with its endpoints in document order.
func (d *Document) Normalize(r Range) (Range, error) {
	si, so, err := d.locate("start", r.StartNode, r.StartOffset)
	if err != nil {
		return Range{}, err
	}
	ei, eo, err := d.locate("end", r.EndNode, r.EndOffset)
	if err != nil {
		return Range{}, err
	}
	if si > ei || (si == ei && so > eo) {
		return NewRange(r.EndNode, r.EndOffset, r.StartNode, r.StartOffset), nil
	}
	return r, nil
}

// Offsets converts r into absolute character offsets from the start of the
// document.
func (d *Document) Offsets(r Range) (int, int, error) {
	s, err := d.resolve(r)
	if err != nil {
		return 0, 0, err
	}
	return d.blockOffset(s.startBlock) + s.start, d.blockOffset(s.endBlock) + s.end, nil
}

// TextRange resolves absolute character offsets into a range. An offset on
// a boundary between two text nodes resolves to the start of the following
// node for the start endpoint and to the end of the preceding node for the
// end endpoint.
func (d *Document) TextRange(start, end int) (Range, error) {
	if start > end {
		start, end = end, start
	}
	st, so, ok := d.position(start, false)
	if !ok {
		return Range{}, &RangeError{Endpoint: "start", Offset: start}
	}
	if start == end {
		return NewRange(st, so, st, so), nil
	}
	et, eo, ok := d.position(end, true)
	if !ok {
		return Range{}, &RangeError{Endpoint: "end", Offset: end}
	}
	return NewRange(st, so, et, eo), nil
}

func (d *Document) position(offset int, preferPrev bool) (*TextNode, int, bool) {
	if offset < 0 {
		return nil, 0, false
	}
	var first, last *TextNode
	walked := 0
	for _, b := range d.nodes {
		for _, t := range b.TextNodes() {
			n := t.Len()
			if n == 0 {
				continue
			}
			if first == nil {
				first = t
			}
			if preferPrev && offset > walked && offset <= walked+n {
				return t, offset - walked, true
			}
			if !preferPrev && offset >= walked && offset < walked+n {
				return t, offset - walked, true
			}
			walked += n
			last = t
		}
	}
	switch {
	case offset == 0 && first != nil:
		return first, 0, true
	case offset == walked && last != nil:
		return last, last.Len(), true
	}
	return nil, 0, false
}
