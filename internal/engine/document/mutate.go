package document

// attrFunc derives a text node's new attributes from a private copy of its
// current ones.
type attrFunc func(AttributeSet) AttributeSet

// rewriter produces copies of blocks in which the text covered by a
// block-relative span is split onto node boundaries and, when fn is set,
// given new attributes. Every node it creates is recorded.
type rewriter struct {
	ids     *IDSource
	fn      attrFunc
	created []Node
}

// block rewrites [start, end) of b. It returns b itself when nothing in
// the span needs to change.
func (rw *rewriter) block(b *BlockNode, start, end int) (*BlockNode, bool) {
	if start >= end {
		return b, false
	}

	var (
		out     = make([]Node, 0, len(b.children)+2)
		covered = make([]bool, 0, len(b.children)+2)
		changed bool
		walked  int
	)
	for _, child := range b.children {
		n := child.Len()
		lo, hi := max(start-walked, 0), min(end-walked, n)
		walked += n
		if lo >= hi {
			out = append(out, child)
			covered = append(covered, false)
			continue
		}

		switch c := child.(type) {
		case *TextNode:
			parts, mid, ok := rw.text(c, lo, hi)
			if !ok {
				out = append(out, c)
				covered = append(covered, false)
				continue
			}
			changed = true
			for i, p := range parts {
				out = append(out, p)
				covered = append(covered, i == mid)
			}
		case *BlockNode:
			nb, ok := rw.block(c, lo, hi)
			changed = changed || ok
			out = append(out, nb)
			covered = append(covered, false)
		}
	}
	if !changed {
		return b, false
	}

	if rw.fn != nil {
		out = mergeRuns(rw.ids, out, covered)
	}
	old := make(map[Node]bool, len(b.children))
	for _, c := range b.children {
		old[c] = true
	}
	for _, c := range out {
		if _, isText := c.(*TextNode); isText && !old[c] {
			rw.created = append(rw.created, c)
		}
	}

	nb := &BlockNode{id: rw.ids.Next(), typ: b.typ, attrs: b.attrs.Copy(), children: out}
	rw.created = append(rw.created, nb)
	return nb, true
}

// text rewrites [lo, hi) of t, splitting off the uncovered parts. It
// returns the replacement nodes and the index of the covered one.
func (rw *rewriter) text(t *TextNode, lo, hi int) ([]Node, int, bool) {
	attrs := t.attrs
	if rw.fn != nil {
		attrs = rw.fn(t.attrs.Copy())
		if attrs.Equal(t.attrs) {
			return nil, 0, false
		}
	}

	n := t.Len()
	if lo == 0 && hi == n {
		if rw.fn == nil {
			return nil, 0, false
		}
		return []Node{t.derive(rw.ids, attrs)}, 0, true
	}

	parts := make([]Node, 0, 3)
	if lo > 0 {
		parts = append(parts, newTextNode(rw.ids, sliceRunes(t.text, 0, lo), t.attrs))
	}
	mid := len(parts)
	parts = append(parts, newTextNode(rw.ids, sliceRunes(t.text, lo, hi), attrs))
	if hi < n {
		parts = append(parts, newTextNode(rw.ids, sliceRunes(t.text, hi, n), t.attrs))
	}
	return parts, mid, true
}

// mergeRuns joins adjacent text siblings with equal attributes when at
// least one of them is a covered run whose attributes were just changed.
// Other runs are never joined with each other, and line breaks are never
// joined at all.
func mergeRuns(ids *IDSource, nodes []Node, covered []bool) []Node {
	out := make([]Node, 0, len(nodes))
	outCovered := make([]bool, 0, len(nodes))
	for i, n := range nodes {
		if k := len(out) - 1; k >= 0 && (covered[i] || outCovered[k]) {
			prev, ok1 := out[k].(*TextNode)
			cur, ok2 := n.(*TextNode)
			if ok1 && ok2 && !prev.lineBreak && !cur.lineBreak && prev.attrs.Equal(cur.attrs) {
				out[k] = newTextNode(ids, prev.text+cur.text, prev.attrs)
				outCovered[k] = true
				continue
			}
		}
		out = append(out, n)
		outCovered = append(outCovered, covered[i])
	}
	return out
}

// AddAttributeAtRange returns a new document in which every character of r
// carries attr.
func (d *Document) AddAttributeAtRange(attr Attribute, r Range) (*Document, error) {
	return d.CopyWithAttributesAtRange(attr, r, true)
}

// RemoveAttributeAtRange returns a new document in which no character of r
// carries an attribute named attr.Name.
func (d *Document) RemoveAttributeAtRange(attr Attribute, r Range) (*Document, error) {
	return d.CopyWithAttributesAtRange(attr, r, false)
}

// CopyWithAttributesAtRange adds (add true) or removes attr over r and
// returns the resulting document. The receiver is not modified.
//
// Text nodes are split on the range boundaries. When the range spans
// several blocks, the first block is split at the start only, the last at
// the end only, and every block in between is covered entirely.
//
// Nodes on the path to a changed text node are copied with fresh IDs;
// every other block keeps its identity. It fails with ErrRangeOutOfBounds
// if an endpoint is not part of the document.
func (d *Document) CopyWithAttributesAtRange(attr Attribute, r Range, add bool) (*Document, error) {
	fn := func(s AttributeSet) AttributeSet {
		if add {
			s.Add(attr)
		} else {
			s.Remove(attr.Name)
		}
		return s
	}
	return d.rewriteRange(r, fn)
}

func (d *Document) rewriteRange(r Range, fn attrFunc) (*Document, error) {
	s, err := d.resolve(r)
	if err != nil {
		return nil, err
	}

	nodes := d.Nodes()
	rw := &rewriter{ids: d.ids, fn: fn}
	if s.startBlock == s.endBlock {
		nodes[s.startBlock], _ = rw.block(nodes[s.startBlock], s.start, s.end)
	} else {
		first := nodes[s.startBlock]
		nodes[s.startBlock], _ = rw.block(first, s.start, first.Len())
		for i := s.startBlock + 1; i < s.endBlock; i++ {
			nodes[i], _ = rw.block(nodes[i], 0, nodes[i].Len())
		}
		nodes[s.endBlock], _ = rw.block(nodes[s.endBlock], 0, s.end)
	}
	return d.derive(nodes, rw.created), nil
}

// derive builds the successor document and primes its cache with the
// nodes created by the operation.
func (d *Document) derive(nodes []*BlockNode, created []Node) *Document {
	nd := New(d.ids, nodes...)
	nd.created = make([]ID, 0, len(created))
	for _, n := range created {
		nd.cache.Set(n)
		nd.created = append(nd.created, n.ID())
	}
	return nd
}

// HasAttributeAtRange reports whether every character covered by r carries
// attr. A collapsed range has no characters and reports false.
func (d *Document) HasAttributeAtRange(attr Attribute, r Range) (bool, error) {
	s, err := d.resolve(r)
	if err != nil {
		return false, err
	}
	if s.collapsed() {
		return false, nil
	}

	covered := 0
	all := true
	d.eachText(s, func(t *TextNode) {
		covered++
		if !t.attrs.Contains(attr) {
			all = false
		}
	})
	return covered > 0 && all, nil
}

// TextNodesAtRange returns the text nodes that share at least one
// character with r.
func (d *Document) TextNodesAtRange(r Range) ([]*TextNode, error) {
	s, err := d.resolve(r)
	if err != nil {
		return nil, err
	}
	var out []*TextNode
	d.eachText(s, func(t *TextNode) { out = append(out, t) })
	return out, nil
}

func (d *Document) eachText(s span, fn func(*TextNode)) {
	for i := s.startBlock; i <= s.endBlock; i++ {
		start, end := 0, d.nodes[i].Len()
		if i == s.startBlock {
			start = s.start
		}
		if i == s.endBlock {
			end = s.end
		}
		walked := 0
		for _, t := range d.nodes[i].TextNodes() {
			n := t.Len()
			if walked < end && walked+n > start {
				fn(t)
			}
			walked += n
		}
	}
}

// BlocksAtRange returns the top-level blocks touched by r.
func (d *Document) BlocksAtRange(r Range) ([]*BlockNode, error) {
	s, err := d.resolve(r)
	if err != nil {
		return nil, err
	}
	out := make([]*BlockNode, 0, s.endBlock-s.startBlock+1)
	out = append(out, d.nodes[s.startBlock:s.endBlock+1]...)
	return out, nil
}

// SetBlockTypeAtRange returns a new document in which every top-level
// block touched by r has the given type. Blocks that already have it keep
// their identity.
func (d *Document) SetBlockTypeAtRange(typ BlockType, r Range) (*Document, error) {
	if !typ.Valid() {
		return nil, &BlockTypeError{Type: string(typ)}
	}
	s, err := d.resolve(r)
	if err != nil {
		return nil, err
	}

	nodes := d.Nodes()
	var created []Node
	for i := s.startBlock; i <= s.endBlock; i++ {
		if nodes[i].typ == typ {
			continue
		}
		nb, err := nodes[i].WithType(d.ids, typ)
		if err != nil {
			return nil, err
		}
		nodes[i] = nb
		created = append(created, nb)
	}
	return d.derive(nodes, created), nil
}
