package document

import (
	"strings"
)

// Document is an ordered list of top-level blocks.
//
// A Document is a snapshot: operations that change content return a new
// Document and leave the receiver untouched. Unchanged blocks are shared
// between snapshots.
type Document struct {
	ids     *IDSource
	nodes   []*BlockNode
	cache   *NodeCache
	created []ID
}

// New creates a document over the given blocks.
func New(ids *IDSource, nodes ...*BlockNode) *Document {
	d := &Document{ids: ids}
	d.SetNodes(nodes)
	return d
}

// IDs returns the ID source that numbers this document's nodes.
func (d *Document) IDs() *IDSource {
	return d.ids
}

// Nodes returns a copy of the top-level block list.
func (d *Document) Nodes() []*BlockNode {
	out := make([]*BlockNode, len(d.nodes))
	copy(out, d.nodes)
	return out
}

// SetNodes replaces the block list and starts a new node cache.
func (d *Document) SetNodes(nodes []*BlockNode) {
	d.nodes = make([]*BlockNode, len(nodes))
	copy(d.nodes, nodes)
	d.cache = NewNodeCache(d.nodes)
	d.created = nil
}

// Copy returns a document sharing the block list and cache of d.
func (d *Document) Copy() *Document {
	return &Document{ids: d.ids, nodes: d.nodes, cache: d.cache}
}

// Cache returns the document's node index.
func (d *Document) Cache() *NodeCache {
	return d.cache
}

// Get returns the node with the given ID.
func (d *Document) Get(id ID) (Node, bool) {
	return d.cache.Get(id)
}

// Parent returns the block containing the node with the given ID.
func (d *Document) Parent(id ID) (*BlockNode, bool) {
	return d.cache.Parent(id)
}

// Created returns the IDs of the nodes created by the operation that
// produced this document.
func (d *Document) Created() []ID {
	out := make([]ID, len(d.created))
	copy(out, d.created)
	return out
}

// Len returns the number of characters in the document.
func (d *Document) Len() int {
	n := 0
	for _, b := range d.nodes {
		n += b.Len()
	}
	return n
}

// Text returns the document text with blocks separated by newlines.
func (d *Document) Text() string {
	parts := make([]string, len(d.nodes))
	for i, b := range d.nodes {
		parts[i] = b.Text()
	}
	return strings.Join(parts, "\n")
}

// String returns the block structure, for debugging.
func (d *Document) String() string {
	parts := make([]string, len(d.nodes))
	for i, b := range d.nodes {
		parts[i] = b.String()
	}
	return strings.Join(parts, "\n")
}

// topLevelIndex returns the index of the top-level block containing the
// node with the given ID, or -1.
func (d *Document) topLevelIndex(id ID) int {
	cur := id
	for {
		p, ok := d.cache.Parent(cur)
		if !ok {
			break
		}
		cur = p.id
	}
	for i, b := range d.nodes {
		if b.id == cur {
			return i
		}
	}
	return -1
}

// blockOffset returns the absolute offset at which block i starts.
func (d *Document) blockOffset(i int) int {
	n := 0
	for _, b := range d.nodes[:i] {
		n += b.Len()
	}
	return n
}
