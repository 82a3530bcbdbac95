package document

// NodeCache maps node IDs to the nodes of one tree.
//
// Lookups search the tree depth-first on the first request for an ID and
// memoize the answer, including misses. A cache is never patched when the
// tree changes; the owning Document builds a new one instead.
//
// NodeCache is not safe for concurrent use.
type NodeCache struct {
	roots   []*BlockNode
	nodes   map[ID]Node
	parents map[ID]*BlockNode
}

// NewNodeCache creates an empty cache over the given top-level blocks.
func NewNodeCache(roots []*BlockNode) *NodeCache {
	return &NodeCache{
		roots:   roots,
		nodes:   make(map[ID]Node),
		parents: make(map[ID]*BlockNode),
	}
}

// Get returns the node with the given ID.
func (c *NodeCache) Get(id ID) (Node, bool) {
	if n, ok := c.nodes[id]; ok {
		return n, n != nil
	}

	var found Node
	for _, r := range c.roots {
		if r.id == id {
			found = r
			break
		}
		if n, p := r.find(id); n != nil {
			found = n
			c.parents[id] = p
			break
		}
	}

	// A nil entry records the miss.
	c.nodes[id] = found
	return found, found != nil
}

// Set stores a node under its ID ahead of any lookup.
func (c *NodeCache) Set(n Node) {
	if n == nil {
		return
	}
	c.nodes[n.ID()] = n
}

// Parent returns the block that directly contains the node with the given
// ID. Top-level blocks have no parent.
func (c *NodeCache) Parent(id ID) (*BlockNode, bool) {
	if p, ok := c.parents[id]; ok {
		return p, true
	}
	for _, r := range c.roots {
		if _, p := r.find(id); p != nil {
			c.parents[id] = p
			return p, true
		}
	}
	return nil, false
}

// Len returns the number of memoized entries, misses included.
func (c *NodeCache) Len() int {
	return len(c.nodes)
}
