package document

import (
	"errors"
	"testing"
)

func TestNodeCacheGet(t *testing.T) {
	ids := NewIDSource()
	text := NewTextNode(ids, "one")
	item := mustBlock(t, ids, BlockListItem, text)
	list := mustBlock(t, ids, BlockList, item)
	c := NewNodeCache([]*BlockNode{list})

	if n, ok := c.Get(text.ID()); !ok || n != Node(text) {
		t.Errorf("expected nested text node, got %v", n)
	}
	if n, ok := c.Get(list.ID()); !ok || n != Node(list) {
		t.Errorf("expected top-level block, got %v", n)
	}
	if _, ok := c.Get(999); ok {
		t.Error("unknown ID should miss")
	}
	if c.Len() != 3 {
		t.Errorf("misses should be memoized too, got %d entries", c.Len())
	}

	if p, ok := c.Parent(text.ID()); !ok || p != item {
		t.Errorf("expected list item parent, got %v", p)
	}
	if _, ok := c.Parent(list.ID()); ok {
		t.Error("top-level block should have no parent")
	}
}

func TestNodeCacheSet(t *testing.T) {
	ids := NewIDSource()
	c := NewNodeCache(nil)
	text := NewTextNode(ids, "x")

	c.Set(text)
	if n, ok := c.Get(text.ID()); !ok || n != Node(text) {
		t.Error("Set should pre-populate the cache")
	}
}

func TestDocumentSetNodesResetsCache(t *testing.T) {
	ids := NewIDSource()
	text := NewTextNode(ids, "a")
	d := New(ids, mustBlock(t, ids, BlockParagraph, text))

	if _, ok := d.Get(text.ID()); !ok {
		t.Fatal("expected text node to be found")
	}
	old := d.Cache()

	d.SetNodes([]*BlockNode{mustBlock(t, ids, BlockParagraph, NewTextNode(ids, "b"))})
	if d.Cache() == old {
		t.Error("SetNodes should install a new cache")
	}
	if _, ok := d.Get(text.ID()); ok {
		t.Error("replaced node should no longer resolve")
	}
}

func TestDocumentCopySharesNodes(t *testing.T) {
	ids := NewIDSource()
	p := mustBlock(t, ids, BlockParagraph, NewTextNode(ids, "a"))
	d := New(ids, p)

	c := d.Copy()
	if c.Nodes()[0] != p {
		t.Error("copy should share blocks")
	}

	nodes := c.Nodes()
	nodes[0] = mustBlock(t, ids, BlockParagraph)
	if d.Nodes()[0] != p || c.Nodes()[0] != p {
		t.Error("Nodes should return a private slice")
	}
}

func TestDocumentTextRange(t *testing.T) {
	ids := NewIDSource()
	hello := NewTextNode(ids, "Hello")
	world := NewTextNode(ids, " world")
	tail := NewTextNode(ids, "tail")
	d := New(ids,
		mustBlock(t, ids, BlockParagraph, hello, world),
		mustBlock(t, ids, BlockParagraph, tail),
	)

	tests := []struct {
		name       string
		start, end int
		want       Range
	}{
		{"within node", 1, 3, NewRange(hello, 1, hello, 3)},
		{"boundary", 5, 5, NewRange(world, 0, world, 0)},
		{"end on boundary", 0, 5, NewRange(hello, 0, hello, 5)},
		{"across blocks", 6, 13, NewRange(world, 1, tail, 2)},
		{"whole", 0, 15, NewRange(hello, 0, tail, 4)},
		{"reversed", 3, 1, NewRange(hello, 1, hello, 3)},
		{"at end", 15, 15, NewRange(tail, 4, tail, 4)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := d.TextRange(tt.start, tt.end)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
			start, end, err := d.Offsets(got)
			if err != nil {
				t.Fatal(err)
			}
			lo, hi := min(tt.start, tt.end), max(tt.start, tt.end)
			if start != lo || end != hi {
				t.Errorf("Offsets = %d, %d; want %d, %d", start, end, lo, hi)
			}
		})
	}

	if _, err := d.TextRange(0, 16); !errors.Is(err, ErrRangeOutOfBounds) {
		t.Errorf("expected ErrRangeOutOfBounds, got %v", err)
	}
}

func TestDocumentNormalize(t *testing.T) {
	ids := NewIDSource()
	a := NewTextNode(ids, "abc")
	b := NewTextNode(ids, "def")
	d := New(ids, mustBlock(t, ids, BlockParagraph, a), mustBlock(t, ids, BlockParagraph, b))

	got, err := d.Normalize(NewRange(b, 1, a, 2))
	if err != nil {
		t.Fatal(err)
	}
	if got != NewRange(a, 2, b, 1) {
		t.Errorf("expected swapped range, got %s", got)
	}

	same, err := d.Normalize(NewRange(a, 2, a, 1))
	if err != nil {
		t.Fatal(err)
	}
	if same.StartOffset > same.EndOffset {
		t.Errorf("expected ordered offsets, got %s", same)
	}
}

func TestDocumentText(t *testing.T) {
	ids := NewIDSource()
	d := New(ids,
		mustBlock(t, ids, BlockHeading1, NewTextNode(ids, "Title")),
		mustBlock(t, ids, BlockParagraph, NewTextNode(ids, "Body")),
	)
	if d.Text() != "Title\nBody" {
		t.Errorf("got %q", d.Text())
	}
	if d.Len() != 9 {
		t.Errorf("expected 9 characters, got %d", d.Len())
	}
}
