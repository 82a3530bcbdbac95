package renderer

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/tdewolff/minify/v2"
	mhtml "github.com/tdewolff/minify/v2/html"
	"golang.org/x/net/html"

	"github.com/dshills/richtype/internal/dom"
	"github.com/dshills/richtype/internal/engine/document"
	"github.com/dshills/richtype/internal/engine/selection"
)

// Stats counts what a render did to the top-level blocks.
type Stats struct {
	Added   int
	Kept    int
	Removed int
}

// rendered is the DOM built for one top-level block.
type rendered struct {
	el    *html.Node
	texts map[*html.Node]document.ID
	nodes map[document.ID]*html.Node
}

// Renderer keeps a live DOM element in sync with a document.
//
// Blocks are cached by node ID. Because every mutation gives the nodes on
// the changed path new IDs, a block whose ID was rendered before is still
// up to date and its element is reused as is.
//
// Renderer is not safe for concurrent use.
type Renderer struct {
	root     *html.Node
	opts     Options
	logger   *slog.Logger
	minifier *minify.M

	doc    *document.Document
	blocks map[document.ID]*rendered
	nodes  map[document.ID]*html.Node
}

// New creates a renderer that patches root.
func New(root *html.Node, opts Options) (*Renderer, error) {
	if root == nil {
		return nil, ErrNilRoot
	}
	if opts.Tags == nil {
		opts.Tags = DefaultOptions().Tags
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	m := minify.New()
	m.Add("text/html", &mhtml.Minifier{KeepEndTags: true})

	return &Renderer{
		root:     root,
		opts:     opts,
		logger:   logger,
		minifier: m,
		blocks:   make(map[document.ID]*rendered),
		nodes:    make(map[document.ID]*html.Node),
	}, nil
}

// Root returns the element the renderer patches.
func (r *Renderer) Root() *html.Node {
	return r.root
}

// SetMinify turns minification of HTML output on or off.
func (r *Renderer) SetMinify(on bool) {
	r.opts.Minify = on
}

// Document returns the last rendered document.
func (r *Renderer) Document() *document.Document {
	return r.doc
}

// Render patches the root so it shows doc. Elements of blocks whose IDs
// were rendered before are kept, new blocks are appended in document
// order and everything else below the root is removed.
func (r *Renderer) Render(doc *document.Document) (Stats, error) {
	if doc == nil {
		return Stats{}, ErrNilDocument
	}

	var stats Stats
	blocks := doc.Nodes()
	next := make(map[document.ID]*rendered, len(blocks))
	want := make([]*html.Node, 0, len(blocks))
	keep := make(map[*html.Node]bool, len(blocks))

	for _, b := range blocks {
		rb, ok := r.blocks[b.ID()]
		if ok {
			stats.Kept++
		} else {
			rb = r.renderBlock(b)
			stats.Added++
		}
		next[b.ID()] = rb
		want = append(want, rb.el)
		keep[rb.el] = true
	}

	for _, c := range dom.Children(r.root) {
		if !keep[c] {
			dom.Detach(c)
			stats.Removed++
		}
	}

	cur := r.root.FirstChild
	for _, el := range want {
		if el == cur {
			cur = cur.NextSibling
			continue
		}
		dom.Detach(el)
		r.root.InsertBefore(el, cur)
	}

	r.doc = doc
	r.blocks = next
	r.nodes = make(map[document.ID]*html.Node, len(r.nodes))
	for _, rb := range next {
		for id, n := range rb.nodes {
			r.nodes[id] = n
		}
	}

	r.logger.Debug("rendered document",
		"added", stats.Added, "kept", stats.Kept, "removed", stats.Removed)
	return stats, nil
}

func (r *Renderer) renderBlock(b *document.BlockNode) *rendered {
	rb := &rendered{
		texts: make(map[*html.Node]document.ID),
		nodes: make(map[document.ID]*html.Node),
	}
	rb.el = r.buildBlock(b, rb)
	return rb
}

func (r *Renderer) buildBlock(b *document.BlockNode, rb *rendered) *html.Node {
	el := dom.NewElement(b.Type().String())
	dom.SetAttr(el, IDAttribute, b.ID().String())
	rb.nodes[b.ID()] = el

	var run []*document.TextNode
	flush := func() {
		if len(run) > 0 {
			r.buildInline(inlineTree(run), el, rb)
			run = nil
		}
	}
	for _, c := range b.Children() {
		switch c := c.(type) {
		case *document.TextNode:
			run = append(run, c)
		case *document.BlockNode:
			flush()
			el.AppendChild(r.buildBlock(c, rb))
		}
	}
	flush()
	return el
}

func (r *Renderer) buildInline(n *inlineNode, parent *html.Node, rb *rendered) {
	for _, c := range n.children {
		if c.text != nil && c.text.IsLineBreak() {
			br := dom.NewElement("br")
			dom.SetAttr(br, IDAttribute, c.text.ID().String())
			parent.AppendChild(br)
			rb.nodes[c.text.ID()] = br
			continue
		}
		if c.text != nil {
			tn := dom.NewText(c.text.Text())
			parent.AppendChild(tn)
			rb.texts[tn] = c.text.ID()
			rb.nodes[c.text.ID()] = tn
			continue
		}
		outer, inner := r.wrappers(c.attrs)
		parent.AppendChild(outer)
		r.buildInline(c, inner, rb)
	}
}

// wrappers builds one nested element per attribute and returns the
// outermost and innermost of them.
func (r *Renderer) wrappers(attrs document.AttributeSet) (outer, inner *html.Node) {
	for _, a := range attrs.Get() {
		var el *html.Node
		if tag, ok := r.opts.Tags[a.Name]; ok {
			el = dom.NewElement(tag)
		} else {
			r.logger.Debug("no tag for attribute", "attribute", a.Name)
			el = dom.NewElement("span")
			v := a.Value.Str()
			if a.Value.IsBool() {
				v = strconv.FormatBool(a.Value.Bool())
			}
			dom.SetAttr(el, "data-"+a.Name, v)
		}
		if outer == nil {
			outer = el
		} else {
			inner.AppendChild(el)
		}
		inner = el
	}
	return outer, inner
}

// Node returns the DOM node rendered for a document node ID.
func (r *Renderer) Node(id document.ID) (*html.Node, bool) {
	n, ok := r.nodes[id]
	return n, ok
}

// DocumentID returns the ID of the document node n was rendered from.
func (r *Renderer) DocumentID(n *html.Node) (document.ID, bool) {
	if n == nil {
		return 0, false
	}
	if n.Type == html.ElementNode {
		v, ok := dom.GetAttr(n, IDAttribute)
		if !ok {
			return 0, false
		}
		return document.ParseID(v)
	}
	top := n
	for top.Parent != nil && top.Parent != r.root {
		top = top.Parent
	}
	if top.Parent != r.root || top.Type != html.ElementNode {
		return 0, false
	}
	blockID, ok := r.DocumentID(top)
	if !ok {
		return 0, false
	}
	rb, ok := r.blocks[blockID]
	if !ok {
		return 0, false
	}
	id, ok := rb.texts[n]
	return id, ok
}

// Range resolves a DOM range inside the root into a document range.
// Text containers map through the rendered node table; element
// containers resolve to the nearest text node or line break on the
// inner side of the boundary.
func (r *Renderer) Range(rng *selection.Range) (document.Range, error) {
	if r.doc == nil {
		return document.Range{}, ErrNotRendered
	}
	if rng == nil || !rng.IsValid(r.root) {
		return document.Range{}, fmt.Errorf("resolve range: %w", selection.ErrNotInRoot)
	}
	st, so, err := r.endpoint(rng.Start(), false)
	if err != nil {
		return document.Range{}, fmt.Errorf("resolve start: %w", err)
	}
	if rng.IsCollapsed() {
		return document.NewRange(st, so, st, so), nil
	}
	et, eo, err := r.endpoint(rng.End(), true)
	if err != nil {
		return document.Range{}, fmt.Errorf("resolve end: %w", err)
	}
	return document.NewRange(st, so, et, eo), nil
}

func (r *Renderer) endpoint(p selection.Point, isEnd bool) (*document.TextNode, int, error) {
	if p.Node.Type == html.TextNode {
		t, err := r.textNode(p.Node)
		return t, p.Offset, err
	}
	if dom.IsBR(p.Node) {
		t, err := r.textNode(p.Node)
		return t, 0, err
	}

	after, before := r.textAfter(p.Node, p.Offset), r.textBefore(p.Node, p.Offset)
	if (isEnd && before != nil) || after == nil {
		if before == nil {
			return nil, 0, ErrUnknownNode
		}
		t, err := r.textNode(before)
		if err != nil {
			return nil, 0, err
		}
		return t, t.Len(), nil
	}
	t, err := r.textNode(after)
	return t, 0, err
}

func (r *Renderer) textNode(n *html.Node) (*document.TextNode, error) {
	id, ok := r.DocumentID(n)
	if !ok {
		return nil, ErrUnknownNode
	}
	node, ok := r.doc.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", document.ErrNodeNotFound, id)
	}
	t, ok := node.(*document.TextNode)
	if !ok {
		return nil, ErrUnknownNode
	}
	return t, nil
}

// isLeaf accepts the DOM nodes rendered from text nodes.
func isLeaf(n *html.Node) bool {
	return n.Type == html.TextNode || dom.IsBR(n)
}

// textAfter returns the first leaf at or after the boundary (n, offset).
func (r *Renderer) textAfter(n *html.Node, offset int) *html.Node {
	if c := dom.ChildAt(n, offset); c != nil {
		if t := dom.First(c, isLeaf); t != nil {
			return t
		}
		return dom.Next(c, isLeaf, r.root)
	}
	return dom.Next(dom.Last(n, nil), isLeaf, r.root)
}

// textBefore returns the last leaf before the boundary (n, offset).
func (r *Renderer) textBefore(n *html.Node, offset int) *html.Node {
	if offset > 0 {
		c := dom.ChildAt(n, offset-1)
		if c == nil {
			c = n.LastChild
		}
		if c != nil {
			if t := dom.Last(c, isLeaf); t != nil {
				return t
			}
			return dom.Prev(c, isLeaf, r.root)
		}
	}
	return dom.Prev(n, isLeaf, r.root)
}

// DOMRange converts a document range into a DOM range over the rendered
// text nodes. A line break is addressed by its parent and child index.
func (r *Renderer) DOMRange(dr document.Range) (*selection.Range, error) {
	if dr.StartNode == nil || dr.EndNode == nil {
		return nil, ErrUnknownNode
	}
	sn, ok := r.nodes[dr.StartNode.ID()]
	if !ok {
		return nil, fmt.Errorf("start %s: %w", dr.StartNode.ID(), ErrUnknownNode)
	}
	en, ok := r.nodes[dr.EndNode.ID()]
	if !ok {
		return nil, fmt.Errorf("end %s: %w", dr.EndNode.ID(), ErrUnknownNode)
	}
	so, eo := dr.StartOffset, dr.EndOffset
	if dom.IsBR(sn) {
		sn, so = sn.Parent, dom.Index(sn)+so
	}
	if dom.IsBR(en) {
		en, eo = en.Parent, dom.Index(en)+eo
	}
	return selection.NewRange(sn, so, en, eo), nil
}

// HTML serializes the content of the root without the node ID
// attributes. The output is minified when Options.Minify is set.
func (r *Renderer) HTML() (string, error) {
	clone := dom.Clone(r.root)
	for n := clone.FirstChild; n != nil; n = dom.Next(n, nil, clone) {
		if n.Type == html.ElementNode {
			dom.RemoveAttr(n, IDAttribute)
		}
	}
	s, err := dom.InnerHTML(clone)
	if err != nil {
		return "", fmt.Errorf("serialize: %w", err)
	}
	if !r.opts.Minify {
		return s, nil
	}
	out, err := r.minifier.String("text/html", s)
	if err != nil {
		return "", fmt.Errorf("minify: %w", err)
	}
	return strings.TrimSpace(out), nil
}
