package format

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/dshills/richtype/internal/dom"
	"github.com/dshills/richtype/internal/engine/document"
	"github.com/dshills/richtype/internal/engine/selection"
	"github.com/dshills/richtype/internal/event"
	"github.com/dshills/richtype/internal/event/events"
)

// domBlockTags are the elements the DOM block formatter retags.
var domBlockTags = map[string]bool{
	"p": true, "div": true, "blockquote": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// DOM formats markup in place, without a document model behind it.
type DOM struct {
	root *html.Node
	opts options
}

// NewDOM creates a formatter for the content of root.
func NewDOM(root *html.Node, opts ...Option) (*DOM, error) {
	if root == nil {
		return nil, ErrNilRoot
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &DOM{root: root, opts: o}, nil
}

// Format applies tag to r and returns the elements created or retagged.
// Unknown tags are logged and change nothing.
func (d *DOM) Format(ctx context.Context, tag string, r *selection.Range) ([]*html.Node, error) {
	if r == nil {
		return nil, ErrNilRange
	}
	if !r.IsValid(d.root) {
		return nil, fmt.Errorf("format %s: %w", tag, selection.ErrNotInRoot)
	}

	tag, kind := Lookup(tag)
	var (
		created []*html.Node
		removed bool
		err     error
		k       events.FormatKind
	)
	switch kind {
	case KindInline:
		k = events.FormatInline
		created, removed, err = d.Inline(tag, r)
	case KindBlock:
		k = events.FormatBlock
		created, removed = d.Block(tag, r)
	default:
		d.opts.logger.Warn("format tag not implemented", "tag", tag)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if d.opts.bus != nil {
		payload := events.Format{Tag: tag, Kind: k, Removed: removed, Elements: len(created)}
		if err := d.opts.bus.Publish(ctx, event.NewEvent(events.TopicFormat, payload, "format")); err != nil {
			d.opts.logger.Warn("format listeners failed", "tag", tag, "err", err)
		}
	}
	return created, nil
}

// Inline toggles an inline tag over r. When an element with the tag
// encloses the whole range it is unwrapped and the parts of it outside
// the range are wrapped again; removed is true in that case. Otherwise the
// text of the range is wrapped, merging with adjacent elements of the same
// tag.
func (d *DOM) Inline(tag string, r *selection.Range) (created []*html.Node, removed bool, err error) {
	if r.IsCollapsed() {
		return nil, false, nil
	}
	if canonical, ok := aliases[strings.ToLower(tag)]; ok {
		tag = canonical
	}
	if enclosing := d.enclosing(tag, r); enclosing != nil {
		created, err = d.removeInline(tag, enclosing, r)
		return created, true, err
	}

	r.Split()
	first, last := d.firstText(r.Start()), d.lastText(r.End())
	if first == nil || last == nil || dom.Compare(first, last) > 0 {
		return nil, false, nil
	}
	return d.wrapInline(tag, first, last), false, nil
}

// enclosing returns the innermost element spelled as tag or one of its
// aliases that holds the whole of r.
func (d *DOM) enclosing(tag string, r *selection.Range) *html.Node {
	found := r.ElementEnclosingStartAndEnd(tag, d.root)
	for _, alias := range spellingsOf(tag) {
		el := r.ElementEnclosingStartAndEnd(alias, d.root)
		if el != nil && (found == nil || dom.Contains(found, el)) {
			found = el
		}
	}
	return found
}

func (d *DOM) removeInline(tag string, enclosing *html.Node, r *selection.Range) ([]*html.Node, error) {
	outer, err := selection.FromElement(enclosing).Save(d.root)
	if err != nil {
		return nil, err
	}
	sel, err := r.Save(d.root)
	if err != nil {
		return nil, err
	}

	dom.Unwrap(enclosing)

	var created []*html.Node
	for _, b := range []selection.Bookmark{
		selection.NewBookmark(outer.Start, sel.Start),
		selection.NewBookmark(sel.End, outer.End),
	} {
		if b.IsCollapsed() {
			continue
		}
		part, err := selection.Load(d.root, b)
		if err != nil {
			return nil, err
		}
		els, _, err := d.Inline(tag, part)
		if err != nil {
			return nil, err
		}
		created = append(created, els...)
	}
	return created, nil
}

// wrapInline wraps every text node from first to last in tag. Each text
// node is lifted to its highest inline ancestor whose text lies entirely
// in the range, and consecutive siblings share one wrapper.
func (d *DOM) wrapInline(tag string, first, last *html.Node) []*html.Node {
	in := make(map[*html.Node]bool)
	for t := first; t != nil; t = dom.Next(t, dom.TextNode, d.root) {
		in[t] = true
		if t == last {
			break
		}
	}
	covered := func(n *html.Node) bool {
		return in[dom.First(n, dom.TextNode)] && in[dom.Last(n, dom.TextNode)]
	}

	var tops []*html.Node
	seen := make(map[*html.Node]bool)
	for t := first; t != nil; t = dom.Next(t, dom.TextNode, d.root) {
		top := t
		for p := top.Parent; p != nil && p != d.root && !isBlock(p) && covered(p); p = p.Parent {
			top = p
		}
		if !seen[top] {
			seen[top] = true
			tops = append(tops, top)
		}
		if t == last {
			break
		}
	}

	var runs [][]*html.Node
	for _, n := range tops {
		if k := len(runs); k > 0 {
			run := runs[k-1]
			if run[len(run)-1].NextSibling == n {
				runs[k-1] = append(run, n)
				continue
			}
		}
		runs = append(runs, []*html.Node{n})
	}

	created := make([]*html.Node, 0, len(runs))
	for _, run := range runs {
		if el := dom.Wrap(tag, run...); el != nil {
			for _, alias := range spellingsOf(tag) {
				dom.RemoveTag(el, alias, true)
			}
			created = append(created, el)
		}
	}
	if n := len(created); n > 0 {
		created[0] = dom.ConnectLeft(created[0])
		created[n-1] = dom.ConnectRight(created[n-1])
	}
	return created
}

// firstText returns the first text node at or after p.
func (d *DOM) firstText(p selection.Point) *html.Node {
	n := p.Node
	if n.Type == html.TextNode {
		if p.Offset < dom.Length(n) {
			return n
		}
		return dom.Next(n, dom.TextNode, d.root)
	}
	if c := dom.ChildAt(n, p.Offset); c != nil {
		return dom.First(c, dom.TextNode)
	}
	if n.LastChild == nil {
		return dom.Next(n, dom.TextNode, d.root)
	}
	return dom.Next(dom.Last(n, nil), dom.TextNode, d.root)
}

// lastText returns the last text node at or before p.
func (d *DOM) lastText(p selection.Point) *html.Node {
	n := p.Node
	if n.Type == html.TextNode {
		if p.Offset > 0 {
			return n
		}
		return dom.Prev(n, dom.TextNode, d.root)
	}
	if p.Offset > 0 {
		if c := dom.ChildAt(n, p.Offset-1); c != nil {
			if t := dom.Last(c, dom.TextNode); t != nil {
				return t
			}
			return dom.Prev(c, dom.TextNode, d.root)
		}
	}
	return dom.Prev(n, dom.TextNode, d.root)
}

// Block retags the blocks touched by r. When all of them already have the
// tag they revert to the default block tag, or are unwrapped when it is
// empty; removed is true in that case.
func (d *DOM) Block(tag string, r *selection.Range) (changed []*html.Node, removed bool) {
	blocks := d.blocks(r)
	if len(blocks) == 0 {
		return nil, false
	}

	every := true
	for _, b := range blocks {
		if !dom.IsElement(b, tag) {
			every = false
			break
		}
	}

	for _, b := range blocks {
		switch {
		case !every && dom.IsElement(b, tag):
		case !every:
			changed = append(changed, dom.ChangeTag(b, tag))
		case d.opts.defaultBlock != "":
			changed = append(changed, dom.ChangeTag(b, d.opts.defaultBlock))
		default:
			dom.Unwrap(b)
		}
	}
	return changed, every
}

// blocks returns the distinct block elements holding the text of r, in
// document order.
func (d *DOM) blocks(r *selection.Range) []*html.Node {
	var first, last *html.Node
	switch {
	case r.IsCollapsed() && r.StartContainer().Type == html.TextNode:
		first = r.StartContainer()
		last = first
	case r.IsCollapsed():
		first = d.firstText(r.Start())
		last = first
	default:
		first, last = d.firstText(r.Start()), d.lastText(r.End())
	}
	if first == nil || last == nil || dom.Compare(first, last) > 0 {
		return nil
	}

	var out []*html.Node
	seen := make(map[*html.Node]bool)
	for t := first; t != nil; t = dom.Next(t, dom.TextNode, d.root) {
		if b := d.blockOf(t); b != nil && !seen[b] {
			seen[b] = true
			out = append(out, b)
		}
		if t == last {
			break
		}
	}
	return out
}

func (d *DOM) blockOf(n *html.Node) *html.Node {
	for ; n != nil && n != d.root; n = n.Parent {
		if n.Type == html.ElementNode && domBlockTags[strings.ToLower(n.Data)] {
			return n
		}
	}
	return nil
}

func isBlock(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	_, err := document.ParseBlockType(n.Data)
	return err == nil
}
