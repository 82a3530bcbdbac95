package selection

import (
	"fmt"

	"golang.org/x/net/html"

	"github.com/dshills/richtype/internal/dom"
)

// Range is a DOM range between two boundary points. The start never
// follows the end; NewRange swaps reversed endpoints.
//
// SplitStartContainer and SplitEndContainer modify the DOM and update the
// range in place. All other methods leave the range unchanged.
type Range struct {
	start Point
	end   Point
}

// Rect is the character span a range occupies in a root element.
// x/net/html has no layout engine, so the span stands in for the
// rectangle a browser would report.
type Rect struct {
	Start int
	End   int
}

// Width returns the number of characters in the span.
func (r Rect) Width() int {
	return r.End - r.Start
}

// NewRange creates a range from (sc, so) to (ec, eo).
func NewRange(sc *html.Node, so int, ec *html.Node, eo int) *Range {
	start := Point{Node: sc, Offset: so}
	end := Point{Node: ec, Offset: eo}
	if sc != nil && ec != nil && comparePoints(start, end) > 0 {
		start, end = end, start
	}
	return &Range{start: start, end: end}
}

// Collapsed creates an empty range at (node, offset).
func Collapsed(node *html.Node, offset int) *Range {
	p := Point{Node: node, Offset: offset}
	return &Range{start: p, end: p}
}

// FromElement creates a range covering the textual content of el. An
// element without textual content yields a range over its children.
func FromElement(el *html.Node) *Range {
	first := dom.First(el, dom.Textual)
	last := dom.Last(el, dom.Textual)
	if first == nil || last == nil {
		return &Range{
			start: Point{Node: el, Offset: 0},
			end:   Point{Node: el, Offset: dom.ChildCount(el)},
		}
	}
	return &Range{
		start: pointIn(first, 0),
		end:   pointIn(last, dom.Length(last)),
	}
}

// Start returns the start boundary point.
func (r *Range) Start() Point { return r.start }

// End returns the end boundary point.
func (r *Range) End() Point { return r.end }

// StartContainer returns the node holding the start boundary.
func (r *Range) StartContainer() *html.Node { return r.start.Node }

// EndContainer returns the node holding the end boundary.
func (r *Range) EndContainer() *html.Node { return r.end.Node }

// IsCollapsed returns true if start and end are the same boundary point.
func (r *Range) IsCollapsed() bool {
	return r.start == r.end
}

// IsValid returns true if both containers are still attached below root
// and both offsets fit their containers.
func (r *Range) IsValid(root *html.Node) bool {
	for _, p := range [2]Point{r.start, r.end} {
		if p.Node == nil || !dom.Contains(root, p.Node) {
			return false
		}
		if p.Offset < 0 || p.Offset > maxOffset(p.Node) {
			return false
		}
	}
	return true
}

// SplitStartContainer splits the start text node so the start boundary
// falls on a node boundary. Afterwards the start is offset 0 of the new
// tail node. Element containers and edge offsets are left alone.
func (r *Range) SplitStartContainer() {
	n, off := r.start.Node, r.start.Offset
	if n == nil || n.Type != html.TextNode {
		return
	}
	tail := dom.SplitText(n, off)
	if tail == nil {
		return
	}
	if r.end.Node == n {
		r.end = Point{Node: tail, Offset: r.end.Offset - off}
	}
	r.start = Point{Node: tail, Offset: 0}
}

// SplitEndContainer splits the end text node so the end boundary falls on
// a node boundary. The end stays at the end of the head node.
func (r *Range) SplitEndContainer() {
	n := r.end.Node
	if n == nil || n.Type != html.TextNode {
		return
	}
	dom.SplitText(n, r.end.Offset)
}

// Split splits both containers, end first so the start offsets stay valid.
func (r *Range) Split() {
	r.SplitEndContainer()
	r.SplitStartContainer()
}

// StartOffset returns the character offset of the start from root.
func (r *Range) StartOffset(from *html.Node) (int, error) {
	return OffsetFrom(from, r.start.Node, r.start.Offset)
}

// EndOffset returns the character offset of the end from root.
func (r *Range) EndOffset(from *html.Node) (int, error) {
	return OffsetFrom(from, r.end.Node, r.end.Offset)
}

// Length returns the number of characters covered by the range.
func (r *Range) Length() int {
	if r.start.Node == nil || r.end.Node == nil {
		return 0
	}
	top := treeRoot(r.start.Node)
	s, err := r.StartOffset(top)
	if err != nil {
		return 0
	}
	e, err := r.EndOffset(top)
	if err != nil {
		return 0
	}
	return e - s
}

// Save records the range as character offsets from root.
func (r *Range) Save(from *html.Node) (Bookmark, error) {
	s, err := r.StartOffset(from)
	if err != nil {
		return Bookmark{}, fmt.Errorf("save start: %w", err)
	}
	e, err := r.EndOffset(from)
	if err != nil {
		return Bookmark{}, fmt.Errorf("save end: %w", err)
	}
	return NewBookmark(s, e), nil
}

// Load rebuilds a range from a bookmark taken on from. The start resolves
// into the node following a border, the end into the node preceding it.
func Load(from *html.Node, b Bookmark) (*Range, error) {
	if from == nil {
		return nil, ErrNilContainer
	}
	start, err := PointAt(from, b.Start, false)
	if err != nil {
		return nil, err
	}
	if b.IsCollapsed() {
		return &Range{start: start, end: start}, nil
	}
	end, err := PointAt(from, b.End, true)
	if err != nil {
		return nil, err
	}
	return &Range{start: start, end: end}, nil
}

// MergeWith returns a range from the earlier start to the later end.
func (r *Range) MergeWith(other *Range) *Range {
	m := &Range{start: r.start, end: r.end}
	if comparePoints(other.start, m.start) < 0 {
		m.start = other.start
	}
	if comparePoints(other.end, m.end) > 0 {
		m.end = other.end
	}
	return m
}

// ElementEnclosingStartAndEnd returns the nearest element with the given
// tag that contains both containers. The search stops before constrain.
func (r *Range) ElementEnclosingStartAndEnd(tag string, constrain *html.Node) *html.Node {
	for el := dom.Closest(r.start.Node, tag, constrain); el != nil; el = dom.Closest(el.Parent, tag, constrain) {
		if dom.Contains(el, r.end.Node) {
			return el
		}
	}
	return nil
}

// BoundingRect returns the character span of the range from root.
func (r *Range) BoundingRect(from *html.Node) (Rect, error) {
	b, err := r.Save(from)
	if err != nil {
		return Rect{}, err
	}
	return Rect{Start: b.Start, End: b.End}, nil
}

// String returns a human-readable representation of the range.
func (r *Range) String() string {
	return fmt.Sprintf("Range(%s:%d, %s:%d)",
		describe(r.start.Node), r.start.Offset, describe(r.end.Node), r.end.Offset)
}

func describe(n *html.Node) string {
	switch {
	case n == nil:
		return "<nil>"
	case n.Type == html.TextNode:
		return fmt.Sprintf("%q", n.Data)
	default:
		return "<" + n.Data + ">"
	}
}

func treeRoot(n *html.Node) *html.Node {
	for n.Parent != nil {
		n = n.Parent
	}
	return n
}
