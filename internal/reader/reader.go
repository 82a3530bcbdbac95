package reader

import (
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/net/html"

	"github.com/dshills/richtype/internal/dom"
	"github.com/dshills/richtype/internal/engine/document"
)

// defaultTags maps inline tags to the attribute they stand for.
var defaultTags = map[string]document.Attribute{
	"strong": document.Named(document.AttrBold),
	"b":      document.Named(document.AttrBold),
	"em":     document.Named(document.AttrItalic),
	"i":      document.Named(document.AttrItalic),
	"u":      document.Named(document.AttrUnderline),
	"del":    document.Named(document.AttrDel),
	"s":      document.Named(document.AttrDel),
}

// skipped elements are dropped with their content.
var skipped = map[string]bool{
	"script":   true,
	"style":    true,
	"template": true,
	"head":     true,
	"img":      true,
	"hr":       true,
}

// Reader converts a DOM subtree into document nodes.
type Reader struct {
	ids          *document.IDSource
	defaultBlock document.BlockType
	tags         map[string]document.Attribute
	sanitize     bool
	logger       *slog.Logger
}

// New creates a reader that assigns IDs from ids.
func New(ids *document.IDSource, opts ...Option) *Reader {
	r := &Reader{
		ids:          ids,
		defaultBlock: document.DefaultBlockType(),
		tags:         make(map[string]document.Attribute, len(defaultTags)),
		logger:       slog.Default(),
	}
	for tag, attr := range defaultTags {
		r.tags[tag] = attr
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Document reads the children of root into top-level blocks.
//
// Block elements (p, h1..h6, ul, ol, li, blockquote, div) become block
// nodes. Inline formatting tags add their attribute to the text below
// them. A <br> becomes a line break leaf. Other inline elements are
// transparent. Whitespace-only text is
// discarded. Inline content found between top-level blocks is wrapped in
// a block of the default type.
func (r *Reader) Document(root *html.Node) ([]*document.BlockNode, error) {
	if root == nil {
		return nil, ErrNilRoot
	}
	if r.ids == nil {
		return nil, ErrNilIDSource
	}

	var (
		blocks []*document.BlockNode
		loose  []document.Node
	)
	flush := func() error {
		if len(loose) == 0 {
			return nil
		}
		b, err := document.NewBlockNode(r.ids, r.defaultBlock, loose...)
		if err != nil {
			return err
		}
		blocks = append(blocks, b)
		loose = nil
		return nil
	}

	for c := root.FirstChild; c != nil; c = c.NextSibling {
		nodes, err := r.read(c, document.AttributeSet{})
		if err != nil {
			return nil, err
		}
		for _, n := range nodes {
			switch n := n.(type) {
			case *document.BlockNode:
				if err := flush(); err != nil {
					return nil, err
				}
				blocks = append(blocks, n)
			case *document.TextNode:
				loose = append(loose, n)
			}
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return blocks, nil
}

// ReadString parses markup and reads it into top-level blocks. Markup is
// sanitized first when the reader was created WithSanitize(true).
func (r *Reader) ReadString(markup string) ([]*document.BlockNode, error) {
	if r.sanitize {
		markup = Sanitize(markup)
	}
	root, err := dom.Parse(markup)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	return r.Document(root)
}

func (r *Reader) read(n *html.Node, attrs document.AttributeSet) ([]document.Node, error) {
	switch n.Type {
	case html.TextNode:
		if !dom.Text(n) {
			return nil, nil
		}
		return []document.Node{document.NewTextNode(r.ids, n.Data, attrs.Get()...)}, nil

	case html.ElementNode:
		if dom.IsBR(n) {
			return []document.Node{document.NewLineBreak(r.ids, attrs.Get()...)}, nil
		}
		tag := strings.ToLower(n.Data)
		if skipped[tag] {
			r.logger.Debug("skipping element", "tag", tag)
			return nil, nil
		}
		if typ, err := document.ParseBlockType(tag); err == nil {
			children, err := r.children(n, attrs)
			if err != nil {
				return nil, err
			}
			b, err := document.NewBlockNode(r.ids, typ, children...)
			if err != nil {
				return nil, fmt.Errorf("read <%s>: %w", tag, err)
			}
			return []document.Node{b}, nil
		}
		if a, ok := r.tags[tag]; ok {
			attrs = attrs.Copy()
			attrs.Add(a)
		}
		return r.children(n, attrs)
	}
	return nil, nil
}

func (r *Reader) children(n *html.Node, attrs document.AttributeSet) ([]document.Node, error) {
	var out []document.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		nodes, err := r.read(c, attrs)
		if err != nil {
			return nil, err
		}
		out = append(out, nodes...)
	}
	return out, nil
}

// Document reads root with a default reader.
func Document(root *html.Node, ids *document.IDSource) ([]*document.BlockNode, error) {
	return New(ids).Document(root)
}
