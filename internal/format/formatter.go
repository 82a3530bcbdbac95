package format

import (
	"context"
	"fmt"

	"github.com/dshills/richtype/internal/engine/document"
	"github.com/dshills/richtype/internal/event"
	"github.com/dshills/richtype/internal/event/events"
)

// Formatter applies formatting commands to documents.
//
// Inline tags toggle an attribute: when every character of the range
// already has it, it is removed, otherwise it is added. Block tags retag
// the touched blocks, or revert them to the default block type when all
// of them already have the tag.
type Formatter struct {
	opts options
}

// New creates a formatter.
func New(opts ...Option) *Formatter {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Formatter{opts: o}
}

// Format applies tag to r and returns the resulting document. The input
// document is not modified. Unknown tags are logged and leave the document
// unchanged, as do inline tags on a collapsed range.
func (f *Formatter) Format(ctx context.Context, doc *document.Document, tag string, r document.Range) (*document.Document, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}

	tag, kind := Lookup(tag)
	switch kind {
	case KindInline:
		return f.inline(ctx, doc, tag, r)
	case KindBlock:
		return f.block(ctx, doc, tag, r)
	default:
		f.opts.logger.Warn("format tag not implemented", "tag", tag)
		return doc, nil
	}
}

func (f *Formatter) inline(ctx context.Context, doc *document.Document, tag string, r document.Range) (*document.Document, error) {
	if r.IsCollapsed() {
		return doc, nil
	}
	attr, _ := Attribute(tag)

	has, err := doc.HasAttributeAtRange(attr, r)
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", tag, err)
	}
	nd, err := doc.CopyWithAttributesAtRange(attr, r, !has)
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", tag, err)
	}

	f.publish(ctx, events.Format{
		Tag:     tag,
		Kind:    events.FormatInline,
		Removed: has,
		Nodes:   nd.Created(),
	})
	return nd, nil
}

func (f *Formatter) block(ctx context.Context, doc *document.Document, tag string, r document.Range) (*document.Document, error) {
	typ, err := document.ParseBlockType(tag)
	if err != nil {
		return nil, err
	}
	blocks, err := doc.BlocksAtRange(r)
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", tag, err)
	}

	every := true
	for _, b := range blocks {
		if b.Type() != typ {
			every = false
			break
		}
	}
	target := typ
	if every {
		target = f.revertType()
	}

	nd, err := doc.SetBlockTypeAtRange(target, r)
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", tag, err)
	}

	f.publish(ctx, events.Format{
		Tag:     tag,
		Kind:    events.FormatBlock,
		Removed: every,
		Nodes:   nd.Created(),
	})
	return nd, nil
}

// revertType is the block type used when a block format is toggled off.
// Top-level document content always lives in a block, so an empty or
// invalid default reverts to a paragraph.
func (f *Formatter) revertType() document.BlockType {
	typ, err := document.ParseBlockType(f.opts.defaultBlock)
	if err != nil {
		return document.DefaultBlockType()
	}
	return typ
}

func (f *Formatter) publish(ctx context.Context, payload events.Format) {
	if f.opts.bus == nil {
		return
	}
	err := f.opts.bus.Publish(ctx, event.NewEvent(events.TopicFormat, payload, "format"))
	if err != nil {
		f.opts.logger.Warn("format listeners failed", "tag", payload.Tag, "err", err)
	}
}
