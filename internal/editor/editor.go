package editor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/net/html"

	"github.com/dshills/richtype/internal/config"
	"github.com/dshills/richtype/internal/dom"
	"github.com/dshills/richtype/internal/engine/document"
	"github.com/dshills/richtype/internal/engine/selection"
	"github.com/dshills/richtype/internal/event"
	"github.com/dshills/richtype/internal/event/events"
	"github.com/dshills/richtype/internal/format"
	"github.com/dshills/richtype/internal/input"
	"github.com/dshills/richtype/internal/input/key"
	"github.com/dshills/richtype/internal/reader"
	"github.com/dshills/richtype/internal/renderer"
	"github.com/dshills/richtype/internal/state"
)

// Filter names registered by New.
const (
	FilterDebug     = "debug"
	FilterCommand   = "command"
	FilterSelection = "selection"
)

// Editor makes one element editable.
//
// Methods are safe for concurrent use. Sync bus handlers run while the
// editor is locked and must not call back into it; subscribe lazily (see
// OnSelectionChange) to do that.
type Editor struct {
	mu sync.Mutex

	root   *html.Node
	cfg    *config.Config
	ownCfg bool
	bus    event.Bus
	ownBus bool
	logger *slog.Logger

	ids       *document.IDSource
	renderer  *renderer.Renderer
	formatter *format.Formatter
	sel       *selection.Selection
	store     *state.Store[State]

	pipeline  *input.Pipeline
	commands  *input.CommandFilter
	selFilter *input.SelectionFilter

	subs   []event.Subscription
	closed bool
}

// New creates an editor on root. The content of root is read into a
// document and rendered back, so after New every child of root belongs
// to the editor.
func New(root *html.Node, opts ...Option) (*Editor, error) {
	if root == nil {
		return nil, ErrMissingRoot
	}
	s := settings{logger: slog.Default()}
	for _, opt := range opts {
		opt(&s)
	}

	e := &Editor{
		root:   root,
		logger: s.logger.With("component", "editor"),
		ids:    document.NewIDSource(),
	}

	e.bus = s.bus
	if e.bus == nil {
		e.bus = event.NewBus(event.WithLogger(s.logger))
		if err := e.bus.Start(); err != nil {
			return nil, &InitError{Component: "bus", Err: err}
		}
		e.ownBus = true
	}

	e.cfg = s.config
	if e.cfg == nil {
		e.cfg = config.New(config.WithBus(e.bus), config.WithLogger(s.logger))
		e.ownCfg = true
	}
	if len(s.options) > 0 {
		if err := e.cfg.SetOptions(context.Background(), s.options); err != nil {
			e.abort()
			return nil, &InitError{Component: "config", Err: err}
		}
	}

	dom.SetAttr(root, "contenteditable", "true")
	if e.cfg.Bool(config.OptionSanitize) {
		if err := reader.SanitizeNode(root); err != nil {
			e.abort()
			return nil, &InitError{Component: "sanitize", Err: err}
		}
	}

	blocks, err := e.newReader().Document(root)
	if err != nil {
		e.abort()
		return nil, &InitError{Component: "reader", Err: err}
	}
	doc := document.New(e.ids, blocks...)

	ropts := renderer.DefaultOptions()
	ropts.Minify = e.cfg.Bool(config.OptionMinify)
	ropts.Logger = s.logger
	e.renderer, err = renderer.New(root, ropts)
	if err != nil {
		e.abort()
		return nil, &InitError{Component: "renderer", Err: err}
	}
	if _, err := e.renderer.Render(doc); err != nil {
		e.abort()
		return nil, &InitError{Component: "renderer", Err: err}
	}

	e.sel = selection.New(root)
	e.formatter = e.newFormatter()
	e.store = state.New(State{Document: doc}, reduce, state.WithBus(e.bus), state.WithLogger(s.logger))

	if err := e.initInput(); err != nil {
		e.abort()
		return nil, &InitError{Component: "input", Err: err}
	}

	sub, err := e.bus.SubscribeFunc(events.TopicConfigChanged, e.onConfigChanged)
	if err != nil {
		e.abort()
		return nil, &InitError{Component: "config", Err: err}
	}
	e.subs = append(e.subs, sub)

	e.logger.Debug("editor created", "blocks", len(blocks))
	return e, nil
}

func (e *Editor) initInput() error {
	e.pipeline = input.NewPipeline(input.WithBus(e.bus), input.WithLogger(e.logger))
	e.commands = input.NewCommandFilter(e.Format)
	e.selFilter = input.NewSelectionFilter(selector{e}, e.bus)

	if _, err := e.pipeline.Add(input.DebugFilter{Logger: e.logger},
		input.WithName(FilterDebug), input.WithPriority(input.PriorityHighest)); err != nil {
		return err
	}
	if _, err := e.pipeline.Add(e.commands, input.WithName(FilterCommand)); err != nil {
		return err
	}
	_, err := e.pipeline.Add(e.selFilter,
		input.WithName(FilterSelection), input.WithPriority(input.PriorityLow))
	return err
}

// abort releases what New created before it failed.
func (e *Editor) abort() {
	if e.ownCfg && e.cfg != nil {
		_ = e.cfg.Close()
	}
	if e.ownBus {
		_ = e.bus.Stop(context.Background())
	}
}

func (e *Editor) newReader() *reader.Reader {
	opts := []reader.Option{reader.WithLogger(e.logger)}
	if typ, err := document.ParseBlockType(e.cfg.String(config.OptionDefaultBlockTag)); err == nil {
		opts = append(opts, reader.WithDefaultBlock(typ))
	}
	return reader.New(e.ids, opts...)
}

func (e *Editor) newFormatter() *format.Formatter {
	return format.New(
		format.WithBus(e.bus),
		format.WithLogger(e.logger),
		format.WithDefaultBlock(e.cfg.String(config.OptionDefaultBlockTag)),
	)
}

func (e *Editor) onConfigChanged(_ context.Context, ev any) error {
	c, ok := event.Payload[events.ConfigChanged](ev)
	if !ok {
		return nil
	}
	switch c.Name {
	case config.OptionDefaultBlockTag:
		e.mu.Lock()
		e.formatter = e.newFormatter()
		e.mu.Unlock()
	case config.OptionMinify:
		e.mu.Lock()
		e.renderer.SetMinify(e.cfg.Bool(config.OptionMinify))
		e.mu.Unlock()
	}
	return nil
}

// Root returns the editable element.
func (e *Editor) Root() *html.Node {
	return e.root
}

// Bus returns the event bus of the editor.
func (e *Editor) Bus() event.Bus {
	return e.bus
}

// Config returns the editor options.
func (e *Editor) Config() *config.Config {
	return e.cfg
}

// Pipeline returns the input pipeline keys are processed by.
func (e *Editor) Pipeline() *input.Pipeline {
	return e.pipeline
}

// Commands returns the filter mapping command keys to format tags.
func (e *Editor) Commands() *input.CommandFilter {
	return e.commands
}

// Document returns the current document.
func (e *Editor) Document() *document.Document {
	return e.store.State().Document
}

// State returns the current editor state.
func (e *Editor) State() State {
	return e.store.State()
}

// Subscribe registers fn to be called after every state change.
func (e *Editor) Subscribe(fn state.Listener[State]) (unsubscribe func()) {
	return e.store.Subscribe(fn)
}

// GetOption returns the value of an option.
func (e *Editor) GetOption(name string) (any, bool) {
	return e.cfg.GetOption(name)
}

// SetOption sets one option.
func (e *Editor) SetOption(ctx context.Context, name string, value any) error {
	return e.cfg.SetOption(ctx, name, value)
}

// SetOptions sets several options at once. Nothing changes when any of
// them is invalid.
func (e *Editor) SetOptions(ctx context.Context, values map[string]any) error {
	return e.cfg.SetOptions(ctx, values)
}

// SetRange selects r, which must lie inside the root.
func (e *Editor) SetRange(ctx context.Context, r *selection.Range) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	if err := e.sel.Set(r); err != nil {
		return err
	}
	b, _ := e.sel.Bookmark()
	return e.store.Dispatch(ctx, state.Action{Type: ActionSetSelection, Payload: b})
}

// Select selects the characters [start, end) counted from the start of
// the root.
func (e *Editor) Select(start, end int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	prev, marked := e.sel.Bookmark()
	e.sel.SetBookmark(selection.NewBookmark(start, end))
	if _, err := e.sel.Range(); err != nil {
		if marked {
			e.sel.SetBookmark(prev)
		} else {
			e.sel.Clear()
		}
		return fmt.Errorf("select [%d:%d): %w", start, end, err)
	}
	b, _ := e.sel.Bookmark()
	return e.store.Dispatch(context.Background(), state.Action{Type: ActionSetSelection, Payload: b})
}

// Range returns the current selection range.
func (e *Editor) Range() (*selection.Range, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sel.Range()
}

// Format applies a formatting command to the selection. Inline tags
// (strong, em, u, s and their aliases) toggle on the selected text; block
// tags (p, h1..h6, blockquote) retag the selected blocks. The selection
// is kept across the re-render.
func (e *Editor) Format(ctx context.Context, tag string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}

	rng, err := e.sel.Range()
	if err != nil {
		return fmt.Errorf("format %s: %w", tag, err)
	}
	b, err := e.sel.Save()
	if err != nil {
		return fmt.Errorf("format %s: %w", tag, err)
	}

	doc := e.store.State().Document
	// A caret has no characters to toggle and an empty document has no
	// blocks to retag.
	if _, kind := format.Lookup(tag); (kind == format.KindInline && rng.IsCollapsed()) || len(doc.Nodes()) == 0 {
		return nil
	}
	dr, err := e.renderer.Range(rng)
	if err != nil {
		return fmt.Errorf("format %s: %w", tag, err)
	}

	next, err := e.formatter.Format(ctx, doc, tag, dr)
	if err != nil {
		return fmt.Errorf("format %s: %w", tag, err)
	}
	if next == doc {
		return nil
	}
	return e.commit(ctx, next, b)
}

// FormatDOM applies a formatting command directly to the markup below
// the root and reads the result back into a new document. It handles
// content the document model cannot express, at the cost of new node
// IDs for every block.
func (e *Editor) FormatDOM(ctx context.Context, tag string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}

	rng, err := e.sel.Range()
	if err != nil {
		return fmt.Errorf("format %s: %w", tag, err)
	}
	b, err := e.sel.Save()
	if err != nil {
		return fmt.Errorf("format %s: %w", tag, err)
	}
	d, err := format.NewDOM(e.root, format.WithBus(e.bus), format.WithLogger(e.logger))
	if err != nil {
		return err
	}
	changed, err := d.Format(ctx, tag, rng)
	if err != nil {
		return fmt.Errorf("format %s: %w", tag, err)
	}
	if len(changed) == 0 {
		return nil
	}

	blocks, err := e.newReader().Document(e.root)
	if err != nil {
		return fmt.Errorf("format %s: reread: %w", tag, err)
	}
	return e.commit(ctx, document.New(e.ids, blocks...), b)
}

// commit stores doc, renders it and restores the selection from b.
func (e *Editor) commit(ctx context.Context, doc *document.Document, b selection.Bookmark) error {
	if err := e.store.Dispatch(ctx, state.Action{Type: ActionSetDocument, Payload: doc}); err != nil {
		return err
	}
	if err := e.render(ctx, doc); err != nil {
		return err
	}
	e.sel.SetBookmark(b)
	if _, err := e.sel.Restore(); err != nil {
		e.logger.Warn("selection lost after render", "bookmark", b.String(), "err", err)
		e.sel.Clear()
		return nil
	}
	return e.store.Dispatch(ctx, state.Action{Type: ActionSetSelection, Payload: b})
}

func (e *Editor) render(ctx context.Context, doc *document.Document) error {
	stats, err := e.renderer.Render(doc)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	payload := events.RenderDone{Added: stats.Added, Kept: stats.Kept, Removed: stats.Removed}
	if err := e.bus.Publish(ctx, event.NewEvent(events.TopicRenderDone, payload, "editor")); err != nil {
		e.logger.Warn("render listeners failed", "err", err)
	}
	return nil
}

// HandleKey runs a key event through the input pipeline. Command keys
// bound to a format tag apply it.
func (e *Editor) HandleKey(ctx context.Context, k key.Event) (*input.Event, error) {
	if e.isClosed() {
		return nil, ErrClosed
	}
	if k.Platform == "" {
		k.Platform = e.cfg.Platform()
	}
	return e.pipeline.Process(ctx, k)
}

// CheckSelection publishes selection events when the selection changed
// since the last check. Hosts call it after pointer input.
func (e *Editor) CheckSelection(ctx context.Context) error {
	if e.isClosed() {
		return ErrClosed
	}
	return e.selFilter.Check(ctx)
}

// OnSelectionChange calls fn with the selection after every selection
// start, change and end. fn runs outside the editor lock.
func (e *Editor) OnSelectionChange(fn func(topic string, b selection.Bookmark)) (event.Subscription, error) {
	return e.bus.SubscribeFunc("selection.*", func(_ context.Context, ev any) error {
		s, ok := event.Payload[events.Selection](ev)
		if !ok {
			return nil
		}
		var t string
		if tp, ok := ev.(event.TopicProvider); ok {
			t = string(tp.EventTopic())
		}
		fn(t, s.Bookmark)
		return nil
	}, event.WithLazy())
}

// HTML returns the content of the root without editor attributes.
func (e *Editor) HTML() (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.renderer.HTML()
}

// Flush waits until lazy event handlers queued so far have run.
func (e *Editor) Flush(ctx context.Context) error {
	return e.bus.Flush(ctx)
}

// Close detaches the editor. The bus and the options are stopped when the
// editor created them.
func (e *Editor) Close(ctx context.Context) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	subs := e.subs
	e.subs = nil
	e.mu.Unlock()

	var errs []error
	for _, sub := range subs {
		if err := e.bus.Unsubscribe(sub); err != nil {
			errs = append(errs, err)
		}
	}
	dom.RemoveAttr(e.root, "contenteditable")
	if e.ownCfg {
		errs = append(errs, e.cfg.Close())
	}
	if e.ownBus {
		errs = append(errs, e.bus.Stop(ctx))
	}
	return errors.Join(errs...)
}

func (e *Editor) isClosed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closed
}

// selector gives the selection filter locked access to the selection.
type selector struct{ e *Editor }

func (s selector) Save() (selection.Bookmark, error) {
	s.e.mu.Lock()
	defer s.e.mu.Unlock()
	return s.e.sel.Save()
}
