package main

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/richtype/internal/editor"
	"github.com/dshills/richtype/internal/engine/document"
	"github.com/dshills/richtype/internal/input"
)

// labelWidth is the width of the block type column.
const labelWidth = 12

// lineBreakGlyph stands in for a <br> on the one-line block display.
const lineBreakGlyph = "↵"

// view draws the document of an editor, one top-level block per line,
// and tracks a caret and a selection anchor in document characters.
type view struct {
	ed     *editor.Editor
	anchor int
	caret  int
	status string
}

func runTUI(ctx context.Context, ed *editor.Editor) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()

	v := &view{ed: ed, status: "Ctrl+Q quits. Shift+arrows select."}
	v.draw(screen)

	events := make(chan tcell.Event)
	quit := make(chan struct{})
	go screen.ChannelEvents(events, quit)
	defer close(quit)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyCtrlQ {
					return nil
				}
				v.handleKey(ctx, ev)
			}
			v.draw(screen)
		}
	}
}

// handleKey moves the caret for navigation keys and sends everything
// else through the editor input pipeline.
func (v *view) handleKey(ctx context.Context, ev *tcell.EventKey) {
	n := v.ed.Document().Len()
	extend := ev.Modifiers()&tcell.ModShift != 0

	moved := true
	switch ev.Key() {
	case tcell.KeyLeft:
		v.caret = max(v.caret-1, 0)
	case tcell.KeyRight:
		v.caret = min(v.caret+1, n)
	case tcell.KeyHome:
		v.caret = 0
	case tcell.KeyEnd:
		v.caret = n
	default:
		moved = false
	}

	if moved {
		if !extend {
			v.anchor = v.caret
		}
		v.status = ""
		if err := v.ed.Select(v.anchor, v.caret); err != nil {
			v.status = err.Error()
			return
		}
		if err := v.ed.CheckSelection(ctx); err != nil {
			v.status = err.Error()
		}
		return
	}

	res, err := v.ed.HandleKey(ctx, input.FromTcell(ev, v.ed.Config().Platform()))
	switch {
	case err != nil:
		v.status = err.Error()
	case res.Command != "":
		v.status = "applied " + res.Command
	default:
		v.status = ""
	}
}

func (v *view) draw(s tcell.Screen) {
	s.Clear()
	label := tcell.StyleDefault.Dim(true)

	lo, hi := min(v.anchor, v.caret), max(v.anchor, v.caret)
	offset := 0
	caretX, caretY := labelWidth, 0
	for y, b := range v.ed.Document().Nodes() {
		drawString(s, 0, y, b.Type().String(), label)
		x := labelWidth
		for _, t := range b.TextNodes() {
			style := textStyle(t.Attributes())
			text := t.Text()
			if t.IsLineBreak() {
				text = lineBreakGlyph
			}
			for _, r := range text {
				if offset == v.caret {
					caretX, caretY = x, y
				}
				st := style
				if offset >= lo && offset < hi {
					st = st.Reverse(true)
				}
				s.SetContent(x, y, r, nil, st)
				x++
				offset++
			}
		}
		if offset == v.caret {
			caretX, caretY = x, y
		}
	}

	_, h := s.Size()
	drawString(s, 0, h-1, v.status, label)
	s.ShowCursor(caretX, caretY)
	s.Show()
}

// textStyle converts text attributes to a terminal style.
func textStyle(attrs document.AttributeSet) tcell.Style {
	style := tcell.StyleDefault
	if attrs.Has(document.AttrBold) {
		style = style.Bold(true)
	}
	if attrs.Has(document.AttrItalic) {
		style = style.Italic(true)
	}
	if attrs.Has(document.AttrUnderline) {
		style = style.Underline(true)
	}
	if attrs.Has(document.AttrDel) {
		style = style.StrikeThrough(true)
	}
	return style
}

func drawString(s tcell.Screen, x, y int, str string, style tcell.Style) {
	for _, r := range str {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}
