package input

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/richtype/internal/input/key"
)

// FromTcell converts a terminal key event into a key.Event for platform
// p. Control letters (tcell.KeyCtrlA..KeyCtrlZ) become the lower-case
// letter with Ctrl held. Terminals report Ctrl+H, Ctrl+I and Ctrl+M as
// Backspace, Tab and Enter unless the Ctrl modifier is set explicitly.
func FromTcell(ev *tcell.EventKey, p key.Platform) key.Event {
	mods := convertMod(ev.Modifiers())
	when := ev.When()
	if when.IsZero() {
		when = time.Now()
	}
	out := key.Event{Modifiers: mods, Platform: p, Timestamp: when}

	k := ev.Key()
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ && (mods.Has(key.ModCtrl) || !isTypeable(k)) {
		out.Key = key.KeyRune
		out.Rune = rune('a' + (k - tcell.KeyCtrlA))
		out.Modifiers = mods.With(key.ModCtrl)
		return out
	}

	switch k {
	case tcell.KeyRune:
		out.Key = key.KeyRune
		out.Rune = ev.Rune()
	case tcell.KeyEscape:
		out.Key = key.KeyEscape
	case tcell.KeyEnter:
		out.Key = key.KeyEnter
	case tcell.KeyTab:
		out.Key = key.KeyTab
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		out.Key = key.KeyBackspace
	case tcell.KeyDelete:
		out.Key = key.KeyDelete
	case tcell.KeyHome:
		out.Key = key.KeyHome
	case tcell.KeyEnd:
		out.Key = key.KeyEnd
	case tcell.KeyPgUp:
		out.Key = key.KeyPageUp
	case tcell.KeyPgDn:
		out.Key = key.KeyPageDown
	case tcell.KeyUp:
		out.Key = key.KeyUp
	case tcell.KeyDown:
		out.Key = key.KeyDown
	case tcell.KeyLeft:
		out.Key = key.KeyLeft
	case tcell.KeyRight:
		out.Key = key.KeyRight
	default:
		out.Key = key.KeyNone
	}
	return out
}

// isTypeable reports whether a control code has a key of its own.
func isTypeable(k tcell.Key) bool {
	switch k {
	case tcell.KeyBackspace, tcell.KeyTab, tcell.KeyEnter:
		return true
	}
	return false
}

func convertMod(m tcell.ModMask) key.Modifier {
	var mods key.Modifier
	if m&tcell.ModShift != 0 {
		mods = mods.With(key.ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		mods = mods.With(key.ModCtrl)
	}
	if m&tcell.ModAlt != 0 {
		mods = mods.With(key.ModAlt)
	}
	if m&tcell.ModMeta != 0 {
		mods = mods.With(key.ModMeta)
	}
	return mods
}
