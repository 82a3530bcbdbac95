package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a key specification for platform p.
//
// Supported formats:
//   - Single character: "a", "B", "1", "@"
//   - Key names: "Enter", "Escape", "Tab", "Backspace", "Space", "ArrowUp"
//   - With modifiers: "Ctrl+S", "Alt+Shift+P", "Cmd+B"
//
// "Cmd" and "Mod" stand for the command modifier of p, so "Cmd+B" is
// Meta+b on macOS and Ctrl+b elsewhere.
func Parse(spec string, p Platform) (Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, ErrEmptySpec
	}

	parts := []string{spec}
	if len(spec) > 1 && strings.Contains(spec, "+") {
		parts = strings.Split(spec, "+")
		// "Ctrl++" names the plus key.
		if strings.HasSuffix(spec, "++") {
			parts = append(parts[:len(parts)-2], "+")
		}
	}

	var mods Modifier
	for _, name := range parts[:len(parts)-1] {
		mod := ModifierFromName(name, p)
		if mod == ModNone {
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, name)
		}
		mods = mods.With(mod)
	}

	keyPart := strings.TrimSpace(parts[len(parts)-1])
	if keyPart == "" {
		return Event{}, fmt.Errorf("%w: missing key in %q", ErrInvalidSpec, spec)
	}
	if strings.EqualFold(keyPart, "space") {
		return NewRuneEvent(' ', mods, p), nil
	}
	if k := KeyFromName(keyPart); k != KeyNone {
		return NewEvent(k, 0, mods, p), nil
	}

	runes := []rune(keyPart)
	if len(runes) != 1 {
		return Event{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, keyPart)
	}
	r := runes[0]
	switch {
	case len(parts) == 1 && unicode.IsUpper(r):
		// Uppercase letters have implicit Shift.
		mods = mods.With(ModShift)
	case mods != ModNone:
		r = unicode.ToLower(r)
	}
	return NewRuneEvent(r, mods, p), nil
}

// MustParse parses a key specification and panics on error.
// Use only for known-valid specs in initialization code.
func MustParse(spec string, p Platform) Event {
	e, err := Parse(spec, p)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return e
}
