package key

import (
	"strings"
	"time"
	"unicode"
)

// Event represents a single key press event.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier

	// Platform decides which modifier is the command modifier.
	Platform Platform

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// NewEvent creates a key event with the current timestamp.
func NewEvent(key Key, r rune, mods Modifier, p Platform) Event {
	return Event{
		Key:       key,
		Rune:      r,
		Modifiers: mods,
		Platform:  p,
		Timestamp: time.Now(),
	}
}

// NewRuneEvent creates a key event for a character.
func NewRuneEvent(r rune, mods Modifier, p Platform) Event {
	return NewEvent(KeyRune, r, mods, p)
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsChar returns true if this is a printable character.
func (e Event) IsChar() bool {
	return e.IsRune() && unicode.IsPrint(e.Rune)
}

// Command reports whether the platform command modifier is held: Meta on
// macOS, Ctrl elsewhere.
func (e Event) Command() bool {
	return e.Modifiers.Has(e.Platform.CommandModifier())
}

// Name returns the normalized key name: the lower-case character for
// rune keys, the host name (e.g., "Enter") otherwise.
func (e Event) Name() string {
	if e.Key == KeyRune {
		return strings.ToLower(string(e.Rune))
	}
	return e.Key.String()
}

// String returns a canonical string representation.
// Examples: "a", "Ctrl+b", "Meta+Shift+z", "Enter", "Space".
func (e Event) String() string {
	name := e.Name()
	if e.Key == KeyRune && e.Rune == ' ' {
		name = "Space"
	}
	mods := e.Modifiers
	if e.IsRune() && !unicode.IsLower(e.Rune) && mods.Has(ModShift) && mods.Without(ModShift) == ModNone {
		// Shift alone is part of the character.
		return string(e.Rune)
	}
	if m := mods.String(); m != "" {
		return m + "+" + name
	}
	return name
}
