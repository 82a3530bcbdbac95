package key

import (
	"fmt"
	"strings"
)

// Key identifies a keyboard key.
// For character keys, use KeyRune and set the Rune field of Event.
type Key uint8

const (
	// KeyNone represents no key.
	KeyNone Key = iota

	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	// KeyRune is used for character keys, space included. The character
	// is stored in Event.Rune.
	KeyRune
)

// keyNames are the names of keys as hosts report them.
var keyNames = map[Key]string{
	KeyNone:      "None",
	KeyEscape:    "Escape",
	KeyEnter:     "Enter",
	KeyTab:       "Tab",
	KeyBackspace: "Backspace",
	KeyDelete:    "Delete",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyPageUp:    "PageUp",
	KeyPageDown:  "PageDown",
	KeyUp:        "ArrowUp",
	KeyDown:      "ArrowDown",
	KeyLeft:      "ArrowLeft",
	KeyRight:     "ArrowRight",
	KeyRune:      "Rune",
}

// nameKeys maps lower-case names and their common aliases to keys.
var nameKeys = map[string]Key{
	"escape": KeyEscape, "esc": KeyEscape,
	"enter": KeyEnter, "return": KeyEnter, "cr": KeyEnter,
	"tab":       KeyTab,
	"backspace": KeyBackspace, "bs": KeyBackspace,
	"delete": KeyDelete, "del": KeyDelete,
	"home":   KeyHome,
	"end":    KeyEnd,
	"pageup": KeyPageUp, "pgup": KeyPageUp,
	"pagedown": KeyPageDown, "pgdn": KeyPageDown,
	"arrowup": KeyUp, "up": KeyUp,
	"arrowdown": KeyDown, "down": KeyDown,
	"arrowleft": KeyLeft, "left": KeyLeft,
	"arrowright": KeyRight, "right": KeyRight,
}

// String returns the host name of the key (e.g., "Enter", "ArrowUp").
func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Key(%d)", k)
}

// IsSpecial returns true if this is a special (non-character) key.
func (k Key) IsSpecial() bool {
	return k != KeyNone && k != KeyRune
}

// IsArrowKey returns true if this is an arrow key.
func (k Key) IsArrowKey() bool {
	return k >= KeyUp && k <= KeyRight
}

// KeyFromName returns the key with the given name or alias
// (case-insensitive), or KeyNone.
func KeyFromName(name string) Key {
	return nameKeys[strings.ToLower(name)]
}
