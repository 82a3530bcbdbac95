// Package key provides normalized key events for the input pipeline.
//
// An Event carries the key, the character for rune keys, the held
// modifiers and the platform the event came from. The platform decides
// which modifier is the command modifier used by editing shortcuts:
//
//	e := key.MustParse("Cmd+B", key.PlatformMac) // Meta+b
//	e.Command()                                 // true
//
// Hosts build events from their native key events; see input.FromTcell
// for the terminal adapter.
package key
