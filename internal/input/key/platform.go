package key

import (
	"runtime"
	"strings"
)

// Platform is the operating system family whose keyboard conventions
// apply.
type Platform string

// Known platforms.
const (
	PlatformMac     Platform = "mac"
	PlatformWindows Platform = "windows"
	PlatformLinux   Platform = "linux"
)

// CurrentPlatform returns the platform the program runs on.
func CurrentPlatform() Platform {
	switch runtime.GOOS {
	case "darwin", "ios":
		return PlatformMac
	case "windows":
		return PlatformWindows
	default:
		return PlatformLinux
	}
}

// ParsePlatform converts a name such as "mac", "darwin" or "win" into a
// Platform. Unknown names are reported with ok false.
func ParsePlatform(name string) (p Platform, ok bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "mac", "macos", "darwin", "osx":
		return PlatformMac, true
	case "windows", "win":
		return PlatformWindows, true
	case "linux", "unix":
		return PlatformLinux, true
	}
	return "", false
}

// CommandModifier returns the modifier used for editing shortcuts: Meta
// on macOS, Ctrl everywhere else.
func (p Platform) CommandModifier() Modifier {
	if p == PlatformMac {
		return ModMeta
	}
	return ModCtrl
}
