package lua

import (
	"context"

	lua "github.com/yuin/gopher-lua"
)

// ModuleName is the global table scripts use to reach the editor.
const ModuleName = "richtype"

// Host is the editor surface exposed to scripts.
type Host interface {
	// Format toggles the format named by tag on the selection.
	Format(ctx context.Context, tag string) error

	// Select sets the selection to the characters [start, end).
	Select(start, end int) error
}

// Install registers the richtype module backed by h.
func Install(s *State, h Host) {
	s.RegisterModule(ModuleName, map[string]lua.LGFunction{
		"format": func(L *lua.LState) int {
			tag := L.CheckString(1)
			if err := h.Format(s.Context(), tag); err != nil {
				L.RaiseError("format %s: %v", tag, err)
			}
			return 0
		},
		"select": func(L *lua.LState) int {
			start := L.CheckInt(1)
			end := L.OptInt(2, start)
			if err := h.Select(start, end); err != nil {
				L.RaiseError("select %d %d: %v", start, end, err)
			}
			return 0
		},
		"log": func(L *lua.LState) int {
			s.Logger().Info("lua", "msg", L.CheckString(1))
			return 0
		},
	})
}
