package lua

import (
	"context"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/richtype/internal/input"
	"github.com/dshills/richtype/internal/input/key"
)

// DefaultFilterFunc is the script function a Filter calls by default.
const DefaultFilterFunc = "on_key"

// Filter is an input filter implemented by a script function. The
// function receives the key event as a table with the fields key, name,
// ctrl, alt, shift, meta, command and platform, and cancels the event by
// returning true. A string return value is recorded as the event's
// command.
type Filter struct {
	state *State
	fn    string
}

// NewFilter creates a filter calling the global function fn.
func NewFilter(s *State, fn string) *Filter {
	if fn == "" {
		fn = DefaultFilterFunc
	}
	return &Filter{state: s, fn: fn}
}

// Process implements input.Filter. Events pass untouched when the script
// does not define the function.
func (f *Filter) Process(ctx context.Context, ev *input.Event) error {
	if !f.state.HasFunction(f.fn) {
		return nil
	}
	ret, err := f.state.Call(ctx, f.fn, f.eventTable(ev.Key))
	if err != nil {
		return err
	}
	if len(ret) == 0 {
		return nil
	}
	switch v := ret[0].(type) {
	case lua.LString:
		ev.Command = string(v)
		ev.Cancel()
	default:
		if lua.LVAsBool(v) {
			ev.Cancel()
		}
	}
	return nil
}

func (f *Filter) eventTable(k key.Event) *lua.LTable {
	return f.state.NewTable(map[string]lua.LValue{
		"key":      lua.LString(strings.ToLower(k.Name())),
		"name":     lua.LString(k.String()),
		"ctrl":     lua.LBool(k.Modifiers.Has(key.ModCtrl)),
		"alt":      lua.LBool(k.Modifiers.Has(key.ModAlt)),
		"shift":    lua.LBool(k.Modifiers.Has(key.ModShift)),
		"meta":     lua.LBool(k.Modifiers.Has(key.ModMeta)),
		"command":  lua.LBool(k.Command()),
		"platform": lua.LString(k.Platform),
	})
}
