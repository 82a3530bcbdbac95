package input

import (
	"context"
	"fmt"
	"maps"

	"github.com/dshills/richtype/internal/input/key"
)

// FormatFunc applies the format named by tag to the current selection.
type FormatFunc func(ctx context.Context, tag string) error

// DefaultCommands maps command-modified letters to format tags.
var DefaultCommands = map[rune]string{
	'b': "strong",
	'i': "em",
	's': "s",
	'u': "u",
}

// CommandFilter runs formatting commands for command-modified keys, e.g.
// Cmd+B on macOS or Ctrl+B elsewhere toggles strong. Handled events are
// canceled.
type CommandFilter struct {
	format   FormatFunc
	commands map[rune]string
}

// NewCommandFilter creates a filter with the DefaultCommands.
func NewCommandFilter(format FormatFunc) *CommandFilter {
	return &CommandFilter{
		format:   format,
		commands: maps.Clone(DefaultCommands),
	}
}

// Bind maps a command-modified letter to a format tag. An empty tag
// removes the binding.
func (f *CommandFilter) Bind(r rune, tag string) {
	if tag == "" {
		delete(f.commands, r)
		return
	}
	f.commands[r] = tag
}

// BindSpec binds a key specification such as "Cmd+K" for platform p.
func (f *CommandFilter) BindSpec(spec string, p key.Platform, tag string) error {
	ev, err := key.Parse(spec, p)
	if err != nil {
		return err
	}
	if !ev.IsRune() || !ev.Command() {
		return fmt.Errorf("%w: %q needs the command modifier and a letter", key.ErrInvalidSpec, spec)
	}
	f.Bind(ev.Rune, tag)
	return nil
}

// Command returns the tag bound to r.
func (f *CommandFilter) Command(r rune) (string, bool) {
	tag, ok := f.commands[r]
	return tag, ok
}

// Process implements Filter.
func (f *CommandFilter) Process(ctx context.Context, ev *Event) error {
	if !ev.Key.IsRune() || !ev.Key.Command() {
		return nil
	}
	tag, ok := f.commands[[]rune(ev.Key.Name())[0]]
	if !ok {
		return nil
	}
	ev.Command = tag
	ev.Cancel()
	if f.format == nil {
		return nil
	}
	return f.format(ctx, tag)
}
