// Package input turns host key events into editor operations.
//
// Host key events are normalized into key.Event values (see FromTcell for
// terminals) and run through a Pipeline: an ordered chain of filters. A
// filter may cancel the event, which stops the chain and prevents the
// host's default action for the key.
//
// The default filters are:
//
//   - CommandFilter: maps Cmd+B/I/S/U to the strong, em, s and u formats
//   - SelectionFilter: compares the selection after each event and
//     publishes selection start, change and end events
//   - DebugFilter: logs every event at debug level
//
// Scripted filters live in internal/plugin/lua.
//
// Basic usage:
//
//	p := input.NewPipeline(input.WithBus(bus))
//	p.Add(input.NewCommandFilter(editor.Format), input.WithName("command"))
//	ev, err := p.Process(ctx, input.FromTcell(tev, key.CurrentPlatform()))
//	if ev.DefaultPrevented() {
//		// skip the host's default handling
//	}
package input
