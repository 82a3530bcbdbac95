// Package events defines the topics and payloads published on an editor
// event bus.
//
// Each event type has a topic constant and a payload struct:
//
//   - Format events: a formatting command was applied
//   - Selection events: a pointer selection started, changed or ended
//   - State events: the editor state store changed
//   - Config events: an editor option changed or was reloaded
//   - Render events: the DOM was patched
//   - Input events: a key event reached the end of the input pipeline
//
// # Usage
//
//	evt := event.NewEvent(events.TopicFormat,
//	    events.Format{Tag: "strong", Kind: events.FormatInline},
//	    "format",
//	)
//	_ = bus.Publish(ctx, evt)
//
// Handlers read the payload back with event.Payload:
//
//	f, ok := event.Payload[events.Format](evt)
package events
