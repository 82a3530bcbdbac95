package events

import "github.com/dshills/richtype/internal/event/topic"

// TopicRenderDone is published after the renderer patched the DOM.
const TopicRenderDone topic.Topic = "render.done"

// RenderDone counts what a render did to the top-level blocks.
type RenderDone struct {
	Added   int
	Kept    int
	Removed int
}
