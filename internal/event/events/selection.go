package events

import (
	"github.com/dshills/richtype/internal/engine/selection"
	"github.com/dshills/richtype/internal/event/topic"
)

// Selection event topics.
const (
	// TopicSelectionStart is published when a pointer selection starts.
	TopicSelectionStart topic.Topic = "selection.start"

	// TopicSelectionChange is published when the selection changes.
	TopicSelectionChange topic.Topic = "selection.change"

	// TopicSelectionEnd is published when a pointer selection ends.
	TopicSelectionEnd topic.Topic = "selection.end"
)

// Selection carries the selection as character offsets from the editor
// root.
type Selection struct {
	Bookmark selection.Bookmark
}
