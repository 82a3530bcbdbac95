package events

import (
	"github.com/dshills/richtype/internal/engine/document"
	"github.com/dshills/richtype/internal/event/topic"
)

// TopicFormat is published after a formatting command changed content.
const TopicFormat topic.Topic = "format"

// FormatKind tells inline formatting from block formatting.
type FormatKind string

// Format kinds.
const (
	FormatInline FormatKind = "inline"
	FormatBlock  FormatKind = "block"
)

// Format is published when a formatting command is applied.
type Format struct {
	// Tag is the command tag (e.g., "strong", "h1").
	Tag string

	// Kind is inline or block.
	Kind FormatKind

	// Removed is true when the command toggled the format off.
	Removed bool

	// Nodes are the IDs of the document nodes created by the change.
	// It is empty for changes made directly on the DOM.
	Nodes []document.ID

	// Elements is the number of DOM elements created or retagged by a
	// DOM formatting change.
	Elements int
}
