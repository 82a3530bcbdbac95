package events

import "github.com/dshills/richtype/internal/event/topic"

// TopicInputKey is published for key events no input filter canceled.
const TopicInputKey topic.Topic = "input.key"

// InputKey describes a key event that passed the input pipeline.
type InputKey struct {
	// Key is the normalized key name (e.g., "b", "Enter").
	Key string

	// Command is true when the platform command modifier was held.
	Command bool
}
