package events

import "github.com/dshills/richtype/internal/event/topic"

// TopicStateChanged is published after the state store handled an action.
const TopicStateChanged topic.Topic = "state.changed"

// StateChanged is published after an action was dispatched.
type StateChanged struct {
	// Action is the type of the dispatched action.
	Action string
}
