package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/dshills/richtype/internal/event/topic"
)

// Event represents an event published on an editor bus.
// Events are immutable once created.
type Event[T any] struct {
	// Type is the hierarchical event type (e.g., "selection.change").
	Type topic.Topic

	// Payload contains the event-specific data.
	Payload T

	// Metadata contains standard event information.
	Metadata Metadata
}

// Metadata contains standard information attached to every event.
type Metadata struct {
	// ID is a unique identifier for this event instance.
	ID string

	// Timestamp is when the event was created.
	Timestamp time.Time

	// Source identifies the component that published the event.
	Source string
}

// NewEvent creates a new event with the given type and payload.
func NewEvent[T any](eventType topic.Topic, payload T, source string) Event[T] {
	return Event[T]{
		Type:     eventType,
		Payload:  payload,
		Metadata: newMetadata(source),
	}
}

func newMetadata(source string) Metadata {
	return Metadata{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		Source:    source,
	}
}

// EventTopic returns the event's topic for type-erased handling.
func (e Event[T]) EventTopic() topic.Topic {
	return e.Type
}

// TopicProvider is implemented by types that can provide their topic.
type TopicProvider interface {
	EventTopic() topic.Topic
}

// Envelope wraps any payload for type-erased publishing.
type Envelope struct {
	Topic    topic.Topic
	Payload  any
	Metadata Metadata
}

// EventTopic implements TopicProvider.
func (e Envelope) EventTopic() topic.Topic {
	return e.Topic
}

// Payload extracts the payload of a typed event delivered to a handler.
// It reports false when event carries a different payload type.
func Payload[T any](event any) (T, bool) {
	switch e := event.(type) {
	case Event[T]:
		return e.Payload, true
	case Envelope:
		p, ok := e.Payload.(T)
		return p, ok
	}
	var zero T
	return zero, false
}
