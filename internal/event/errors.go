package event

import (
	"errors"
	"fmt"

	"github.com/dshills/richtype/internal/event/topic"
)

// Bus errors.
var (
	ErrBusNotRunning     = errors.New("event: bus not running")
	ErrBusAlreadyRunning = errors.New("event: bus already running")

	// ErrInvalidEvent is returned for events without a valid topic.
	ErrInvalidEvent = errors.New("event: invalid event")

	// ErrInvalidTopic is returned for empty or malformed topic patterns.
	ErrInvalidTopic = errors.New("event: invalid topic")

	ErrInvalidSubscription  = errors.New("event: invalid subscription")
	ErrSubscriptionNotFound = errors.New("event: subscription not found")
	ErrNilHandler           = errors.New("event: nil handler")

	// ErrHandlerPanic is wrapped by the HandlerError of a handler that
	// panicked.
	ErrHandlerPanic = errors.New("event: handler panicked")
)

// HandlerError reports a sync handler that failed or panicked while an
// event was published.
type HandlerError struct {
	SubscriptionID string
	Topic          topic.Topic
	Err            error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("event: %s handler %s: %v", e.Topic, e.SubscriptionID, e.Err)
}

func (e *HandlerError) Unwrap() error {
	return e.Err
}

func panicError(id string, t topic.Topic, value any) *HandlerError {
	return &HandlerError{SubscriptionID: id, Topic: t, Err: fmt.Errorf("%w: %v", ErrHandlerPanic, value)}
}
