package state

import (
	"errors"
	"fmt"
)

// Store errors.
var (
	// ErrMissingActionType indicates an action was dispatched without a type.
	ErrMissingActionType = errors.New("state: actions must have a type")
)

// ActionError describes an action the store refused.
type ActionError struct {
	// Type is the action type, possibly empty.
	Type string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ActionError) Error() string {
	return fmt.Sprintf("dispatch %q: %v", e.Type, e.Err)
}

// Unwrap returns the underlying error.
func (e *ActionError) Unwrap() error {
	return e.Err
}
