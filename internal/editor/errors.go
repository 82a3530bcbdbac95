package editor

import (
	"errors"
	"fmt"
)

// Editor errors.
var (
	// ErrMissingRoot is returned when creating an editor without a root
	// element.
	ErrMissingRoot = errors.New("editor: missing root element")

	// ErrClosed is returned when using a closed editor.
	ErrClosed = errors.New("editor: closed")
)

// InitError reports the component that failed while creating an editor.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("editor: init %s: %v", e.Component, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}
