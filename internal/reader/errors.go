package reader

import (
	"errors"
	"fmt"
)

// Errors returned by the reader.
var (
	// ErrNilRoot indicates Document was called without a root element.
	ErrNilRoot = errors.New("root element is nil")

	// ErrNilIDSource indicates a reader without an ID source.
	ErrNilIDSource = errors.New("id source is nil")
)

// ParseError reports markup that could not be parsed.
type ParseError struct {
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse markup: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
