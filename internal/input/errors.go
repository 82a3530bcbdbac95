package input

import (
	"errors"
	"fmt"
)

// Sentinel errors for the input pipeline.
var (
	// ErrNilFilter is returned when adding a nil filter.
	ErrNilFilter = errors.New("input: nil filter")

	// ErrFilterNotFound is returned when removing an unknown filter.
	ErrFilterNotFound = errors.New("input: filter not found")

	// ErrDuplicateFilter is returned when a filter name is already taken.
	ErrDuplicateFilter = errors.New("input: duplicate filter name")
)

// FilterError is returned by Pipeline.Process when a filter fails.
type FilterError struct {
	// Name is the filter name, or its ID when it has none.
	Name string

	// Key is the event being processed.
	Key string

	Err error
}

func (e *FilterError) Error() string {
	return fmt.Sprintf("input: filter %s on %s: %v", e.Name, e.Key, e.Err)
}

func (e *FilterError) Unwrap() error {
	return e.Err
}
