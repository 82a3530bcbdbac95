package selection

import (
	"errors"
	"fmt"
)

// Errors returned by range and selection operations.
var (
	// ErrNilContainer indicates a range endpoint without a node.
	ErrNilContainer = errors.New("range container is nil")

	// ErrOffsetOutOfRange indicates a character offset beyond the text of
	// the root element.
	ErrOffsetOutOfRange = errors.New("offset out of range")

	// ErrNotInRoot indicates a range endpoint outside the root element.
	ErrNotInRoot = errors.New("range is not inside root")

	// ErrNoSelection indicates the selection holds neither a range nor a
	// bookmark.
	ErrNoSelection = errors.New("no selection")
)

// OffsetError reports an offset that could not be resolved from a root.
type OffsetError struct {
	Offset int
	Length int
}

// Error implements the error interface.
func (e *OffsetError) Error() string {
	return fmt.Sprintf("offset %d out of range [0, %d]", e.Offset, e.Length)
}

// Unwrap returns ErrOffsetOutOfRange.
func (e *OffsetError) Unwrap() error {
	return ErrOffsetOutOfRange
}
