package document

import (
	"errors"
	"fmt"
)

// Errors returned by document operations.
var (
	// ErrInvalidBlockType indicates a block was constructed with an unknown type.
	ErrInvalidBlockType = errors.New("invalid block type")

	// ErrRangeOutOfBounds indicates a range endpoint does not resolve to a
	// block of the document.
	ErrRangeOutOfBounds = errors.New("range out of bounds")

	// ErrDegenerateSplit indicates a split at the first or last offset of a
	// text node, which would produce an empty node.
	ErrDegenerateSplit = errors.New("degenerate split offset")

	// ErrNodeNotFound indicates an ID is not present in the document.
	ErrNodeNotFound = errors.New("node not found")
)

// BlockTypeError reports the rejected block type.
type BlockTypeError struct {
	Type string
}

// Error implements the error interface.
func (e *BlockTypeError) Error() string {
	return fmt.Sprintf("invalid block type %q", e.Type)
}

// Unwrap returns ErrInvalidBlockType.
func (e *BlockTypeError) Unwrap() error {
	return ErrInvalidBlockType
}

// RangeError reports a range endpoint that could not be resolved.
type RangeError struct {
	// Endpoint is "start" or "end".
	Endpoint string

	// Node is the unresolved text node ID, zero for absolute offsets.
	Node ID

	// Offset is the offending offset.
	Offset int
}

// Error implements the error interface.
func (e *RangeError) Error() string {
	if e.Node == 0 {
		return fmt.Sprintf("range %s offset %d out of bounds", e.Endpoint, e.Offset)
	}
	return fmt.Sprintf("range %s node %s out of bounds", e.Endpoint, e.Node)
}

// Unwrap returns ErrRangeOutOfBounds.
func (e *RangeError) Unwrap() error {
	return ErrRangeOutOfBounds
}
