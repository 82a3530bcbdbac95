package format

import "errors"

// Formatter errors.
var (
	// ErrNilDocument is returned when formatting without a document.
	ErrNilDocument = errors.New("format: nil document")

	// ErrNilRoot is returned by NewDOM without a root element.
	ErrNilRoot = errors.New("format: nil root")

	// ErrNilRange is returned when formatting without a range.
	ErrNilRange = errors.New("format: nil range")
)
