package renderer

import "errors"

// Errors returned by the renderer.
var (
	// ErrNilRoot indicates a renderer created without a root element.
	ErrNilRoot = errors.New("root element is nil")

	// ErrNilDocument indicates Render was called without a document.
	ErrNilDocument = errors.New("document is nil")

	// ErrNotRendered indicates a lookup before the first render.
	ErrNotRendered = errors.New("nothing rendered yet")

	// ErrUnknownNode indicates a DOM node that was not produced by the
	// renderer.
	ErrUnknownNode = errors.New("node was not rendered from the document")
)
