package editor

import (
	"github.com/dshills/richtype/internal/engine/document"
	"github.com/dshills/richtype/internal/engine/selection"
	"github.com/dshills/richtype/internal/state"
)

// Action types dispatched by the editor.
const (
	ActionSetDocument  = "document.set"
	ActionSetSelection = "selection.set"
)

// State is the editor state kept in the store.
type State struct {
	// Document is the current document.
	Document *document.Document

	// Selection is the last saved selection.
	Selection selection.Bookmark

	// Revision counts document changes.
	Revision int
}

func reduce(s State, a state.Action) State {
	switch a.Type {
	case ActionSetDocument:
		if d, ok := a.Payload.(*document.Document); ok && d != s.Document {
			s.Document = d
			s.Revision++
		}
	case ActionSetSelection:
		if b, ok := a.Payload.(selection.Bookmark); ok {
			s.Selection = b
		}
	}
	return s
}
