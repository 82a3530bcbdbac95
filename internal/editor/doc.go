// Package editor binds the document model to an editable element.
//
// An Editor owns everything one editing surface needs: the options, the
// event bus, the document and its node IDs, the renderer that keeps the
// element in sync, the selection, the formatter, the state store and the
// input pipeline. Editors share nothing; two editors on one page are
// fully independent.
//
// The formatting flow is:
//
//	selection -> renderer.Range -> format.Formatter -> renderer.Render -> selection.Restore
//
// so a format call replaces only the blocks it changed and the selection
// survives the re-render.
package editor
