// Package renderer keeps a live HTML element in sync with a document.
//
// Render patches the root element by node ID. Every top-level block is
// rendered once; as long as the document keeps a block (same ID) its
// element stays in the DOM untouched. New blocks are built, blocks that
// disappeared are removed:
//
//	r, _ := renderer.New(root, renderer.DefaultOptions())
//	stats, err := r.Render(doc)
//
// Block elements carry their document ID in the data-document-node-id
// attribute. Text nodes cannot carry attributes, so the renderer keeps a
// side table from rendered text nodes to document IDs. Range uses both to
// turn a DOM selection into a document range.
//
// Adjacent text runs are grouped before rendering: a run whose attributes
// include all attributes of the previous wrapper is nested inside it, so
// two bold runs become a single <strong> element while remaining two
// document nodes.
package renderer
