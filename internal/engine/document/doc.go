// Package document provides the rich-text document model: attribute sets,
// block and text nodes with stable IDs, a lazily built node index and the
// copy-on-write mutation engine that applies formatting over a range.
//
// The tree has two node kinds:
//
//   - BlockNode: a paragraph, heading, list, list item or quote holding
//     text runs or nested blocks
//   - TextNode: a run of text carrying an AttributeSet such as bold
//
// Every node gets its ID from the editor's IDSource when it is created.
// Nodes are never changed after construction. Mutations return a new
// Document in which the nodes on the path to a change are copies with
// fresh IDs and everything else is shared with the previous snapshot, so a
// renderer can patch only what changed by comparing IDs.
//
// Basic usage:
//
//	ids := document.NewIDSource()
//	p, _ := document.NewBlockNode(ids, document.BlockParagraph,
//	    document.NewTextNode(ids, "Hello world"))
//	doc := document.New(ids, p)
//
//	r, _ := doc.TextRange(0, 5)
//	bold, _ := doc.AddAttributeAtRange(document.Named(document.AttrBold), r)
//	// bold: p("Hello"[bold=true] " world"[])
//
// Offsets are counted in characters (runes). TextNodeAt treats the end of
// a block as exclusive.
package document
