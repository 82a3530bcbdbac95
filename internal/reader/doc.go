// Package reader builds document nodes from HTML.
//
// The reader walks a DOM subtree and produces the block and text nodes of
// the document model. Each node gets a fresh ID from the editor's
// IDSource:
//
//	r := reader.New(ids, reader.WithSanitize(true))
//	blocks, err := r.ReadString("<p>Hello <b>world</b></p>")
//	doc := document.New(ids, blocks...)
//
// Sanitize and SanitizeNode strip markup the editor cannot represent
// using a bluemonday policy before it is read.
package reader
