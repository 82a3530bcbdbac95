// Package dom holds the DOM helpers the editor is built on: a walker with
// named filters, document-order comparison and the structural edits used
// by formatting (split, wrap, unwrap, retag and merging of adjacent
// similar elements).
//
// Nodes are golang.org/x/net/html nodes. A walk is always bounded by a
// constraining node when one is given and never returns nodes outside it.
//
// Offsets count characters as a browser displays them: a <br> is one
// character and text made only of whitespace is skipped entirely.
package dom
