// Package selection implements range algebra over an HTML DOM.
//
// A Range is a pair of boundary points (node, offset). For text nodes the
// offset counts characters; for elements it is a child index. Ranges can
// be converted to character offsets measured from a root element and back:
//
//	b, err := r.Save(root)          // Bookmark{Start: 3, End: 8}
//	r, err = selection.Load(root, b)
//
// Only textual nodes count toward offsets: non-whitespace text counts its
// runes, a <br> counts one and whitespace-only text is skipped. A bookmark
// therefore survives rebuilding the markup below the root as long as the
// visible text is unchanged.
//
// When an offset lies on the border between two nodes, the start of a
// range resolves into the following node and the end into the preceding
// one, so a loaded range never spans an empty edge of a node.
//
// Selection keeps the current range and its bookmark. After a render has
// detached the nodes a range points to, Selection.Range rebuilds it from
// the bookmark.
package selection
