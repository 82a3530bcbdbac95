package selection

import "fmt"

// Bookmark is a range stored as character offsets from a root element.
// It stays meaningful after the DOM below the root has been rebuilt.
// Start is inclusive, End is exclusive: [Start, End).
// Bookmark is an immutable value type.
type Bookmark struct {
	Start int
	End   int
}

// NewBookmark creates a bookmark, ordering the offsets.
func NewBookmark(start, end int) Bookmark {
	if start > end {
		start, end = end, start
	}
	return Bookmark{Start: start, End: end}
}

// Len returns the number of characters covered.
func (b Bookmark) Len() int {
	return b.End - b.Start
}

// IsCollapsed returns true if the bookmark marks a caret position.
func (b Bookmark) IsCollapsed() bool {
	return b.Start == b.End
}

// Contains returns true if the offset is within [Start, End).
func (b Bookmark) Contains(offset int) bool {
	return offset >= b.Start && offset < b.End
}

// Merge returns the smallest bookmark covering both.
func (b Bookmark) Merge(other Bookmark) Bookmark {
	return Bookmark{Start: min(b.Start, other.Start), End: max(b.End, other.End)}
}

// Shift returns the bookmark moved by delta characters.
func (b Bookmark) Shift(delta int) Bookmark {
	return Bookmark{Start: b.Start + delta, End: b.End + delta}
}

// String returns a human-readable representation of the bookmark.
func (b Bookmark) String() string {
	return fmt.Sprintf("[%d:%d)", b.Start, b.End)
}
