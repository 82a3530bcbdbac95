package selection

import (
	"fmt"

	"golang.org/x/net/html"
)

// Selection tracks a range inside a root element together with its
// bookmark. When a render replaces the nodes the range points to, the
// range is rebuilt from the bookmark.
//
// Selection is not safe for concurrent use.
type Selection struct {
	root     *html.Node
	rng      *Range
	bookmark Bookmark
	marked   bool
}

// New creates an empty selection on root.
func New(root *html.Node) *Selection {
	return &Selection{root: root}
}

// Root returns the element the selection is measured from.
func (s *Selection) Root() *html.Node {
	return s.root
}

// Set replaces the selection with r and records its bookmark.
func (s *Selection) Set(r *Range) error {
	if r == nil || r.StartContainer() == nil || r.EndContainer() == nil {
		return ErrNilContainer
	}
	if !r.IsValid(s.root) {
		return ErrNotInRoot
	}
	b, err := r.Save(s.root)
	if err != nil {
		return fmt.Errorf("set selection: %w", err)
	}
	s.rng = r
	s.bookmark = b
	s.marked = true
	return nil
}

// Range returns the current range. A stale range is reloaded from the
// bookmark.
func (s *Selection) Range() (*Range, error) {
	if s.rng != nil && s.rng.IsValid(s.root) {
		return s.rng, nil
	}
	return s.Restore()
}

// Save re-records the bookmark from the current range. It is called
// before the DOM below the root is rebuilt.
func (s *Selection) Save() (Bookmark, error) {
	if s.rng == nil || !s.rng.IsValid(s.root) {
		if s.marked {
			return s.bookmark, nil
		}
		return Bookmark{}, ErrNoSelection
	}
	b, err := s.rng.Save(s.root)
	if err != nil {
		return Bookmark{}, err
	}
	s.bookmark = b
	s.marked = true
	return b, nil
}

// Restore rebuilds the range from the bookmark.
func (s *Selection) Restore() (*Range, error) {
	if !s.marked {
		return nil, ErrNoSelection
	}
	r, err := Load(s.root, s.bookmark)
	if err != nil {
		return nil, fmt.Errorf("restore selection %s: %w", s.bookmark, err)
	}
	s.rng = r
	return r, nil
}

// Bookmark returns the last recorded bookmark.
func (s *Selection) Bookmark() (Bookmark, bool) {
	return s.bookmark, s.marked
}

// SetBookmark replaces the bookmark and drops the current range. The
// next call to Range resolves the bookmark.
func (s *Selection) SetBookmark(b Bookmark) {
	s.bookmark = b
	s.marked = true
	s.rng = nil
}

// Clear removes the range and the bookmark.
func (s *Selection) Clear() {
	s.rng = nil
	s.bookmark = Bookmark{}
	s.marked = false
}

// IsEmpty returns true if the selection holds neither range nor bookmark.
func (s *Selection) IsEmpty() bool {
	return s.rng == nil && !s.marked
}
