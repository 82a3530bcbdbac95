package selection

import (
	"errors"
	"testing"

	"golang.org/x/net/html"

	"github.com/dshills/richtype/internal/dom"
)

// rebuild replaces the children of root with freshly parsed markup.
func rebuild(t *testing.T, root *html.Node, markup string) {
	t.Helper()
	for _, c := range dom.Children(root) {
		dom.Detach(c)
	}
	dom.MoveInside(root, dom.Children(mustParse(t, markup))...)
}

func TestBookmark(t *testing.T) {
	b := NewBookmark(8, 3)
	if b.Start != 3 || b.End != 8 || b.Len() != 5 {
		t.Errorf("NewBookmark should order offsets, got %s", b)
	}
	if b.IsCollapsed() || !NewBookmark(2, 2).IsCollapsed() {
		t.Error("IsCollapsed mismatch")
	}
	if !b.Contains(3) || b.Contains(8) || b.Contains(2) {
		t.Error("Contains is half-open")
	}
	if m := b.Merge(NewBookmark(1, 4)); m != (Bookmark{Start: 1, End: 8}) {
		t.Errorf("Merge = %s", m)
	}
	if s := b.Shift(-2); s != (Bookmark{Start: 1, End: 6}) {
		t.Errorf("Shift = %s", s)
	}
	if b.String() != "[3:8)" {
		t.Errorf("String = %q", b.String())
	}
}

func TestSelectionEmpty(t *testing.T) {
	s := New(mustParse(t, "<p>hello</p>"))
	if !s.IsEmpty() {
		t.Error("new selection should be empty")
	}
	if _, err := s.Range(); !errors.Is(err, ErrNoSelection) {
		t.Errorf("expected ErrNoSelection, got %v", err)
	}
	if _, err := s.Save(); !errors.Is(err, ErrNoSelection) {
		t.Errorf("expected ErrNoSelection, got %v", err)
	}
}

func TestSelectionSet(t *testing.T) {
	root := mustParse(t, "<p>hello</p><p>world</p>")
	s := New(root)

	r := NewRange(textNode(t, root, "hello"), 1, textNode(t, root, "world"), 2)
	if err := s.Set(r); err != nil {
		t.Fatal(err)
	}
	got, err := s.Range()
	if err != nil || got != r {
		t.Errorf("Range should return the live range, got %v %v", got, err)
	}
	if b, ok := s.Bookmark(); !ok || b != NewBookmark(1, 7) {
		t.Errorf("Bookmark = %s, %v", b, ok)
	}

	other := mustParse(t, "<p>elsewhere</p>")
	if err := s.Set(Collapsed(other.FirstChild.FirstChild, 0)); !errors.Is(err, ErrNotInRoot) {
		t.Errorf("expected ErrNotInRoot, got %v", err)
	}
	if err := s.Set(nil); !errors.Is(err, ErrNilContainer) {
		t.Errorf("expected ErrNilContainer, got %v", err)
	}
}

func TestSelectionReloadsAfterRebuild(t *testing.T) {
	root := mustParse(t, "<p>hello</p><p>world</p>")
	s := New(root)
	if err := s.Set(NewRange(textNode(t, root, "hello"), 1, textNode(t, root, "world"), 2)); err != nil {
		t.Fatal(err)
	}

	rebuild(t, root, "<p>h<b>ello</b></p><p>wor<i>ld</i></p>")

	r, err := s.Range()
	if err != nil {
		t.Fatal(err)
	}
	if !r.IsValid(root) {
		t.Fatal("reloaded range should be attached")
	}
	if r.StartContainer() != textNode(t, root, "ello") || r.Start().Offset != 0 {
		t.Errorf("start = %s", r)
	}
	if r.EndContainer() != textNode(t, root, "wor") || r.End().Offset != 2 {
		t.Errorf("end = %s", r)
	}
	if again, _ := s.Range(); again != r {
		t.Error("reloaded range should be kept")
	}
}

func TestSelectionSaveRestore(t *testing.T) {
	root := mustParse(t, "<p>hello world</p>")
	s := New(root)
	text := textNode(t, root, "hello world")
	if err := s.Set(Collapsed(text, 0)); err != nil {
		t.Fatal(err)
	}

	// Move the live range, then record it.
	s.rng = NewRange(text, 6, text, 11)
	b, err := s.Save()
	if err != nil || b != NewBookmark(6, 11) {
		t.Fatalf("Save = %s, %v", b, err)
	}

	rebuild(t, root, "<p>hello <u>world</u></p>")
	r, err := s.Restore()
	if err != nil {
		t.Fatal(err)
	}
	if r.StartContainer() != textNode(t, root, "world") || r.Length() != 5 {
		t.Errorf("Restore = %s", r)
	}

	// With a stale range Save keeps the bookmark.
	s.rng = NewRange(text, 0, text, 1)
	if b2, err := s.Save(); err != nil || b2 != b {
		t.Errorf("stale Save = %s, %v", b2, err)
	}
}

func TestSelectionSetBookmark(t *testing.T) {
	root := mustParse(t, "<p>ab<br>cd</p>")
	s := New(root)
	s.SetBookmark(NewBookmark(2, 3))

	r, err := s.Range()
	if err != nil {
		t.Fatal(err)
	}
	p := root.FirstChild
	if r.Start() != (Point{p, 1}) || r.End() != (Point{p, 2}) {
		t.Errorf("bookmark over <br> resolved to %s", r)
	}

	s.SetBookmark(NewBookmark(2, 40))
	if _, err := s.Range(); !errors.Is(err, ErrOffsetOutOfRange) {
		t.Errorf("expected ErrOffsetOutOfRange, got %v", err)
	}

	s.Clear()
	if !s.IsEmpty() {
		t.Error("Clear should empty the selection")
	}
	if _, ok := s.Bookmark(); ok {
		t.Error("Clear should drop the bookmark")
	}
}
