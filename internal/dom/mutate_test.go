package dom

import (
	"testing"

	"golang.org/x/net/html"
)

func inner(t *testing.T, n *html.Node) string {
	t.Helper()
	s, err := InnerHTML(n)
	if err != nil {
		t.Fatalf("InnerHTML: %v", err)
	}
	return s
}

func TestSplitText(t *testing.T) {
	root := mustParse(t, "<p>héllo</p>")
	text := root.FirstChild.FirstChild

	tail := SplitText(text, 2)
	if tail == nil {
		t.Fatal("expected a tail node")
	}
	if text.Data != "hé" || tail.Data != "llo" || text.NextSibling != tail {
		t.Errorf("got %q | %q", text.Data, tail.Data)
	}

	for _, offset := range []int{0, 2, 5} {
		if SplitText(text, offset) != nil {
			t.Errorf("SplitText at edge %d should be a no-op", offset)
		}
	}
}

func TestWrap(t *testing.T) {
	root := mustParse(t, "<p>a<b>b</b>c</p>")
	p := root.FirstChild
	kids := Children(p)

	w := Wrap("b", kids...)
	if w == nil || w.Parent != p {
		t.Fatal("wrapper should be placed in the parent")
	}
	if got := inner(t, root); got != "<p><b>abc</b></p>" {
		t.Errorf("nested same tag should be removed, got %s", got)
	}
}

func TestWrapPartial(t *testing.T) {
	root := mustParse(t, "<p>a<i>b</i>c</p>")
	p := root.FirstChild
	kids := Children(p)

	Wrap("strong", kids[1], kids[2])
	if got := inner(t, root); got != "<p>a<strong><i>b</i>c</strong></p>" {
		t.Errorf("got %s", got)
	}
}

func TestUnwrap(t *testing.T) {
	root := mustParse(t, "<p>a<b>b</b>c</p>")
	Unwrap(root.FirstChild.FirstChild.NextSibling)

	if got := inner(t, root); got != "<p>abc</p>" {
		t.Errorf("got %s", got)
	}
	if ChildCount(root.FirstChild) != 1 {
		t.Error("unwrap should merge adjacent text")
	}
}

func TestChangeTag(t *testing.T) {
	root := mustParse(t, `<p class="x">a<b>b</b></p>`)
	h := ChangeTag(root.FirstChild, "H2")

	if h.Data != "h2" || root.FirstChild != h {
		t.Errorf("expected h2 in place, got %s", h.Data)
	}
	if got := inner(t, root); got != `<h2 class="x">a<b>b</b></h2>` {
		t.Errorf("got %s", got)
	}
}

func TestConnect(t *testing.T) {
	tests := []struct {
		name  string
		input string
		pick  int
		want  string
	}{
		{"left", "<b>a</b><b>b</b>", 1, "<b>ab</b>"},
		{"right", "<b>a</b><b>b</b>", 0, "<b>ab</b>"},
		{"through whitespace", "<b>a</b> <b>b</b>", 2, "<b>a b</b>"},
		{"blocked by text", "<b>a</b>x<b>b</b>", 2, "<b>a</b>x<b>b</b>"},
		{"blocked by other tag", "<b>a</b><i>x</i><b>b</b>", 2, "<b>a</b><i>x</i><b>b</b>"},
		{"both sides", "<b>a</b><b>b</b><b>c</b>", 1, "<b>abc</b>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := mustParse(t, tt.input)
			Connect(Children(root)[tt.pick])
			if got := inner(t, root); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	p := NewElement("p")
	p.AppendChild(NewText("a"))
	p.AppendChild(NewText(""))
	p.AppendChild(NewText("b"))
	b := NewElement("b")
	b.AppendChild(NewText("c"))
	b.AppendChild(NewText("d"))
	p.AppendChild(b)

	Normalize(p)
	if ChildCount(p) != 2 || p.FirstChild.Data != "ab" || ChildCount(b) != 1 || b.FirstChild.Data != "cd" {
		t.Errorf("unexpected structure after normalize")
	}
}

func TestAttrHelpers(t *testing.T) {
	n := NewElement("span")
	SetAttr(n, "data-x", "1")
	SetAttr(n, "data-x", "2")
	if v, ok := GetAttr(n, "data-x"); !ok || v != "2" || len(n.Attr) != 1 {
		t.Errorf("SetAttr should replace, got %v", n.Attr)
	}
	RemoveAttr(n, "data-x")
	if _, ok := GetAttr(n, "data-x"); ok {
		t.Error("attribute should be removed")
	}
}

func TestClone(t *testing.T) {
	root := mustParse(t, `<p class="x">a<b>b</b></p>`)
	c := Clone(root)

	if c.Parent != nil || c == root {
		t.Fatal("clone should be a detached copy")
	}
	if got, want := inner(t, c), inner(t, root); got != want {
		t.Errorf("clone = %s, want %s", got, want)
	}
	SetAttr(c.FirstChild, "class", "y")
	c.FirstChild.FirstChild.Data = "z"
	if got := inner(t, root); got != `<p class="x">a<b>b</b></p>` {
		t.Errorf("original changed: %s", got)
	}
}
