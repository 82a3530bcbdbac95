package reader

import (
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"

	"github.com/dshills/richtype/internal/dom"
)

// Policy allows the block and inline tags the reader understands and
// strips everything else, keeping the text of removed elements.
var Policy = newPolicy()

func newPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(
		"p", "div", "ul", "ol", "li", "blockquote",
		"h1", "h2", "h3", "h4", "h5", "h6",
	)
	p.AllowElements("strong", "b", "em", "i", "u", "s", "del", "span", "br")
	return p
}

// Sanitize removes markup the editor does not support.
func Sanitize(markup string) string {
	return Policy.Sanitize(markup)
}

// SanitizeNode replaces the children of root with their sanitized form.
func SanitizeNode(root *html.Node) error {
	if root == nil {
		return ErrNilRoot
	}
	inner, err := dom.InnerHTML(root)
	if err != nil {
		return fmt.Errorf("sanitize: %w", err)
	}
	clean, err := dom.Parse(Sanitize(inner))
	if err != nil {
		return &ParseError{Err: err}
	}
	for _, c := range dom.Children(root) {
		dom.Detach(c)
	}
	dom.MoveInside(root, dom.Children(clean)...)
	return nil
}
