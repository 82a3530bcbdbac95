package document

import (
	"strconv"
	"strings"
	"sync/atomic"
)

// ID identifies a node within one editor. IDs are never reused.
type ID uint64

// String returns the decimal form of the ID.
func (id ID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// ParseID parses the decimal form produced by String.
func ParseID(s string) (ID, bool) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil || v == 0 {
		return 0, false
	}
	return ID(v), true
}

// IDSource hands out node IDs for one editor instance.
// The first ID is 1; zero is never a valid node ID.
type IDSource struct {
	last atomic.Uint64
}

// NewIDSource creates a counter starting at 1.
func NewIDSource() *IDSource {
	return &IDSource{}
}

// Next returns a fresh ID.
func (s *IDSource) Next() ID {
	return ID(s.last.Add(1))
}

// Node is a document tree node. It is implemented by *BlockNode and
// *TextNode only.
type Node interface {
	// ID returns the node's identity.
	ID() ID

	// Attributes returns a copy of the node's attributes.
	Attributes() AttributeSet

	// Len returns the number of characters covered by the node.
	Len() int

	sealed()
}

// BlockType is the tag of a block node.
type BlockType string

// Valid block types.
const (
	BlockParagraph BlockType = "p"
	BlockHeading1  BlockType = "h1"
	BlockHeading2  BlockType = "h2"
	BlockHeading3  BlockType = "h3"
	BlockHeading4  BlockType = "h4"
	BlockHeading5  BlockType = "h5"
	BlockHeading6  BlockType = "h6"
	BlockList      BlockType = "ul"
	BlockOrdered   BlockType = "ol"
	BlockListItem  BlockType = "li"
	BlockQuote     BlockType = "blockquote"
	BlockDivision  BlockType = "div" // legacy fallback
)

var validBlockTypes = map[BlockType]bool{
	BlockParagraph: true,
	BlockHeading1:  true,
	BlockHeading2:  true,
	BlockHeading3:  true,
	BlockHeading4:  true,
	BlockHeading5:  true,
	BlockHeading6:  true,
	BlockList:      true,
	BlockOrdered:   true,
	BlockListItem:  true,
	BlockQuote:     true,
	BlockDivision:  true,
}

// Valid reports whether t is one of the enumerated block types.
func (t BlockType) Valid() bool {
	return validBlockTypes[t]
}

// String returns the tag name.
func (t BlockType) String() string {
	return string(t)
}

// ParseBlockType converts a tag name into a BlockType.
// Matching is case-insensitive.
func ParseBlockType(tag string) (BlockType, error) {
	t := BlockType(strings.ToLower(strings.TrimSpace(tag)))
	if !t.Valid() {
		return "", &BlockTypeError{Type: tag}
	}
	return t, nil
}

// DefaultBlockType is the type used when none is configured.
func DefaultBlockType() BlockType {
	return BlockParagraph
}
