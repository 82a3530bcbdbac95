package document

import (
	"fmt"
	"strconv"
	"strings"
)

// valueKind discriminates the payload of a Value.
type valueKind uint8

const (
	kindBool valueKind = iota
	kindString
)

// Value is an attribute value. It holds either a bool or a string and is
// comparable with ==.
type Value struct {
	kind valueKind
	b    bool
	s    string
}

// BoolValue returns a boolean attribute value.
func BoolValue(b bool) Value {
	return Value{kind: kindBool, b: b}
}

// StringValue returns a string attribute value.
func StringValue(s string) Value {
	return Value{kind: kindString, s: s}
}

// IsBool reports whether the value holds a bool.
func (v Value) IsBool() bool {
	return v.kind == kindBool
}

// Bool returns the boolean payload. It is false for string values.
func (v Value) Bool() bool {
	return v.kind == kindBool && v.b
}

// Str returns the string payload. It is empty for boolean values.
func (v Value) Str() string {
	if v.kind != kindString {
		return ""
	}
	return v.s
}

// String returns a human-readable representation of the value.
func (v Value) String() string {
	if v.kind == kindBool {
		return strconv.FormatBool(v.b)
	}
	return strconv.Quote(v.s)
}

// Attribute is a named formatting marker such as bold or a link target.
type Attribute struct {
	Name  string
	Value Value
}

// Named returns an attribute with the given name and the value true.
func Named(name string) Attribute {
	return Attribute{Name: name, Value: BoolValue(true)}
}

// NewAttribute returns an attribute with an explicit value.
func NewAttribute(name string, value Value) Attribute {
	return Attribute{Name: name, Value: value}
}

// String returns the attribute as name=value.
func (a Attribute) String() string {
	return a.Name + "=" + a.Value.String()
}

// Common inline attribute names.
const (
	AttrBold      = "bold"
	AttrItalic    = "italic"
	AttrUnderline = "underline"
	AttrDel       = "del"
)

// AttributeSet is an ordered collection of attributes with unique names.
//
// The zero value is an empty set ready to use. Mutating methods never
// write into storage shared with another set, so plain assignment behaves
// as a copy.
type AttributeSet struct {
	attrs []Attribute
}

// NewAttributeSet creates a set from the given attributes, applying Add in
// order.
func NewAttributeSet(attrs ...Attribute) AttributeSet {
	var s AttributeSet
	for _, a := range attrs {
		s.Add(a)
	}
	return s
}

// Add appends an attribute. If an attribute with the same name is already
// present its value is replaced in place, so names stay unique and the
// original position is kept.
func (s *AttributeSet) Add(a Attribute) {
	for i := range s.attrs {
		if s.attrs[i].Name == a.Name {
			attrs := s.Get()
			attrs[i].Value = a.Value
			s.attrs = attrs
			return
		}
	}
	n := len(s.attrs)
	s.attrs = append(s.attrs[:n:n], a)
}

// AddName adds the attribute name with the value true.
func (s *AttributeSet) AddName(name string) {
	s.Add(Named(name))
}

// Remove deletes the attribute with the given name. It reports whether an
// attribute was removed.
func (s *AttributeSet) Remove(name string) bool {
	for i := range s.attrs {
		if s.attrs[i].Name == name {
			s.attrs = append(s.attrs[:i:i], s.attrs[i+1:]...)
			return true
		}
	}
	return false
}

// Get returns a copy of the attributes in order.
func (s AttributeSet) Get() []Attribute {
	if len(s.attrs) == 0 {
		return nil
	}
	out := make([]Attribute, len(s.attrs))
	copy(out, s.attrs)
	return out
}

// Len returns the number of attributes.
func (s AttributeSet) Len() int {
	return len(s.attrs)
}

// IsEmpty returns true if the set has no attributes.
func (s AttributeSet) IsEmpty() bool {
	return len(s.attrs) == 0
}

// IndexOf returns the position of the attribute whose name and value both
// equal a, or -1.
func (s AttributeSet) IndexOf(a Attribute) int {
	for i, b := range s.attrs {
		if b.Name == a.Name && b.Value == a.Value {
			return i
		}
	}
	return -1
}

// Contains returns true if the exact (name, value) pair is present.
func (s AttributeSet) Contains(a Attribute) bool {
	return s.IndexOf(a) >= 0
}

// Has returns true if an attribute with the given name is present.
func (s AttributeSet) Has(name string) bool {
	_, ok := s.Lookup(name)
	return ok
}

// Lookup returns the value stored under name.
func (s AttributeSet) Lookup(name string) (Value, bool) {
	for _, a := range s.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return Value{}, false
}

// Diff returns a new set containing the attributes of s whose pair is not
// present in other.
func (s AttributeSet) Diff(other AttributeSet) AttributeSet {
	var out AttributeSet
	for _, a := range s.attrs {
		if other.IndexOf(a) < 0 {
			out.attrs = append(out.attrs, a)
		}
	}
	return out
}

// Union returns a new set with the attributes of s followed by those of
// other. Values from other win on name collisions.
func (s AttributeSet) Union(other AttributeSet) AttributeSet {
	out := s.Copy()
	for _, a := range other.attrs {
		out.Add(a)
	}
	return out
}

// Equal returns true if both sets hold the same pairs, ignoring order.
func (s AttributeSet) Equal(other AttributeSet) bool {
	if len(s.attrs) != len(other.attrs) {
		return false
	}
	return s.Diff(other).IsEmpty()
}

// Copy returns an independent copy of the set.
func (s AttributeSet) Copy() AttributeSet {
	return AttributeSet{attrs: s.Get()}
}

// String returns the set as [a=true b="x"].
func (s AttributeSet) String() string {
	parts := make([]string, len(s.attrs))
	for i, a := range s.attrs {
		parts[i] = a.String()
	}
	return fmt.Sprintf("[%s]", strings.Join(parts, " "))
}
