package topic

import "strings"

// Topic is a dot separated event name such as "format" or
// "selection.change".
type Topic string

// Pattern wildcards.
const (
	// WildcardSingle matches exactly one segment.
	WildcardSingle = "*"

	// WildcardMulti matches zero or more segments.
	WildcardMulti = "**"

	// Separator separates topic segments.
	Separator = "."
)

func (t Topic) String() string {
	return string(t)
}

// Segments splits t at the separator. The empty topic has no segments.
func (t Topic) Segments() []string {
	if t == "" {
		return nil
	}
	return strings.Split(string(t), Separator)
}

// SegmentCount returns len(t.Segments()) without allocating.
func (t Topic) SegmentCount() int {
	if t == "" {
		return 0
	}
	return strings.Count(string(t), Separator) + 1
}

// HasPrefix reports whether t starts with the complete segments of
// prefix. Every topic has the empty prefix.
func (t Topic) HasPrefix(prefix Topic) bool {
	rest, ok := strings.CutPrefix(string(t), string(prefix))
	if !ok {
		return false
	}
	return prefix == "" || rest == "" || strings.HasPrefix(rest, Separator)
}

// IsValid reports whether t is non-empty and has no empty segment.
func (t Topic) IsValid() bool {
	if t == "" {
		return false
	}
	for _, seg := range t.Segments() {
		if seg == "" {
			return false
		}
	}
	return true
}

// Matches reports whether t matches pattern. In a pattern "*" stands for
// one segment and "**" for any number of segments, including none.
func (t Topic) Matches(pattern Topic) bool {
	return match(t.Segments(), pattern.Segments())
}

func match(segs, pattern []string) bool {
	for len(pattern) > 0 {
		p := pattern[0]
		pattern = pattern[1:]
		if p == WildcardMulti {
			for i := 0; i <= len(segs); i++ {
				if match(segs[i:], pattern) {
					return true
				}
			}
			return false
		}
		if len(segs) == 0 || (p != WildcardSingle && p != segs[0]) {
			return false
		}
		segs = segs[1:]
	}
	return len(segs) == 0
}
