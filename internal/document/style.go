package document

import (
	"slices"
	"strings"
)

// Style is the symbolic name of an inline style. The document never knows
// what a style looks like; the renderer maps names to visual attributes.
type Style string

const (
	StyleHeading   Style = "HEADING"
	StyleBold      Style = "BOLD"
	StyleRed       Style = "RED"
	StyleUnderline Style = "UNDERLINE"
)

// StyleSet is the set of styles carried by a single character.
// It is kept sorted and free of duplicates; values are never mutated in place.
type StyleSet []Style

// NewStyleSet builds a normalized set from the given styles.
func NewStyleSet(styles ...Style) StyleSet {
	if len(styles) == 0 {
		return nil
	}
	set := slices.Clone(styles)
	slices.Sort(set)
	return slices.Compact(set)
}

// Has reports whether style is in the set.
func (s StyleSet) Has(style Style) bool {
	_, found := slices.BinarySearch(s, style)
	return found
}

// With returns a copy of the set including style.
func (s StyleSet) With(style Style) StyleSet {
	if s.Has(style) {
		return s
	}
	return NewStyleSet(append(slices.Clone(s), style)...)
}

// Without returns a copy of the set excluding style.
func (s StyleSet) Without(style Style) StyleSet {
	if !s.Has(style) {
		return s
	}
	out := make(StyleSet, 0, len(s)-1)
	for _, st := range s {
		if st != style {
			out = append(out, st)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Equal reports whether both sets hold the same styles.
func (s StyleSet) Equal(other StyleSet) bool {
	return slices.Equal(s, other)
}

// IsEmpty reports whether the set holds no styles.
func (s StyleSet) IsEmpty() bool {
	return len(s) == 0
}

func (s StyleSet) String() string {
	names := make([]string, len(s))
	for i, st := range s {
		names[i] = string(st)
	}
	return "{" + strings.Join(names, ",") + "}"
}
