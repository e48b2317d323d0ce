package autoformat

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zjrosen/draftpad/internal/document"
)

// Rule rewrites a line that starts with Marker: the first StripLength
// runes are removed and Style is applied to what remains.
type Rule struct {
	Marker      string
	Style       document.Style
	StripLength int
}

// DefaultRules is the fixed rule table, most specific marker first.
var DefaultRules = []Rule{
	{Marker: "*** ", Style: document.StyleUnderline, StripLength: 4},
	{Marker: "** ", Style: document.StyleRed, StripLength: 3},
	{Marker: "* ", Style: document.StyleBold, StripLength: 2},
	{Marker: "# ", Style: document.StyleHeading, StripLength: 2},
}

// MatchMode selects how a line is compared against a marker.
type MatchMode int

const (
	// MatchExact fires only when the whole line equals the marker.
	MatchExact MatchMode = iota
	// MatchPrefix fires when the line starts with the marker.
	MatchPrefix
)

func (m MatchMode) String() string {
	switch m {
	case MatchExact:
		return "exact"
	case MatchPrefix:
		return "prefix"
	default:
		return "unknown"
	}
}

func (r Rule) matches(line string, mode MatchMode) bool {
	if mode == MatchExact {
		return line == r.Marker
	}
	return strings.HasPrefix(line, r.Marker)
}

// Rule table errors.
var (
	ErrNoRules      = errors.New("autoformat: no rules")
	ErrEmptyMarker  = errors.New("autoformat: empty marker")
	ErrStripLength  = errors.New("autoformat: strip length out of range")
	ErrShadowedRule = errors.New("autoformat: rule shadowed by an earlier rule")
)

// validateRules checks every rule on its own and then the ordering: a
// marker that is a prefix of a later marker would always win in prefix
// mode and leave the later rule unreachable.
func validateRules(rules []Rule) error {
	if len(rules) == 0 {
		return ErrNoRules
	}
	for i, r := range rules {
		if r.Marker == "" {
			return fmt.Errorf("rule %d: %w", i, ErrEmptyMarker)
		}
		if r.Style == "" {
			return fmt.Errorf("rule %d (%q): empty style", i, r.Marker)
		}
		if n := len([]rune(r.Marker)); r.StripLength <= 0 || r.StripLength > n {
			return fmt.Errorf("rule %d (%q): %w: %d not in 1..%d", i, r.Marker, ErrStripLength, r.StripLength, n)
		}
	}
	for i, earlier := range rules {
		for j := i + 1; j < len(rules); j++ {
			if strings.HasPrefix(rules[j].Marker, earlier.Marker) {
				return fmt.Errorf("rule %d (%q) before rule %d (%q): %w",
					i, earlier.Marker, j, rules[j].Marker, ErrShadowedRule)
			}
		}
	}
	return nil
}
