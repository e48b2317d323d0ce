package styles

import (
	"maps"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/draftpad/internal/document"
)

// Override replaces individual attributes of one inline style. It mirrors
// config.StyleConfig to keep this package free of config.
type Override struct {
	Foreground string
	Bold       *bool
	Underline  *bool
}

// InlineTable maps inline style names to how they are drawn. Styles not in
// the table render as plain text.
type InlineTable struct {
	styles map[document.Style]lipgloss.Style
}

// DefaultInline returns the built-in table. A terminal cannot change font
// size, so HEADING is drawn bold and underlined in the heading color.
func DefaultInline() InlineTable {
	return InlineTable{styles: map[document.Style]lipgloss.Style{
		document.StyleHeading:   lipgloss.NewStyle().Bold(true).Underline(true).Foreground(HeadingColor),
		document.StyleBold:      lipgloss.NewStyle().Bold(true),
		document.StyleRed:       lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F")),
		document.StyleUnderline: lipgloss.NewStyle().Underline(true),
	}}
}

// WithOverrides returns a copy of t with overrides applied. Keys are style
// names in any case; unknown names are ignored.
func (t InlineTable) WithOverrides(overrides map[string]Override) InlineTable {
	out := InlineTable{styles: maps.Clone(t.styles)}
	for name, o := range overrides {
		key := document.Style(strings.ToUpper(name))
		st, ok := out.styles[key]
		if !ok {
			continue
		}
		if o.Foreground != "" {
			st = st.Foreground(lipgloss.Color(o.Foreground))
		}
		if o.Bold != nil {
			st = st.Bold(*o.Bold)
		}
		if o.Underline != nil {
			st = st.Underline(*o.Underline)
		}
		out.styles[key] = st
	}
	return out
}

// Style returns the drawing style for a single inline style name.
func (t InlineTable) Style(name document.Style) (lipgloss.Style, bool) {
	st, ok := t.styles[name]
	return st, ok
}

// For combines the styles of every name in set. Later names in the set's
// order only fill attributes the earlier ones left unset.
func (t InlineTable) For(set document.StyleSet) lipgloss.Style {
	out := lipgloss.NewStyle()
	for _, name := range set {
		if st, ok := t.styles[name]; ok {
			out = out.Inherit(st)
		}
	}
	return out
}

// IsZero reports whether t was never initialized.
func (t InlineTable) IsZero() bool {
	return t.styles == nil
}
