package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/draftpad/internal/document"
)

func TestDefaultInline_CoversEveryStyle(t *testing.T) {
	table := DefaultInline()

	for _, name := range []document.Style{
		document.StyleHeading, document.StyleBold, document.StyleRed, document.StyleUnderline,
	} {
		_, ok := table.Style(name)
		require.True(t, ok, "missing %s", name)
	}
	_, ok := table.Style("ITALIC")
	require.False(t, ok)
}

func TestFor_CombinesStyles(t *testing.T) {
	st := DefaultInline().For(document.NewStyleSet(document.StyleBold, document.StyleUnderline))

	require.True(t, st.GetBold())
	require.True(t, st.GetUnderline())
}

func TestFor_UnknownStyleIsPlain(t *testing.T) {
	st := DefaultInline().For(document.NewStyleSet("ITALIC"))

	require.False(t, st.GetBold())
	require.False(t, st.GetUnderline())
}

func TestWithOverrides(t *testing.T) {
	off := false
	base := DefaultInline()

	table := base.WithOverrides(map[string]Override{
		"red":     {Foreground: "#00FF00"},
		"HEADING": {Underline: &off},
		"ITALIC":  {Foreground: "#123456"},
	})

	red, _ := table.Style(document.StyleRed)
	require.Equal(t, lipgloss.Color("#00FF00"), red.GetForeground())
	heading, _ := table.Style(document.StyleHeading)
	require.False(t, heading.GetUnderline())
	require.True(t, heading.GetBold())

	original, _ := base.Style(document.StyleRed)
	require.Equal(t, lipgloss.Color("#FF5F5F"), original.GetForeground(), "receiver is not modified")
}

func TestRenderPanel(t *testing.T) {
	out := RenderPanel("hello\nworld, this line is far too long", "draftpad", 20, 5, true)
	lines := strings.Split(out, "\n")

	require.Len(t, lines, 5)
	for _, line := range lines {
		require.Equal(t, 20, ansi.StringWidth(line))
	}
	require.Contains(t, ansi.Strip(lines[0]), "╭─ draftpad ")
	require.Contains(t, ansi.Strip(lines[1]), "│hello")
	require.Equal(t, "│                  │", ansi.Strip(lines[3]))
}

func TestRenderPanel_TruncatesTitle(t *testing.T) {
	out := RenderPanel("", "a very long panel title", 12, 3, false)
	top := ansi.Strip(strings.Split(out, "\n")[0])

	require.Equal(t, 12, ansi.StringWidth(top))
	require.Contains(t, top, "…")
}
