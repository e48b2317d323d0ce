package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	borderTopLeft     = "╭"
	borderTopRight    = "╮"
	borderBottomLeft  = "╰"
	borderBottomRight = "╯"
	borderHorizontal  = "─"
	borderVertical    = "│"
)

// RenderPanel draws content inside a rounded border with title embedded in
// the top edge: ╭─ Title ─────╮. Content lines are padded or cut to fit.
func RenderPanel(content, title string, width, height int, focused bool) string {
	var color lipgloss.TerminalColor = BorderDefaultColor
	if focused {
		color = BorderFocusColor
	}
	border := lipgloss.NewStyle().Foreground(color)

	inner := max(width-2, 1)
	rows := max(height-2, 1)

	lines := strings.Split(content, "\n")
	var b strings.Builder
	b.WriteString(topBorder(title, inner, border))
	for i := 0; i < rows; i++ {
		var line string
		if i < len(lines) {
			line = ansi.Truncate(lines[i], inner, "")
		}
		if pad := inner - ansi.StringWidth(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		b.WriteString("\n" + border.Render(borderVertical) + line + border.Render(borderVertical))
	}
	b.WriteString("\n" + border.Render(borderBottomLeft+strings.Repeat(borderHorizontal, inner)+borderBottomRight))
	return b.String()
}

func topBorder(title string, inner int, border lipgloss.Style) string {
	// "─ " + title + " " needs at least four cells to be worth drawing.
	if title == "" || inner < 4 {
		return border.Render(borderTopLeft + strings.Repeat(borderHorizontal, inner) + borderTopRight)
	}
	title = ansi.Truncate(title, inner-4, "…")
	rest := max(inner-3-ansi.StringWidth(title), 0)
	return border.Render(borderTopLeft+borderHorizontal+" ") +
		title +
		border.Render(" "+strings.Repeat(borderHorizontal, rest)+borderTopRight)
}
