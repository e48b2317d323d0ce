// Package overlay draws one view on top of another without clearing the
// screen underneath.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Position anchors the foreground within the viewport.
type Position int

const (
	Center Position = iota
	Top
	Bottom
	TopRight
	BottomRight
)

// Config describes the viewport and where the foreground goes.
type Config struct {
	Width    int
	Height   int
	Position Position
	// PadX and PadY keep the foreground away from the edges it is anchored to.
	PadX int
	PadY int
}

// Place draws fg over bg. Styling on both sides of the foreground is kept.
func Place(cfg Config, fg, bg string) string {
	fgLines := strings.Split(fg, "\n")
	bgLines := strings.Split(bg, "\n")
	for len(bgLines) < cfg.Height {
		bgLines = append(bgLines, strings.Repeat(" ", cfg.Width))
	}

	x, y := origin(cfg, lipgloss.Width(fg), len(fgLines))
	for i, line := range fgLines {
		row := y + i
		if row >= len(bgLines) {
			break
		}
		bgLines[row] = splice(bgLines[row], line, x)
	}
	return strings.Join(bgLines, "\n")
}

// splice replaces the cells of bg starting at column x with fg.
func splice(bg, fg string, x int) string {
	left := ansi.Truncate(bg, x, "")
	if w := ansi.StringWidth(left); w < x {
		left += strings.Repeat(" ", x-w)
	}
	end := x + ansi.StringWidth(fg)
	var right string
	if end < ansi.StringWidth(bg) {
		right = ansi.TruncateLeft(bg, end, "")
	}
	return left + fg + right
}

func origin(cfg Config, w, h int) (x, y int) {
	centerX := (cfg.Width - w) / 2
	rightX := cfg.Width - w - cfg.PadX
	bottomY := cfg.Height - h - cfg.PadY

	switch cfg.Position {
	case Top:
		x, y = centerX, cfg.PadY
	case Bottom:
		x, y = centerX, bottomY
	case TopRight:
		x, y = rightX, cfg.PadY
	case BottomRight:
		x, y = rightX, bottomY
	default:
		x, y = centerX, (cfg.Height-h)/2
	}
	return max(x, 0), max(y, 0)
}
