// Package logoverlay shows recent debug log entries on top of the editor.
package logoverlay

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/draftpad/internal/log"
	"github.com/zjrosen/draftpad/internal/ui/overlay"
	"github.com/zjrosen/draftpad/internal/ui/styles"
)

const (
	maxEntries        = 500
	viewportMaxHeight = 20
	viewportMinHeight = 3
	boxMaxWidth       = 140
	boxMinWidth       = 30
)

// CloseMsg is sent when the overlay closes itself.
type CloseMsg struct{}

// Model keeps the most recent log entries and a scrollable view of them.
type Model struct {
	entries  []string
	visible  bool
	minLevel log.Level
	width    int
	height   int
	viewport viewport.Model
}

// New returns a hidden overlay showing every level.
func New() Model {
	return Model{minLevel: log.LevelDebug}
}

// Append records a log entry, dropping the oldest past the buffer size.
func (m *Model) Append(entry string) {
	m.entries = append(m.entries, strings.TrimSuffix(entry, "\n"))
	if over := len(m.entries) - maxEntries; over > 0 {
		m.entries = append(m.entries[:0], m.entries[over:]...)
	}
	if m.visible {
		m.refresh()
		m.viewport.GotoBottom()
	}
}

// Entries returns the entries passing the level filter.
func (m Model) Entries() []string {
	var out []string
	for _, e := range m.entries {
		if levelOf(e) >= m.minLevel {
			out = append(out, e)
		}
	}
	return out
}

// Update handles keys while visible.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.visible {
		return m, nil
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "c":
		m.entries = nil
	case "d":
		m.minLevel = log.LevelDebug
	case "i":
		m.minLevel = log.LevelInfo
	case "w":
		m.minLevel = log.LevelWarn
	case "e":
		m.minLevel = log.LevelError
	case "j", "down":
		m.viewport.ScrollDown(1)
		return m, nil
	case "k", "up":
		m.viewport.ScrollUp(1)
		return m, nil
	case "g":
		m.viewport.GotoTop()
		return m, nil
	case "G":
		m.viewport.GotoBottom()
		return m, nil
	case "esc", "ctrl+x":
		m.visible = false
		return m, func() tea.Msg { return CloseMsg{} }
	default:
		return m, nil
	}
	m.refresh()
	return m, nil
}

// Toggle flips visibility.
func (m *Model) Toggle() {
	m.visible = !m.visible
	if m.visible {
		m.refresh()
		m.viewport.GotoBottom()
	}
}

// Visible reports whether the overlay is showing.
func (m Model) Visible() bool { return m.visible }

// SetSize records the screen size.
func (m *Model) SetSize(width, height int) {
	m.width, m.height = width, height
	m.refresh()
}

// View renders the boxed log list.
func (m Model) View() string {
	if !m.visible {
		return ""
	}
	w := m.boxWidth()
	divider := lipgloss.NewStyle().Foreground(styles.BorderDefaultColor).Render(strings.Repeat("─", w))
	title := styles.TitleStyle.PaddingLeft(1).Render("Logs")

	body := strings.Join([]string{title, divider, m.viewport.View(), divider, m.hints()}, "\n")
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.BorderFocusColor).
		Width(w).
		Render(body)
}

// Overlay centers the box over bg.
func (m Model) Overlay(bg string) string {
	if !m.visible {
		return bg
	}
	return overlay.Place(overlay.Config{Width: m.width, Height: m.height, Position: overlay.Center}, m.View(), bg)
}

func (m *Model) refresh() {
	if m.width == 0 || m.height == 0 {
		return
	}
	// title, two dividers, hints and the border take six rows
	h := max(min(viewportMaxHeight, m.height-6), viewportMinHeight)
	w := m.boxWidth() - 2
	m.viewport = viewport.New(w, h)
	m.viewport.SetContent(m.content(w))
}

func (m Model) content(width int) string {
	entries := m.Entries()
	if len(entries) == 0 {
		return styles.PlaceholderStyle.Render("No logs to display")
	}
	lines := make([]string, len(entries))
	for i, e := range entries {
		if ansi.StringWidth(e) > width {
			e = ansi.Truncate(e, width, "…")
		}
		lines[i] = colorFor(levelOf(e)).Render(e)
	}
	return strings.Join(lines, "\n")
}

func (m Model) boxWidth() int {
	return max(min(m.width-4, boxMaxWidth), boxMinWidth)
}

func (m Model) hints() string {
	items := []struct {
		label string
		level log.Level
	}{
		{"[d] Debug", log.LevelDebug},
		{"[i] Info", log.LevelInfo},
		{"[w] Warn", log.LevelWarn},
		{"[e] Error", log.LevelError},
	}
	parts := []string{styles.MutedStyle.Render("[c] Clear")}
	for _, it := range items {
		if it.level == m.minLevel {
			parts = append(parts, styles.TitleStyle.Render(it.label))
			continue
		}
		parts = append(parts, styles.MutedStyle.Render(it.label))
	}
	return strings.Join(parts, "  ")
}

// levelOf reads the level tag written by the log package. Entries without
// one count as errors so they are never filtered out.
func levelOf(entry string) log.Level {
	for _, l := range []log.Level{log.LevelDebug, log.LevelInfo, log.LevelWarn, log.LevelError} {
		if strings.Contains(entry, "["+l.String()+"]") {
			return l
		}
	}
	return log.LevelError
}

func colorFor(l log.Level) lipgloss.Style {
	switch l {
	case log.LevelError:
		return lipgloss.NewStyle().Foreground(styles.StatusErrorColor)
	case log.LevelWarn:
		return lipgloss.NewStyle().Foreground(styles.StatusWarningColor)
	case log.LevelInfo:
		return lipgloss.NewStyle().Foreground(styles.StatusInfoColor)
	default:
		return styles.MutedStyle
	}
}
