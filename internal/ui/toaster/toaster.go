// Package toaster shows short notifications over the editor.
package toaster

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/draftpad/internal/ui/overlay"
	"github.com/zjrosen/draftpad/internal/ui/styles"
)

// Style determines the icon and border color of a toast.
type Style int

const (
	StyleSuccess Style = iota
	StyleError
	StyleInfo
	StyleWarn
)

// DefaultDuration is how long a toast stays up when no duration is set.
const DefaultDuration = 3 * time.Second

// Model holds the toaster state. Each Show bumps the generation so the
// dismissal scheduled by an earlier toast cannot hide a newer one.
type Model struct {
	message    string
	style      Style
	visible    bool
	generation int
	duration   time.Duration
}

// New creates a toaster whose toasts last d.
func New(d time.Duration) Model {
	if d <= 0 {
		d = DefaultDuration
	}
	return Model{duration: d}
}

// DismissMsg hides the toast it was scheduled for.
type DismissMsg struct {
	Generation int
}

// Show displays message and returns the command that dismisses it.
func (m Model) Show(message string, style Style) (Model, tea.Cmd) {
	m.message = message
	m.style = style
	m.visible = true
	m.generation++
	gen := m.generation
	return m, tea.Tick(m.duration, func(time.Time) tea.Msg {
		return DismissMsg{Generation: gen}
	})
}

// Update handles DismissMsg.
func (m Model) Update(msg tea.Msg) Model {
	if d, ok := msg.(DismissMsg); ok && d.Generation == m.generation {
		return m.Hide()
	}
	return m
}

// Hide dismisses the toast.
func (m Model) Hide() Model {
	m.visible = false
	m.message = ""
	return m
}

// Visible reports whether a toast is showing.
func (m Model) Visible() bool { return m.visible }

// Message returns the text of the current toast.
func (m Model) Message() string { return m.message }

// Kind returns the style of the current toast.
func (m Model) Kind() Style { return m.style }

// View renders the toast box, or "" when hidden.
func (m Model) View() string {
	if !m.visible || m.message == "" {
		return ""
	}

	box := lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder())
	switch m.style {
	case StyleError:
		return box.BorderForeground(styles.StatusErrorColor).Render("✗ " + m.message)
	case StyleInfo:
		return box.BorderForeground(styles.StatusInfoColor).Render("i " + m.message)
	case StyleWarn:
		return box.BorderForeground(styles.StatusWarningColor).Render("! " + m.message)
	default:
		return box.BorderForeground(styles.StatusSuccessColor).Render("✓ " + m.message)
	}
}

// Overlay draws the toast at the bottom center of bg.
func (m Model) Overlay(bg string, width, height int) string {
	if !m.visible || m.message == "" {
		return bg
	}
	return overlay.Place(overlay.Config{
		Width:    width,
		Height:   height,
		Position: overlay.Bottom,
		PadY:     1,
	}, m.View(), bg)
}
