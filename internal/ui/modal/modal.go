// Package modal provides a confirmation dialog drawn over the editor.
package modal

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/draftpad/internal/ui/overlay"
	"github.com/zjrosen/draftpad/internal/ui/styles"
)

// ButtonVariant controls the styling of the confirm button.
type ButtonVariant int

const (
	ButtonSecondary ButtonVariant = iota
	ButtonDanger                  // destructive actions
)

const minWidth = 40

// Config controls modal appearance.
type Config struct {
	Title          string
	Message        string
	ConfirmLabel   string // default "Confirm"
	CancelLabel    string // default "Cancel"
	ConfirmVariant ButtonVariant
}

// ConfirmMsg is sent when the user accepts the modal.
type ConfirmMsg struct{}

// CancelMsg is sent when the user dismisses the modal.
type CancelMsg struct{}

// Field identifies which button is focused.
type Field int

const (
	FieldConfirm Field = iota
	FieldCancel
)

// Model is the modal component state.
type Model struct {
	config  Config
	focused Field
	width   int
	height  int
}

// New creates a modal with the cancel button focused, so a stray enter
// never confirms.
func New(cfg Config) Model {
	if cfg.ConfirmLabel == "" {
		cfg.ConfirmLabel = "Confirm"
	}
	if cfg.CancelLabel == "" {
		cfg.CancelLabel = "Cancel"
	}
	return Model{config: cfg, focused: FieldCancel}
}

// Update handles messages for the modal.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "shift+tab", "left", "right", "h", "l":
			if m.focused == FieldConfirm {
				m.focused = FieldCancel
			} else {
				m.focused = FieldConfirm
			}
		case "enter":
			if m.focused == FieldConfirm {
				return m, confirm
			}
			return m, cancel
		case "y":
			return m, confirm
		case "n", "esc":
			return m, cancel
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func confirm() tea.Msg { return ConfirmMsg{} }
func cancel() tea.Msg  { return CancelMsg{} }

// View renders the modal box.
func (m Model) View() string {
	contentWidth := max(minWidth, lipgloss.Width(m.config.Title))
	boxWidth := contentWidth + 2

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.OverlayTitleColor).
		PaddingLeft(1)
	divider := lipgloss.NewStyle().
		Foreground(styles.OverlayBorderColor).
		Render(strings.Repeat("─", boxWidth))

	var content strings.Builder
	if m.config.Message != "" {
		content.WriteString(lipgloss.NewStyle().
			Foreground(styles.TextPrimaryColor).
			Width(contentWidth).
			Render(m.config.Message))
		content.WriteString("\n\n")
	}
	content.WriteString(m.renderButtons())

	var result strings.Builder
	result.WriteString(titleStyle.Render(m.config.Title))
	result.WriteString("\n")
	result.WriteString(divider)
	result.WriteString("\n")
	result.WriteString(lipgloss.NewStyle().Padding(1, 1).Render(content.String()))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Width(boxWidth).
		Render(result.String())
}

func (m Model) renderButtons() string {
	confirmStyle := styles.SecondaryButtonStyle
	if m.focused == FieldConfirm {
		confirmStyle = styles.SecondaryButtonFocusedStyle
	}
	if m.config.ConfirmVariant == ButtonDanger {
		confirmStyle = styles.DangerButtonStyle
		if m.focused == FieldConfirm {
			confirmStyle = styles.DangerButtonFocusedStyle
		}
	}

	cancelStyle := styles.SecondaryButtonStyle
	if m.focused == FieldCancel {
		cancelStyle = styles.SecondaryButtonFocusedStyle
	}

	return confirmStyle.Render(m.config.ConfirmLabel) + "  " + cancelStyle.Render(m.config.CancelLabel)
}

// Overlay renders the modal centered on the given background.
func (m Model) Overlay(bg string) string {
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, m.View(), bg)
}

// SetSize updates the viewport size used for centering.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Focused returns the focused button.
func (m Model) Focused() Field {
	return m.focused
}
