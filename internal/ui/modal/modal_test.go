package modal

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func run(t *testing.T, m Model, keys ...string) (Model, tea.Msg) {
	t.Helper()
	var msg tea.Msg
	for _, k := range keys {
		var cmd tea.Cmd
		m, cmd = m.Update(key(k))
		if cmd != nil {
			msg = cmd()
		}
	}
	return m, msg
}

func TestNew_DefaultsToCancel(t *testing.T) {
	m := New(Config{Title: "Quit"})

	require.Equal(t, FieldCancel, m.Focused())
	require.Equal(t, "Confirm", m.config.ConfirmLabel)
	require.Equal(t, "Cancel", m.config.CancelLabel)
}

func TestEnter_OnCancel(t *testing.T) {
	_, msg := run(t, New(Config{}), "enter")
	require.IsType(t, CancelMsg{}, msg)
}

func TestEnter_AfterMovingToConfirm(t *testing.T) {
	m, msg := run(t, New(Config{}), "tab")
	require.Nil(t, msg)
	require.Equal(t, FieldConfirm, m.Focused())

	_, msg = run(t, m, "enter")
	require.IsType(t, ConfirmMsg{}, msg)
}

func TestShortcuts(t *testing.T) {
	tests := []struct {
		key  string
		want tea.Msg
	}{
		{"y", ConfirmMsg{}},
		{"n", CancelMsg{}},
		{"esc", CancelMsg{}},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			_, msg := run(t, New(Config{}), tt.key)
			require.Equal(t, tt.want, msg)
		})
	}
}

func TestFocusToggles(t *testing.T) {
	m, _ := run(t, New(Config{}), "l", "h", "tab")
	require.Equal(t, FieldConfirm, m.Focused())
}

func TestView_ShowsTitleMessageAndButtons(t *testing.T) {
	m := New(Config{
		Title:          "Unsaved changes",
		Message:        "Quit without saving?",
		ConfirmLabel:   "Quit",
		ConfirmVariant: ButtonDanger,
	})

	view := ansi.Strip(m.View())

	require.Contains(t, view, "Unsaved changes")
	require.Contains(t, view, "Quit without saving?")
	require.Contains(t, view, "Quit")
	require.Contains(t, view, "Cancel")
}

func TestOverlay_CentersOnBackground(t *testing.T) {
	m := New(Config{Title: "Hi"})
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})

	out := m.Overlay("background")

	require.Contains(t, ansi.Strip(out), "Hi")
	require.Equal(t, 80, m.width)
}
