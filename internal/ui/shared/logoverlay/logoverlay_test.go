package logoverlay

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/draftpad/internal/log"
)

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func withEntries() Model {
	m := New()
	m.SetSize(100, 30)
	m.Append("2026-10-15T10:00:00 [DEBUG] [ui] key\n")
	m.Append("2026-10-15T10:00:01 [INFO] [store] Saved document\n")
	m.Append("2026-10-15T10:00:02 [WARN] [store] Quarantined\n")
	m.Append("2026-10-15T10:00:03 [ERROR] [db] boom\n")
	return m
}

func TestFilterLevels(t *testing.T) {
	m := withEntries()
	m.Toggle()

	require.Len(t, m.Entries(), 4)

	m, _ = m.Update(key("w"))
	require.Len(t, m.Entries(), 2)

	m, _ = m.Update(key("e"))
	require.Equal(t, []string{"2026-10-15T10:00:03 [ERROR] [db] boom"}, m.Entries())

	m, _ = m.Update(key("i"))
	require.Len(t, m.Entries(), 3)
}

func TestHiddenIgnoresKeys(t *testing.T) {
	m := withEntries()

	m, cmd := m.Update(key("c"))

	require.Nil(t, cmd)
	require.Len(t, m.Entries(), 4)
	require.Empty(t, m.View())
}

func TestClearAndClose(t *testing.T) {
	m := withEntries()
	m.Toggle()

	m, _ = m.Update(key("c"))
	require.Empty(t, m.Entries())
	require.Contains(t, ansi.Strip(m.View()), "No logs to display")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.False(t, m.Visible())
	require.NotNil(t, cmd)
	require.IsType(t, CloseMsg{}, cmd())
}

func TestAppend_KeepsRecentEntries(t *testing.T) {
	m := New()
	for i := 0; i < maxEntries+10; i++ {
		m.Append(fmt.Sprintf("[INFO] entry %d", i))
	}

	entries := m.Entries()
	require.Len(t, entries, maxEntries)
	require.Equal(t, "[INFO] entry 10", entries[0])
}

func TestView_ShowsEntriesAndHints(t *testing.T) {
	m := withEntries()
	m.Toggle()

	view := ansi.Strip(m.View())

	require.Contains(t, view, "Logs")
	require.Contains(t, view, "Saved document")
	require.Contains(t, view, "[w] Warn")
}

func TestOverlay_HiddenReturnsBackground(t *testing.T) {
	m := withEntries()

	require.Equal(t, "background", m.Overlay("background"))
}

func TestUntaggedEntriesAlwaysShown(t *testing.T) {
	m := New()
	m.Append("plain line")
	m.minLevel = log.LevelError

	require.Equal(t, []string{"plain line"}, m.Entries())
}
