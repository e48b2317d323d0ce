package editor

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/draftpad/internal/document"
)

func newEditor() Model {
	m := New(Config{Autoformat: true})
	m.SetSize(40, 10)
	return m
}

// typeText sends each rune as its own keystroke, the way a terminal does.
func typeText(m Model, text string) Model {
	for _, r := range text {
		msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
		if r == ' ' {
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		}
		m, _ = m.Update(msg)
	}
	return m
}

func press(m Model, t tea.KeyType) Model {
	m, _ = m.Update(tea.KeyMsg{Type: t})
	return m
}

func viewLines(m Model) []string {
	lines := strings.Split(ansi.Strip(m.View()), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return lines
}

func requireBlockStyled(t *testing.T, m Model, i int, text string, style document.Style) {
	t.Helper()
	b, ok := m.Snapshot().BlockAt(i)
	require.True(t, ok)
	require.Equal(t, text, b.Text())
	for j := 0; j < b.Len(); j++ {
		require.Equal(t, document.NewStyleSet(style), b.StyleAt(j), "rune %d", j)
	}
}

func TestTyping_MarkerOnEmptyLine(t *testing.T) {
	tests := []struct {
		marker string
		style  document.Style
	}{
		{"# ", document.StyleHeading},
		{"* ", document.StyleBold},
		{"** ", document.StyleRed},
		{"*** ", document.StyleUnderline},
	}
	for _, tt := range tests {
		t.Run(tt.marker, func(t *testing.T) {
			m := typeText(newEditor(), tt.marker+"Hi")
			requireBlockStyled(t, m, 0, "Hi", tt.style)
		})
	}
}

func TestTyping_MarkerAfterText(t *testing.T) {
	m := newEditor()
	m.SetSnapshot(document.FromText("# Hello").MoveLineEnd())

	m = typeText(m, " ")

	b, _ := m.Snapshot().BlockAt(0)
	require.Equal(t, "Hello", b.Text())
	require.True(t, b.StyleAt(0).Has(document.StyleHeading))
	require.Equal(t, 5, m.Snapshot().SelectionStart().Offset)
}

func TestTyping_AutoformatDisabled(t *testing.T) {
	m := New(Config{})
	m = typeText(m, "# Hi")

	b, _ := m.Snapshot().BlockAt(0)
	require.Equal(t, "# Hi", b.Text())
	require.True(t, b.StyleAt(0).IsEmpty())
	require.False(t, m.Autoformat())

	m.SetAutoformat(true)
	require.True(t, m.Autoformat())
}

func TestUpdate_ChangedMsgOnlyForEdits(t *testing.T) {
	m := newEditor()

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	require.NotNil(t, cmd)
	changed, ok := cmd().(ChangedMsg)
	require.True(t, ok)
	require.Equal(t, "a", changed.Snapshot.PlainText())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	require.Nil(t, cmd, "moving the caret is not an edit")
}

func TestStyleToggles(t *testing.T) {
	tests := []struct {
		key   tea.KeyType
		style document.Style
	}{
		{tea.KeyCtrlB, document.StyleBold},
		{tea.KeyCtrlR, document.StyleRed},
		{tea.KeyCtrlU, document.StyleUnderline},
		{tea.KeyCtrlT, document.StyleHeading},
	}
	for _, tt := range tests {
		t.Run(string(tt.style), func(t *testing.T) {
			m := press(newEditor(), tt.key)
			m = typeText(m, "x")
			requireBlockStyled(t, m, 0, "x", tt.style)
		})
	}
}

func TestEditingKeys(t *testing.T) {
	m := typeText(newEditor(), "abc")

	m = press(m, tea.KeyEnter)
	m = typeText(m, "de")
	require.Equal(t, "abc\nde", m.Snapshot().PlainText())

	m = press(m, tea.KeyBackspace)
	require.Equal(t, "abc\nd", m.Snapshot().PlainText())

	m = press(m, tea.KeyHome)
	m = press(m, tea.KeyBackspace)
	require.Equal(t, "abcd", m.Snapshot().PlainText())

	m = press(m, tea.KeyDelete)
	require.Equal(t, "abc", m.Snapshot().PlainText())
}

func TestSelectAllThenType(t *testing.T) {
	m := typeText(newEditor(), "old text")

	m = press(m, tea.KeyCtrlL)
	m = typeText(m, "n")

	require.Equal(t, "n", m.Snapshot().PlainText())
}

func TestPaste_SplitsLinesAndSkipsAutoformat(t *testing.T) {
	m := newEditor()

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("# one\r\ntwo"), Paste: true})

	require.NotNil(t, cmd)
	require.Equal(t, "# one\ntwo", m.Snapshot().PlainText())
	require.Equal(t, 2, m.Snapshot().BlockCount())
}

func TestBlurIgnoresKeys(t *testing.T) {
	m := newEditor()
	m.Blur()
	require.False(t, m.Focused())

	m = typeText(m, "x")
	require.True(t, m.Snapshot().IsEmpty())

	m.Focus()
	m = typeText(m, "x")
	require.Equal(t, "x", m.Snapshot().PlainText())
}

func TestView_Placeholder(t *testing.T) {
	require.Contains(t, ansi.Strip(newEditor().View()), DefaultPlaceholder)

	m := New(Config{Placeholder: "Write here"})
	require.Contains(t, ansi.Strip(m.View()), "Write here")
}

func TestView_PlaceholderTruncated(t *testing.T) {
	m := newEditor()
	m.SetSize(8, 1)

	view := ansi.Strip(m.View())

	require.Contains(t, view, "…")
	require.LessOrEqual(t, ansi.StringWidth(view), 8)
}

func TestView_WrapsLongLines(t *testing.T) {
	m := newEditor()
	m.SetSize(10, 10)
	m.SetSnapshot(document.FromText("hello world again"))

	lines := viewLines(m)

	require.Greater(t, len(lines), 1)
	for _, l := range lines {
		require.LessOrEqual(t, ansi.StringWidth(l), 10)
	}
	require.Equal(t, "hello world again", strings.Join(strings.Fields(strings.Join(lines, " ")), " "))
}

func TestView_HardWrapsLongWords(t *testing.T) {
	m := newEditor()
	m.SetSize(4, 10)
	m.SetSnapshot(document.FromText("abcdefghij"))

	require.Equal(t, []string{"abcd", "efgh", "ij"}, viewLines(m))
}

func TestView_ScrollsToCursor(t *testing.T) {
	m := newEditor()
	m.SetSize(20, 2)
	m.SetSnapshot(document.FromText("one\ntwo\nthree\nfour\nfive"))
	require.Equal(t, []string{"one", "two"}, viewLines(m))

	m = press(m, tea.KeyCtrlEnd)
	require.Equal(t, []string{"four", "five"}, viewLines(m))

	m = press(m, tea.KeyCtrlHome)
	require.Equal(t, []string{"one", "two"}, viewLines(m))
}

func TestView_CaretIsDrawn(t *testing.T) {
	m := typeText(newEditor(), "ab")

	require.Contains(t, m.View(), cursorOn+" "+cursorOff)

	m.Blur()
	require.NotContains(t, m.View(), cursorOn)
}

func TestView_SelectionIsHighlighted(t *testing.T) {
	m := typeText(newEditor(), "abc")

	m = press(m, tea.KeyShiftLeft)
	m = press(m, tea.KeyShiftLeft)

	require.Contains(t, m.View(), selectionOn)
}

func TestCursorPosition(t *testing.T) {
	m := typeText(newEditor(), "日本")
	m = press(m, tea.KeyEnter)
	m = typeText(m, "ab")
	m = press(m, tea.KeyUp)

	line, col := m.CursorPosition()

	require.Equal(t, 1, line)
	require.Equal(t, 5, col)
}
