package editor

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"github.com/zjrosen/draftpad/internal/document"
	"github.com/zjrosen/draftpad/internal/ui/styles"
)

// Raw SGR codes so the caret and selection survive lipgloss profile
// detection and can be located after wrapping.
const (
	cursorOn     = "\x1b[7m"
	cursorOff    = "\x1b[27m"
	selectionOn  = "\x1b[48;5;238;38;5;255m"
	selectionOff = "\x1b[49;39m"
)

// View renders the visible part of the document.
func (m Model) View() string {
	if m.snap.IsEmpty() {
		return m.renderEmpty()
	}
	rows, _ := m.layout()
	if m.height > 0 {
		end := min(m.offset+m.height, len(rows))
		start := min(m.offset, end)
		rows = rows[start:end]
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderEmpty() string {
	text := m.placeholder
	if m.width > 1 {
		text = runewidth.Truncate(text, m.width-1, "…")
	}
	var b strings.Builder
	if m.focused {
		b.WriteString(cursorOn + " " + cursorOff)
	}
	b.WriteString(styles.PlaceholderStyle.Render(text))
	return b.String()
}

// layout renders every block into display rows and reports the row
// holding the caret.
func (m Model) layout() ([]string, int) {
	start, end := m.snap.SelectionStart(), m.snap.SelectionEnd()
	startIdx, endIdx := m.snap.IndexOf(start.Key), m.snap.IndexOf(end.Key)
	focus := m.snap.Selection().Focus
	hasSelection := startIdx >= 0 && endIdx >= 0 && start != end

	var rows []string
	cursorRow := 0
	for i, b := range m.snap.Blocks() {
		selFrom, selTo := 0, 0
		if hasSelection && i >= startIdx && i <= endIdx {
			selTo = b.Len()
			if i == startIdx {
				selFrom = start.Offset
			}
			if i == endIdx {
				selTo = end.Offset
			}
		}

		cursor := -1
		if m.focused && b.Key() == focus.Key {
			cursor = min(max(focus.Offset, 0), b.Len())
		}

		wrapped := wrapLine(m.renderBlock(b, selFrom, selTo, cursor), m.width)
		if cursor >= 0 {
			cursorRow = len(rows) + len(wrapped) - 1
			for j, row := range wrapped {
				if strings.Contains(row, cursorOn) {
					cursorRow = len(rows) + j
					break
				}
			}
		}
		rows = append(rows, wrapped...)
	}
	return rows, cursorRow
}

// renderBlock draws one block, grouping runs of equally styled text.
func (m Model) renderBlock(b document.Block, selFrom, selTo, cursor int) string {
	runes := b.Runes()
	selected := func(i int) bool { return i >= selFrom && i < selTo }

	var out strings.Builder
	for i := 0; i < len(runes); {
		set := b.StyleAt(i)
		if i == cursor {
			out.WriteString(cursorOn + m.inline.For(set).Render(string(runes[i])) + cursorOff)
			i++
			continue
		}

		j := i + 1
		for j < len(runes) && j != cursor && selected(j) == selected(i) && b.StyleAt(j).Equal(set) {
			j++
		}
		text := m.inline.For(set).Render(string(runes[i:j]))
		if selected(i) {
			text = selectionOn + text + selectionOff
		}
		out.WriteString(text)
		i = j
	}
	if cursor == len(runes) {
		out.WriteString(cursorOn + " " + cursorOff)
	}
	return out.String()
}

// wrapLine soft-wraps at word boundaries, then hard-wraps words longer
// than the width.
func wrapLine(line string, width int) []string {
	if width <= 0 {
		return []string{line}
	}
	return strings.Split(wrap.String(wordwrap.String(line, width), width), "\n")
}

func (m *Model) ensureCursorVisible() {
	if m.height <= 0 {
		return
	}
	_, row := m.layout()
	if row < m.offset {
		m.offset = row
	}
	if row >= m.offset+m.height {
		m.offset = row - m.height + 1
	}
}

// CursorPosition returns the caret's 1-based line and display column.
func (m Model) CursorPosition() (line, col int) {
	focus := m.snap.Selection().Focus
	idx := m.snap.IndexOf(focus.Key)
	b, ok := m.snap.BlockAt(idx)
	if !ok {
		return 0, 0
	}
	runes := b.Runes()
	offset := min(max(focus.Offset, 0), len(runes))
	return idx + 1, runewidth.StringWidth(string(runes[:offset])) + 1
}
