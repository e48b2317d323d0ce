// Package editor is the rich-text editing component.
//
// It owns the current document snapshot and routes keystrokes through the
// autoformat engine before falling back to plain insertion. Every edit
// replaces the snapshot with a new one; the previous value is never touched.
package editor

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/draftpad/internal/autoformat"
	"github.com/zjrosen/draftpad/internal/document"
	"github.com/zjrosen/draftpad/internal/keys"
	"github.com/zjrosen/draftpad/internal/log"
	"github.com/zjrosen/draftpad/internal/ui/styles"
)

// DefaultPlaceholder is shown while the document is empty.
const DefaultPlaceholder = "Start typing..."

// Config configures a new editor.
type Config struct {
	// Engine runs the markdown-like shortcuts. Nil uses autoformat.Default().
	Engine *autoformat.Engine

	// Autoformat enables the engine. When false every keystroke inserts text.
	Autoformat bool

	// Inline maps style names to terminal styles. The zero value uses
	// styles.DefaultInline().
	Inline styles.InlineTable

	// Placeholder replaces DefaultPlaceholder when set.
	Placeholder string
}

// ChangedMsg is sent after an edit changes the document content.
type ChangedMsg struct {
	Snapshot document.Snapshot
}

// Model holds the editor state.
type Model struct {
	snap        document.Snapshot
	engine      *autoformat.Engine
	autoformat  bool
	inline      styles.InlineTable
	placeholder string

	width   int
	height  int
	focused bool
	offset  int // first visible display row
}

// New creates an editor holding an empty document.
func New(cfg Config) Model {
	engine := cfg.Engine
	if engine == nil {
		engine = autoformat.Default()
	}
	inline := cfg.Inline
	if inline.IsZero() {
		inline = styles.DefaultInline()
	}
	placeholder := cfg.Placeholder
	if placeholder == "" {
		placeholder = DefaultPlaceholder
	}
	return Model{
		snap:        document.Empty(),
		engine:      engine,
		autoformat:  cfg.Autoformat,
		inline:      inline,
		placeholder: placeholder,
		focused:     true,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.focused {
		return m, nil
	}

	before := m.snap
	m.snap = m.handleKey(keyMsg)
	m.ensureCursorVisible()

	if before.ContentEqual(m.snap) {
		return m, nil
	}
	snap := m.snap
	return m, func() tea.Msg { return ChangedMsg{Snapshot: snap} }
}

func (m Model) handleKey(msg tea.KeyMsg) document.Snapshot {
	s := m.snap
	k := keys.Editor

	if msg.Paste {
		return s.InsertText(normalizeNewlines(string(msg.Runes)))
	}

	switch {
	case key.Matches(msg, k.Bold):
		return s.ToggleInlineStyle(document.StyleBold)
	case key.Matches(msg, k.Red):
		return s.ToggleInlineStyle(document.StyleRed)
	case key.Matches(msg, k.Underline):
		return s.ToggleInlineStyle(document.StyleUnderline)
	case key.Matches(msg, k.Heading):
		return s.ToggleInlineStyle(document.StyleHeading)
	case key.Matches(msg, k.Newline):
		return s.SplitBlock()
	case key.Matches(msg, k.Backspace):
		return s.Backspace()
	case key.Matches(msg, k.Delete):
		return s.Delete()
	case key.Matches(msg, k.SelectLeft):
		return s.ExtendLeft()
	case key.Matches(msg, k.SelectRight):
		return s.ExtendRight()
	case key.Matches(msg, k.SelectAll):
		return s.SelectAll()
	case key.Matches(msg, k.Left):
		return s.MoveLeft()
	case key.Matches(msg, k.Right):
		return s.MoveRight()
	case key.Matches(msg, k.Up):
		return s.MoveUp()
	case key.Matches(msg, k.Down):
		return s.MoveDown()
	case key.Matches(msg, k.LineStart):
		return s.MoveLineStart()
	case key.Matches(msg, k.LineEnd):
		return s.MoveLineEnd()
	case key.Matches(msg, k.DocStart):
		return s.MoveDocStart()
	case key.Matches(msg, k.DocEnd):
		return s.MoveDocEnd()
	}

	switch msg.Type {
	case tea.KeySpace:
		return m.typeChars(" ")
	case tea.KeyTab:
		return m.typeChars("\t")
	case tea.KeyRunes:
		if len(msg.Runes) == 0 {
			return s
		}
		return m.typeChars(string(msg.Runes))
	}
	return s
}

// typeChars inserts typed characters, giving the autoformat engine the
// first chance to consume them.
func (m Model) typeChars(chars string) document.Snapshot {
	s := m.snap
	if !m.autoformat {
		return s.InsertText(chars)
	}

	if res := m.engine.BeforeInput(s, chars); res.Handled() {
		log.Debug(log.CatUI, "autoformat consumed input", "rule", res.Rule.Marker)
		return res.Snapshot.CollapseToEnd()
	}
	if chars == " " {
		if res := m.engine.OnBoundaryKey(s); res.Handled() {
			log.Debug(log.CatUI, "autoformat consumed space", "rule", res.Rule.Marker)
			return res.Snapshot.CollapseToEnd()
		}
	}
	return s.InsertText(chars)
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// Snapshot returns the current document.
func (m Model) Snapshot() document.Snapshot {
	return m.snap
}

// SetSnapshot replaces the document, e.g. after a load.
func (m *Model) SetSnapshot(s document.Snapshot) {
	m.snap = s
	m.offset = 0
	m.ensureCursorVisible()
}

// SetAutoformat enables or disables the shortcut engine.
func (m *Model) SetAutoformat(enabled bool) {
	m.autoformat = enabled
}

// Autoformat reports whether shortcuts are enabled.
func (m Model) Autoformat() bool {
	return m.autoformat
}

// SetSize sets the display area in cells.
func (m *Model) SetSize(width, height int) {
	m.width, m.height = width, height
	m.ensureCursorVisible()
}

// Focus enables key handling and the caret.
func (m *Model) Focus() { m.focused = true }

// Blur disables key handling and hides the caret.
func (m *Model) Blur() { m.focused = false }

// Focused reports whether the editor receives keys.
func (m Model) Focused() bool { return m.focused }
