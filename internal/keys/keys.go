// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// EditorKeyMap defines the keys the editor handles itself.
type EditorKeyMap struct {
	// Movement
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	LineStart key.Binding
	LineEnd   key.Binding
	DocStart  key.Binding
	DocEnd    key.Binding

	// Selection
	SelectLeft  key.Binding
	SelectRight key.Binding
	SelectAll   key.Binding

	// Editing
	Newline   key.Binding
	Backspace key.Binding
	Delete    key.Binding

	// Inline styles
	Bold      key.Binding
	Red       key.Binding
	Underline key.Binding
	Heading   key.Binding
}

// AppKeyMap defines the shell-level keys.
type AppKeyMap struct {
	Save key.Binding
	Logs key.Binding
	Help key.Binding
	Quit key.Binding
}

// Editor holds the default editor bindings.
var Editor = EditorKeyMap{
	Left: key.NewBinding(
		key.WithKeys("left"),
		key.WithHelp("←", "move left"),
	),
	Right: key.NewBinding(
		key.WithKeys("right"),
		key.WithHelp("→", "move right"),
	),
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "previous line"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "next line"),
	),
	LineStart: key.NewBinding(
		key.WithKeys("home", "ctrl+a"),
		key.WithHelp("home", "line start"),
	),
	LineEnd: key.NewBinding(
		key.WithKeys("end", "ctrl+e"),
		key.WithHelp("end", "line end"),
	),
	DocStart: key.NewBinding(
		key.WithKeys("ctrl+home", "pgup"),
		key.WithHelp("ctrl+home", "document start"),
	),
	DocEnd: key.NewBinding(
		key.WithKeys("ctrl+end", "pgdown"),
		key.WithHelp("ctrl+end", "document end"),
	),
	SelectLeft: key.NewBinding(
		key.WithKeys("shift+left"),
		key.WithHelp("shift+←", "extend selection"),
	),
	SelectRight: key.NewBinding(
		key.WithKeys("shift+right"),
		key.WithHelp("shift+→", "extend selection"),
	),
	SelectAll: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "select all"),
	),
	Newline: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "new line"),
	),
	Backspace: key.NewBinding(
		key.WithKeys("backspace", "ctrl+h"),
		key.WithHelp("backspace", "delete back"),
	),
	Delete: key.NewBinding(
		key.WithKeys("delete", "ctrl+d"),
		key.WithHelp("delete", "delete forward"),
	),
	Bold: key.NewBinding(
		key.WithKeys("ctrl+b"),
		key.WithHelp("ctrl+b", "bold"),
	),
	Red: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "red"),
	),
	Underline: key.NewBinding(
		key.WithKeys("ctrl+u"),
		key.WithHelp("ctrl+u", "underline"),
	),
	Heading: key.NewBinding(
		key.WithKeys("ctrl+t"),
		key.WithHelp("ctrl+t", "heading"),
	),
}

// App holds the default shell bindings.
var App = AppKeyMap{
	Save: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "save"),
	),
	Logs: key.NewBinding(
		key.WithKeys("ctrl+x"),
		key.WithHelp("ctrl+x", "logs"),
	),
	Help: key.NewBinding(
		key.WithKeys("ctrl+g"),
		key.WithHelp("ctrl+g", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "ctrl+q"),
		key.WithHelp("ctrl+q", "quit"),
	),
}

// ShortHelp returns keybindings for the short help view.
func (k AppKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Save, k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k AppKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Save, k.Logs, k.Help, k.Quit},                                          // General
		{Editor.Bold, Editor.Red, Editor.Underline, Editor.Heading},               // Styles
		{Editor.LineStart, Editor.LineEnd, Editor.DocStart, Editor.DocEnd},        // Movement
		{Editor.SelectLeft, Editor.SelectRight, Editor.SelectAll, Editor.Newline}, // Editing
	}
}
