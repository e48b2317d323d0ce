// Package app contains the root application model.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/draftpad/internal/autoformat"
	"github.com/zjrosen/draftpad/internal/config"
	"github.com/zjrosen/draftpad/internal/document"
	"github.com/zjrosen/draftpad/internal/flags"
	"github.com/zjrosen/draftpad/internal/keys"
	"github.com/zjrosen/draftpad/internal/log"
	"github.com/zjrosen/draftpad/internal/pubsub"
	"github.com/zjrosen/draftpad/internal/store"
	"github.com/zjrosen/draftpad/internal/ui/editor"
	"github.com/zjrosen/draftpad/internal/ui/modal"
	"github.com/zjrosen/draftpad/internal/ui/shared/logoverlay"
	"github.com/zjrosen/draftpad/internal/ui/styles"
	"github.com/zjrosen/draftpad/internal/ui/toaster"
	"github.com/zjrosen/draftpad/internal/watcher"
)

const saveZoneID = "draftpad-save"

// SavedMessage acknowledges a successful save.
const SavedMessage = "Content saved!"

// Options wires the application to its collaborators.
type Options struct {
	Store  *store.DocumentStore
	Config config.Config
	Flags  *flags.Registry

	// Watcher, when set, reports writes to the database made by other
	// processes. The application stops it on Close.
	Watcher *watcher.Watcher

	// DebugMode enables the log overlay (ctrl+x).
	DebugMode bool

	// Tracer, when set, records a span for every autoformat evaluation.
	Tracer trace.Tracer
}

// Model is the root application state.
type Model struct {
	store   *store.DocumentStore
	editor  editor.Model
	toaster toaster.Model
	help    help.Model

	// Content as last loaded or saved, and its stored form.
	saved    document.Snapshot
	savedRaw string
	// Last stored value an external-change notice was shown for.
	noticedRaw string
	loaded     bool

	width  int
	height int

	// Shown when quitting with unsaved changes.
	quitModal   modal.Model
	confirmQuit bool

	debugMode   bool
	logOverlay  logoverlay.Model
	logListener *log.LogListener

	cancel          context.CancelFunc
	watcherHandle   *watcher.Watcher
	watcherListener *pubsub.ContinuousListener[watcher.Change]
}

type loadedMsg struct {
	snap          document.Snapshot
	raw           string
	err           error
	quarantineErr error
}

type savedMsg struct {
	snap document.Snapshot
	raw  string
	err  error
}

type storedMsg struct {
	raw string
	err error
}

// New creates the application model. The document is loaded by Init.
func New(opts Options) Model {
	ctx, cancel := context.WithCancel(context.Background())

	inline := styles.DefaultInline().WithOverrides(themeOverrides(opts.Config.Theme))
	ed := editor.New(editor.Config{
		Engine:      autoformat.Default().WithTracer(opts.Tracer),
		Autoformat:  opts.Flags.Enabled(flags.FlagAutoformat),
		Inline:      inline,
		Placeholder: opts.Config.UI.Placeholder,
	})

	var watcherListener *pubsub.ContinuousListener[watcher.Change]
	if opts.Watcher != nil {
		watcherListener = pubsub.NewContinuousListener(ctx, opts.Watcher.Broker())
	}

	var logListener *log.LogListener
	if opts.DebugMode {
		logListener = log.NewListener(ctx)
	}

	return Model{
		store:           opts.Store,
		editor:          ed,
		toaster:         toaster.New(opts.Config.UI.ToastDuration),
		help:            help.New(),
		saved:           ed.Snapshot(),
		debugMode:       opts.DebugMode,
		logOverlay:      logoverlay.New(),
		logListener:     logListener,
		cancel:          cancel,
		watcherHandle:   opts.Watcher,
		watcherListener: watcherListener,
	}
}

// Init implements tea.Model. It loads the document and starts listening
// for watcher and log events.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{loadCmd(m.store)}
	if m.watcherListener != nil {
		cmds = append(cmds, m.watcherListener.Listen())
	}
	if m.logListener != nil {
		cmds = append(cmds, m.logListener.Listen())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.logOverlay.SetSize(msg.Width, msg.Height)
		m.quitModal.SetSize(msg.Width, msg.Height)
		m.resize()
		return m, nil

	case loadedMsg:
		return m.handleLoaded(msg)

	case savedMsg:
		return m.handleSaved(msg)

	case storedMsg:
		return m.handleStored(msg)

	case pubsub.Event[watcher.Change]:
		if m.watcherListener == nil {
			return m, nil
		}
		log.Debug(log.CatWatcher, "Database changed", "path", msg.Payload.Path)
		return m, tea.Batch(storedCmd(m.store), m.watcherListener.Listen())

	case log.LogEvent:
		m.logOverlay.Append(msg.Payload)
		if m.logListener == nil {
			return m, nil
		}
		return m, m.logListener.Listen()

	case toaster.DismissMsg:
		m.toaster = m.toaster.Update(msg)
		return m, nil

	case logoverlay.CloseMsg:
		return m, nil

	case modal.ConfirmMsg:
		log.Info(log.CatApp, "Quit discarding changes")
		return m, tea.Quit

	case modal.CancelMsg:
		m.confirmQuit = false
		return m, nil

	case editor.ChangedMsg:
		return m, nil

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionRelease && msg.Button == tea.MouseButtonLeft {
			if z := zone.Get(saveZoneID); z != nil && z.InBounds(msg) {
				return m.save()
			}
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.debugMode && key.Matches(msg, keys.App.Logs) {
		m.logOverlay.Toggle()
		return m, nil
	}
	if m.logOverlay.Visible() {
		var cmd tea.Cmd
		m.logOverlay, cmd = m.logOverlay.Update(msg)
		return m, cmd
	}

	if m.confirmQuit {
		// A second quit key discards without asking again.
		if key.Matches(msg, keys.App.Quit) {
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.quitModal, cmd = m.quitModal.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, keys.App.Quit):
		if m.Modified() {
			m.quitModal = modal.New(modal.Config{
				Title:          "Unsaved changes",
				Message:        "Quit without saving? Press ctrl+s first to keep your edits.",
				ConfirmLabel:   "Quit",
				CancelLabel:    "Keep editing",
				ConfirmVariant: modal.ButtonDanger,
			})
			m.quitModal.SetSize(m.width, m.height)
			m.confirmQuit = true
			return m, nil
		}
		log.Info(log.CatApp, "Quit")
		return m, tea.Quit
	case key.Matches(msg, keys.App.Save):
		return m.save()
	case key.Matches(msg, keys.App.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
		return m, nil
	}

	if !m.loaded {
		return m, nil
	}
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m Model) handleLoaded(msg loadedMsg) (tea.Model, tea.Cmd) {
	m.loaded = true
	m.editor.SetSnapshot(msg.snap)
	m.saved = msg.snap
	m.savedRaw = msg.raw

	var cmd tea.Cmd
	switch {
	case errors.Is(msg.err, store.ErrCorrupt) && msg.quarantineErr != nil:
		log.ErrorErr(log.CatApp, "Could not preserve corrupt document", msg.quarantineErr)
		m.toaster, cmd = m.toaster.Show("Stored document is unreadable and could not be backed up", toaster.StyleError)
	case errors.Is(msg.err, store.ErrCorrupt):
		m.toaster, cmd = m.toaster.Show(
			fmt.Sprintf("Stored document is unreadable, kept a copy as %q", m.store.QuarantineKey()),
			toaster.StyleWarn,
		)
	case msg.err != nil:
		log.ErrorErr(log.CatApp, "Load failed", msg.err)
		m.toaster, cmd = m.toaster.Show("Could not load document: "+msg.err.Error(), toaster.StyleError)
	}
	return m, cmd
}

func (m Model) handleSaved(msg savedMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if msg.err != nil {
		log.ErrorErr(log.CatApp, "Save failed", msg.err)
		m.toaster, cmd = m.toaster.Show("Save failed: "+msg.err.Error(), toaster.StyleError)
		return m, cmd
	}
	m.saved = msg.snap
	m.savedRaw = msg.raw
	m.toaster, cmd = m.toaster.Show(SavedMessage, toaster.StyleSuccess)
	return m, cmd
}

// handleStored reacts to the stored value after a database write. Writes
// that leave our own last save in place are ignored.
func (m Model) handleStored(msg storedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		log.ErrorErr(log.CatWatcher, "Reading stored document failed", msg.err)
		return m, nil
	}
	if msg.raw == m.savedRaw || msg.raw == m.noticedRaw {
		return m, nil
	}
	m.noticedRaw = msg.raw
	log.Info(log.CatWatcher, "Stored document changed externally", "key", m.store.Key())
	var cmd tea.Cmd
	m.toaster, cmd = m.toaster.Show("Stored document changed", toaster.StyleInfo)
	return m, cmd
}

func (m Model) save() (tea.Model, tea.Cmd) {
	if !m.loaded {
		return m, nil
	}
	return m, saveCmd(m.store, m.editor.Snapshot())
}

func loadCmd(s *store.DocumentStore) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		snap, err := s.Load(ctx)

		var corrupt *store.CorruptError
		if errors.As(err, &corrupt) {
			return loadedMsg{
				snap:          document.Empty(),
				raw:           corrupt.Raw,
				err:           err,
				quarantineErr: s.Quarantine(ctx, corrupt.Raw),
			}
		}
		if err != nil {
			return loadedMsg{snap: document.Empty(), err: err}
		}

		raw, _, err := s.Raw(ctx)
		if err != nil {
			log.Warn(log.CatApp, "Could not read stored value", "error", err)
		}
		return loadedMsg{snap: snap, raw: raw}
	}
}

func saveCmd(s *store.DocumentStore, snap document.Snapshot) tea.Cmd {
	return func() tea.Msg {
		raw, err := s.Save(context.Background(), snap)
		return savedMsg{snap: snap, raw: raw, err: err}
	}
}

func storedCmd(s *store.DocumentStore) tea.Cmd {
	return func() tea.Msg {
		raw, _, err := s.Raw(context.Background())
		return storedMsg{raw: raw, err: err}
	}
}

// Modified reports whether the editor content differs from the last load
// or save.
func (m Model) Modified() bool {
	if !m.loaded {
		return false
	}
	return !m.editor.Snapshot().ContentEqual(m.saved)
}

// Snapshot returns the editor's current document.
func (m Model) Snapshot() document.Snapshot {
	return m.editor.Snapshot()
}

// resize gives the editor whatever the header, footer and border leave.
func (m *Model) resize() {
	if m.width == 0 || m.height == 0 {
		return
	}
	body := m.height - 1 - lipgloss.Height(m.renderFooter())
	m.editor.SetSize(max(m.width-2, 1), max(body-2, 1))
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	footer := m.renderFooter()
	bodyHeight := max(m.height-1-lipgloss.Height(footer), 3)
	content := styles.MutedStyle.Render("Loading…")
	if m.loaded {
		content = m.editor.View()
	}
	body := styles.RenderPanel(content, m.store.Key(), m.width, bodyHeight, m.editor.Focused())
	view := lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), body, footer)

	if m.toaster.Visible() {
		view = m.toaster.Overlay(view, m.width, m.height)
	}
	if m.confirmQuit {
		view = m.quitModal.Overlay(view)
	}
	if m.debugMode && m.logOverlay.Visible() {
		view = m.logOverlay.Overlay(view)
	}
	return zone.Scan(view)
}

func (m Model) renderHeader() string {
	left := styles.TitleStyle.Render("draftpad")
	if m.Modified() {
		left += " " + styles.ModifiedStyle.Render("● modified")
	}
	button := styles.SaveButtonStyle.Render("SAVE")
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(button), 1)
	return left + strings.Repeat(" ", gap) + zone.Mark(saveZoneID, button)
}

func (m Model) renderFooter() string {
	line, col := m.editor.CursorPosition()
	status := styles.MutedStyle.Render(fmt.Sprintf("Ln %d, Col %d", line, col))
	helpView := m.help.View(keys.App)
	if m.help.ShowAll {
		return lipgloss.JoinVertical(lipgloss.Left, helpView, status)
	}
	gap := max(m.width-lipgloss.Width(helpView)-lipgloss.Width(status), 1)
	return helpView + strings.Repeat(" ", gap) + status
}

func themeOverrides(theme config.ThemeConfig) map[string]styles.Override {
	out := make(map[string]styles.Override, len(theme.Styles))
	for name, sc := range theme.Styles {
		out[name] = styles.Override{
			Foreground: sc.Foreground,
			Bold:       sc.Bold,
			Underline:  sc.Underline,
		}
	}
	return out
}

// Close releases resources held by the application.
func (m *Model) Close() error {
	if m.cancel != nil {
		m.cancel()
	}
	if m.watcherHandle != nil {
		if err := m.watcherHandle.Stop(); err != nil {
			return err
		}
	}
	return nil
}
