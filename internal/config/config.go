// Package config provides configuration types and defaults for draftpad.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/zjrosen/draftpad/internal/flags"
	"github.com/zjrosen/draftpad/internal/log"
	"github.com/zjrosen/draftpad/internal/paths"
	"github.com/zjrosen/draftpad/internal/tracing"
)

// Config holds all configuration options for draftpad.
type Config struct {
	Storage       StorageConfig   `mapstructure:"storage"`
	Watch         bool            `mapstructure:"watch"`
	WatchDebounce time.Duration   `mapstructure:"watch_debounce"`
	UI            UIConfig        `mapstructure:"ui"`
	Theme         ThemeConfig     `mapstructure:"theme"`
	Flags         map[string]bool `mapstructure:"flags"`
	Tracing       tracing.Config  `mapstructure:"tracing"`
}

// StorageConfig selects where the document is persisted.
type StorageConfig struct {
	Backend string `mapstructure:"backend"` // "sqlite" (default) or "memory"
	Path    string `mapstructure:"path"`    // database file, default ~/.draftpad/draftpad.db
	Key     string `mapstructure:"key"`     // document key, default "editorContent"
}

// UIConfig holds user interface options.
type UIConfig struct {
	Placeholder   string        `mapstructure:"placeholder"`
	ToastDuration time.Duration `mapstructure:"toast_duration"`
	MarkdownStyle string        `mapstructure:"markdown_style"` // glamour style for `draftpad show`
}

// ThemeConfig overrides how inline styles are drawn.
type ThemeConfig struct {
	// Styles is keyed by inline style name (HEADING, BOLD, RED, UNDERLINE).
	Styles map[string]StyleConfig `mapstructure:"styles"`
}

// StyleConfig overrides individual attributes of one inline style.
// Nil booleans keep the built-in value.
type StyleConfig struct {
	Foreground string `mapstructure:"foreground" yaml:"foreground,omitempty"`
	Bold       *bool  `mapstructure:"bold" yaml:"bold,omitempty"`
	Underline  *bool  `mapstructure:"underline" yaml:"underline,omitempty"`
}

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// DefaultKey mirrors the key the original web editor stored its content under.
const DefaultKey = "editorContent"

// StyleNames are the inline styles the theme may override.
var StyleNames = []string{"HEADING", "BOLD", "RED", "UNDERLINE"}

// MarkdownStyles are the glamour styles accepted by ui.markdown_style.
var MarkdownStyles = []string{"auto", "dark", "light", "notty", "ascii", "dracula", "pink", "tokyo-night"}

var colorPattern = regexp.MustCompile(`^(#[0-9a-fA-F]{6}|#[0-9a-fA-F]{3}|[0-9]{1,3})$`)

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Storage: StorageConfig{
			Backend: BackendSQLite,
			Path:    paths.DefaultDBPath(),
			Key:     DefaultKey,
		},
		Watch:         true,
		WatchDebounce: 500 * time.Millisecond,
		UI: UIConfig{
			Placeholder:   "Start typing...",
			ToastDuration: 3 * time.Second,
			MarkdownStyle: "dark",
		},
		Flags:   flags.Defaults(),
		Tracing: tracing.DefaultConfig(),
	}
}

// Validate reports every problem found in c.
func (c Config) Validate() error {
	var errs []error

	switch c.Storage.Backend {
	case BackendSQLite:
		if strings.TrimSpace(c.Storage.Path) == "" {
			errs = append(errs, errors.New("storage.path is required for the sqlite backend"))
		}
	case BackendMemory:
	default:
		errs = append(errs, fmt.Errorf("storage.backend %q: must be %q or %q", c.Storage.Backend, BackendSQLite, BackendMemory))
	}
	if strings.TrimSpace(c.Storage.Key) == "" {
		errs = append(errs, errors.New("storage.key must not be empty"))
	}
	if c.WatchDebounce < 0 {
		errs = append(errs, fmt.Errorf("watch_debounce %s: must not be negative", c.WatchDebounce))
	}
	if c.UI.ToastDuration <= 0 {
		errs = append(errs, fmt.Errorf("ui.toast_duration %s: must be positive", c.UI.ToastDuration))
	}
	if !slices.Contains(MarkdownStyles, c.UI.MarkdownStyle) {
		errs = append(errs, fmt.Errorf("ui.markdown_style %q: must be one of %s", c.UI.MarkdownStyle, strings.Join(MarkdownStyles, ", ")))
	}
	if err := ValidateTheme(c.Theme); err != nil {
		errs = append(errs, err)
	}
	if err := c.Tracing.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ValidateTheme checks style names and colors.
func ValidateTheme(theme ThemeConfig) error {
	var errs []error
	for name, sc := range theme.Styles {
		if !slices.Contains(StyleNames, strings.ToUpper(name)) {
			errs = append(errs, fmt.Errorf("theme.styles.%s: unknown style (want one of %s)", name, strings.Join(StyleNames, ", ")))
			continue
		}
		if sc.Foreground != "" && !colorPattern.MatchString(sc.Foreground) {
			errs = append(errs, fmt.Errorf("theme.styles.%s.foreground %q: want #RRGGBB, #RGB or an ANSI number", name, sc.Foreground))
		}
	}
	return errors.Join(errs...)
}

// StyleOverride returns the override for an inline style, matching the
// name case-insensitively since viper lowercases map keys.
func (t ThemeConfig) StyleOverride(name string) (StyleConfig, bool) {
	for k, v := range t.Styles {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return StyleConfig{}, false
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Draftpad Configuration

# Where the document is kept
storage:
  backend: sqlite            # "sqlite" (default) or "memory" (nothing is kept on exit)
  # path: ~/.draftpad/draftpad.db
  key: editorContent         # key the document is stored under

# Notice when another draftpad saves to the same database
watch: true
watch_debounce: 500ms

# UI settings
ui:
  placeholder: "Start typing..."
  toast_duration: 3s
  markdown_style: dark       # glamour style used by 'draftpad show'

# Inline style overrides
# theme:
#   styles:
#     RED:
#       foreground: "#FF5F5F"
#     HEADING:
#       bold: true
#       underline: true

# Feature flags
flags:
  autoformat: true           # "# ", "* ", "** ", "*** " turn into styles as you type
  mouse: true                # clickable SAVE button

# OpenTelemetry spans for loads, saves and autoformat rules (also on with --debug)
tracing:
  enabled: false
  exporter: file             # "file" (JSONL, default traces.jsonl next to the database), "stdout" or "none"
  sample_rate: 1.0
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
