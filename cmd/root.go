package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/draftpad/internal/app"
	"github.com/zjrosen/draftpad/internal/config"
	"github.com/zjrosen/draftpad/internal/flags"
	"github.com/zjrosen/draftpad/internal/log"
	"github.com/zjrosen/draftpad/internal/paths"
	"github.com/zjrosen/draftpad/internal/store"
	"github.com/zjrosen/draftpad/internal/tracing"
	"github.com/zjrosen/draftpad/internal/watcher"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in the editor.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

const localConfigPath = ".draftpad/config.yaml"

var (
	version = "dev"
	cfgFile string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:          "draftpad",
	Short:        "A rich-text scratchpad for the terminal",
	Long:         `A single-document rich-text editor. Type "# ", "* ", "** " or "*** " at the start of a line for heading, bold, red or underlined text; ctrl+s saves.`,
	Version:      version,
	SilenceUsage: true,
	RunE:         runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/draftpad/config.yaml)")
	pf.String("db", "", "database file or directory (default: ~/.draftpad/draftpad.db)")
	pf.String("key", "", "key the document is stored under")
	pf.Bool("ephemeral", false, "keep the document in memory only")
	pf.Bool("debug", false, "write a debug log and enable the log overlay (ctrl+x)")

	_ = viper.BindPFlag("storage.path", pf.Lookup("db"))
	_ = viper.BindPFlag("storage.key", pf.Lookup("key"))
	_ = viper.BindPFlag("debug", pf.Lookup("debug"))
	_ = viper.BindEnv("debug", "DRAFTPAD_DEBUG")
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("storage.backend", defaults.Storage.Backend)
	viper.SetDefault("storage.path", defaults.Storage.Path)
	viper.SetDefault("storage.key", defaults.Storage.Key)
	viper.SetDefault("watch", defaults.Watch)
	viper.SetDefault("watch_debounce", defaults.WatchDebounce)
	viper.SetDefault("ui.placeholder", defaults.UI.Placeholder)
	viper.SetDefault("ui.toast_duration", defaults.UI.ToastDuration)
	viper.SetDefault("ui.markdown_style", defaults.UI.MarkdownStyle)
	viper.SetDefault("flags", defaults.Flags)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .draftpad/config.yaml (current directory)
		// 2. ~/.config/draftpad/config.yaml (user config)
		if _, err := os.Stat(localConfigPath); err == nil {
			viper.SetConfigFile(localConfigPath)
		} else {
			viper.AddConfigPath(userConfigDir())
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create the default user config
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			defaultPath := filepath.Join(userConfigDir(), "config.yaml")
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

func userConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Dir(localConfigPath)
	}
	return filepath.Join(home, ".config", "draftpad")
}

// configFilePath returns the config file in use, or where one would be
// created.
func configFilePath() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	return filepath.Join(userConfigDir(), "config.yaml")
}

// resolveConfig applies command-line overrides and validates the result.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	c := cfg
	if ephemeral, _ := cmd.Flags().GetBool("ephemeral"); ephemeral {
		c.Storage.Backend = config.BackendMemory
	}
	c.Storage.Path = paths.ResolveDBPath(c.Storage.Path)
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("invalid configuration: %w", err)
	}
	return c, nil
}

// startDebugLog enables file logging when --debug or DRAFTPAD_DEBUG is set.
// The returned function closes the log.
func startDebugLog(c config.Config) (func(), error) {
	if !viper.GetBool("debug") {
		return func() {}, nil
	}
	logPath := paths.DebugLogPath(c.Storage.Path)
	if err := os.MkdirAll(filepath.Dir(logPath), 0o700); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	cleanup, err := log.Init(logPath)
	if err != nil {
		return nil, err
	}
	log.Info(log.CatApp, "Starting", "version", version, "config", viper.ConfigFileUsed(), "db", c.Storage.Path)
	return cleanup, nil
}

// startTracing turns on spans when tracing.enabled or --debug is set. The
// file exporter defaults to traces.jsonl next to the database.
func startTracing(c config.Config) (*tracing.Provider, error) {
	tc := c.Tracing
	if viper.GetBool("debug") {
		tc.Enabled = true
	}
	if tc.FilePath == "" {
		tc.FilePath = paths.TracePath(c.Storage.Path)
	}
	provider, err := tracing.NewProvider(tc)
	if err != nil {
		return nil, fmt.Errorf("starting tracing: %w", err)
	}
	if provider.Enabled() {
		log.Info(log.CatApp, "Tracing enabled", "exporter", tc.Exporter, "file", tc.FilePath)
	}
	return provider, nil
}

// openStore opens the configured backend and wraps it in a document store.
// Callers close the returned KV.
func openStore(c config.Config) (*store.DocumentStore, store.KV, error) {
	kv, err := store.Open(c.Storage.Backend, c.Storage.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s store: %w", c.Storage.Backend, err)
	}
	return store.NewDocumentStore(kv, c.Storage.Key), kv, nil
}

// startWatcher watches the database for writes by other processes.
// Failures are logged and leave the editor without change notices.
func startWatcher(c config.Config) *watcher.Watcher {
	if !c.Watch || c.Storage.Backend != config.BackendSQLite {
		return nil
	}
	w, err := watcher.New(watcher.Config{Path: c.Storage.Path, Debounce: c.WatchDebounce})
	if err != nil {
		log.ErrorErr(log.CatWatcher, "Creating watcher failed", err)
		return nil
	}
	if err := w.Start(); err != nil {
		log.ErrorErr(log.CatWatcher, "Starting watcher failed", err)
		_ = w.Stop()
		return nil
	}
	return w
}

func runApp(cmd *cobra.Command, _ []string) error {
	c, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	closeLog, err := startDebugLog(c)
	if err != nil {
		return err
	}
	defer closeLog()

	provider, err := startTracing(c)
	if err != nil {
		return err
	}
	defer func() {
		if shutdownErr := provider.Shutdown(context.Background()); shutdownErr != nil {
			log.ErrorErr(log.CatApp, "Flushing traces failed", shutdownErr)
		}
	}()

	docs, kv, err := openStore(c)
	if err != nil {
		return err
	}
	defer func() { _ = kv.Close() }()
	docs.WithTracer(provider.Tracer())

	featureFlags := flags.New(c.Flags)
	zone.NewGlobal()

	model := app.New(app.Options{
		Store:     docs,
		Config:    c,
		Flags:     featureFlags,
		Watcher:   startWatcher(c),
		DebugMode: viper.GetBool("debug"),
		Tracer:    provider.Tracer(),
	})

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if featureFlags.Enabled(flags.FlagMouse) {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(&model, opts...)

	_, err = p.Run()

	// Clean up watcher resources
	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}

	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
