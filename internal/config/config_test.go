package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestDefaults_AreValid(t *testing.T) {
	cfg := Defaults()

	require.NoError(t, cfg.Validate())
	require.Equal(t, BackendSQLite, cfg.Storage.Backend)
	require.Equal(t, "editorContent", cfg.Storage.Key)
	require.Equal(t, "Start typing...", cfg.UI.Placeholder)
	require.True(t, cfg.Flags["autoformat"])
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{name: "unknown backend", mutate: func(c *Config) { c.Storage.Backend = "redis" }, errMsg: `storage.backend "redis"`},
		{name: "sqlite without path", mutate: func(c *Config) { c.Storage.Path = " " }, errMsg: "storage.path is required"},
		{name: "memory without path is fine", mutate: func(c *Config) { c.Storage.Backend = BackendMemory; c.Storage.Path = "" }},
		{name: "empty key", mutate: func(c *Config) { c.Storage.Key = "" }, errMsg: "storage.key must not be empty"},
		{name: "negative debounce", mutate: func(c *Config) { c.WatchDebounce = -time.Second }, errMsg: "watch_debounce"},
		{name: "zero toast", mutate: func(c *Config) { c.UI.ToastDuration = 0 }, errMsg: "ui.toast_duration"},
		{name: "bad markdown style", mutate: func(c *Config) { c.UI.MarkdownStyle = "neon" }, errMsg: "ui.markdown_style"},
		{name: "unknown theme style", mutate: func(c *Config) {
			c.Theme.Styles = map[string]StyleConfig{"italic": {}}
		}, errMsg: "theme.styles.italic: unknown style"},
		{name: "bad color", mutate: func(c *Config) {
			c.Theme.Styles = map[string]StyleConfig{"red": {Foreground: "crimson"}}
		}, errMsg: `theme.styles.red.foreground "crimson"`},
		{name: "unknown trace exporter", mutate: func(c *Config) { c.Tracing.Exporter = "otlp" }, errMsg: `tracing.exporter "otlp"`},
		{name: "trace sample rate", mutate: func(c *Config) { c.Tracing.SampleRate = 1.5 }, errMsg: "tracing.sample_rate"},
		{name: "ansi color", mutate: func(c *Config) {
			c.Theme.Styles = map[string]StyleConfig{"red": {Foreground: "196"}}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.errMsg)
		})
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	cfg := Defaults()
	cfg.Storage.Key = ""
	cfg.UI.ToastDuration = 0

	err := cfg.Validate()

	require.ErrorContains(t, err, "storage.key")
	require.ErrorContains(t, err, "ui.toast_duration")
}

func TestStyleOverride_IgnoresCase(t *testing.T) {
	theme := ThemeConfig{Styles: map[string]StyleConfig{"red": {Foreground: "#FF0000"}}}

	sc, ok := theme.StyleOverride("RED")
	require.True(t, ok)
	require.Equal(t, "#FF0000", sc.Foreground)

	_, ok = theme.StyleOverride("BOLD")
	require.False(t, ok)
}

func TestDefaultConfigTemplate_LoadsThroughViper(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())
	cfg := Defaults()
	require.NoError(t, v.Unmarshal(&cfg))

	require.NoError(t, cfg.Validate())
	require.Equal(t, 500*time.Millisecond, cfg.WatchDebounce)
	require.Equal(t, 3*time.Second, cfg.UI.ToastDuration)
	require.Equal(t, DefaultKey, cfg.Storage.Key)
	require.False(t, cfg.Tracing.Enabled)
	require.Equal(t, "file", cfg.Tracing.Exporter)
}

func TestWriteDefaultConfig_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "draftpad", "config.yaml")

	require.NoError(t, WriteDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, DefaultConfigTemplate(), string(data))
}
