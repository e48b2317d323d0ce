// Package paths resolves where draftpad keeps its files.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// DBFileName is the database file created inside a data directory.
const DBFileName = "draftpad.db"

// DataDir returns ~/.draftpad, or ./.draftpad when the home directory is
// unknown.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".draftpad"
	}
	return filepath.Join(home, ".draftpad")
}

// DefaultDBPath returns the database path used when none is configured.
func DefaultDBPath() string {
	return filepath.Join(DataDir(), DBFileName)
}

// ResolveDBPath turns user input into a database file path.
//
//   - "" -> DefaultDBPath()
//   - "~/notes/pad.db" -> "$HOME/notes/pad.db"
//   - "/some/existing/dir" -> "/some/existing/dir/draftpad.db"
//   - "/some/dir/" -> "/some/dir/draftpad.db"
func ResolveDBPath(input string) string {
	if input == "" {
		return DefaultDBPath()
	}
	trailingSep := strings.HasSuffix(input, "/") || strings.HasSuffix(input, string(filepath.Separator))
	path := filepath.Clean(ExpandHome(input))

	if trailingSep {
		return filepath.Join(path, DBFileName)
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return filepath.Join(path, DBFileName)
	}
	return path
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// TracePath returns the default trace file next to the database.
func TracePath(dbPath string) string {
	return filepath.Join(filepath.Dir(dbPath), "traces.jsonl")
}

// DebugLogPath returns the debug log location next to the database.
func DebugLogPath(dbPath string) string {
	return filepath.Join(filepath.Dir(dbPath), "debug.log")
}
