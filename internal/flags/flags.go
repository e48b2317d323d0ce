// Package flags holds feature switches read from the flags section of the
// config. Unknown names are off.
package flags

import (
	"maps"

	"github.com/zjrosen/draftpad/internal/log"
)

const (
	// FlagAutoformat turns markdown-like markers into styles as you type.
	FlagAutoformat = "autoformat"

	// FlagMouse enables mouse tracking so the SAVE button can be clicked.
	FlagMouse = "mouse"
)

// Defaults returns the built-in value of every known flag.
func Defaults() map[string]bool {
	return map[string]bool{
		FlagAutoformat: true,
		FlagMouse:      true,
	}
}

// Registry is a read-only set of flag values.
type Registry struct {
	flags map[string]bool
}

// New layers overrides on top of Defaults.
func New(overrides map[string]bool) *Registry {
	flags := Defaults()
	maps.Copy(flags, overrides)
	r := &Registry{flags: flags}
	log.Debug(log.CatConfig, "Feature flags", "flags", r.All())
	return r
}

// Enabled reports the flag's value. Unknown flags and a nil registry are off.
func (r *Registry) Enabled(name string) bool {
	if r == nil {
		return false
	}
	v, ok := r.flags[name]
	if !ok {
		log.Debug(log.CatConfig, "Unknown flag", "flag", name)
	}
	return v
}

// All returns a copy of every flag value.
func (r *Registry) All() map[string]bool {
	if r == nil {
		return map[string]bool{}
	}
	return maps.Clone(r.flags)
}
