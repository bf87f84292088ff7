// Package effects defines effect types as data structures representing I/O operations.
// This is the foundation of the Functional Core / Imperative Shell pattern.
// Effects are pure data - they describe what should happen, not how.
package effects

// Effect is the base interface for all effects.
// Effects represent I/O operations as data that can be interpreted by the shell.
type Effect interface {
	// EffectType returns a string identifier for the effect type.
	EffectType() string
}

// Log levels understood by the executor.
const (
	LevelInfo = "info"
	LevelWarn = "warn"
)

// LogEffect represents a logging operation.
type LogEffect struct {
	Level   string
	Message string
}

func (e LogEffect) EffectType() string { return "log" }

// File operations.
const (
	FileMkdir = "mkdir"
	FileWrite = "write"
)

// FileEffect represents a file system operation.
type FileEffect struct {
	Operation string // "mkdir" or "write"
	Root      string // project root; empty means Path is used as is
	Path      string // slash-separated, relative to Root
	Content   []byte // For write operations
	Mode      uint32 // File permissions
}

func (e FileEffect) EffectType() string { return "file" }

// CompositeEffect holds multiple effects to be executed in sequence.
type CompositeEffect struct {
	Effects []Effect
}

func (e CompositeEffect) EffectType() string { return "composite" }
