// Package layer stacks preference sources by priority.
//
// Each layer holds a flat map keyed by full property key. Higher priority
// layers override lower ones when merged, and the manager can report which
// layer a value came from.
package layer

import (
	"maps"
)

// Layer represents a single source of preference values.
type Layer struct {
	// Name identifies the layer (e.g., "user", "environment", or a file path).
	Name string

	// Priority determines merge order (higher overrides lower).
	Priority int

	// Source indicates what kind of source this layer was loaded from.
	Source Source

	// Values holds the preference values keyed by property key.
	Values map[string]any
}

// NewLayerWithValues creates a layer with initial values.
func NewLayerWithValues(name string, source Source, values map[string]any) *Layer {
	if values == nil {
		values = make(map[string]any)
	}
	return &Layer{
		Name:     name,
		Source:   source,
		Priority: DefaultPriority(source),
		Values:   values,
	}
}

// Clone creates a copy of the layer. Values are copied shallowly; preference
// values are scalars.
func (l *Layer) Clone() *Layer {
	return &Layer{
		Name:     l.Name,
		Priority: l.Priority,
		Source:   l.Source,
		Values:   maps.Clone(l.Values),
	}
}

// Source indicates where a layer came from.
type Source uint8

const (
	// SourceBuiltin represents registered defaults.
	SourceBuiltin Source = iota
	// SourceUser represents a user settings file.
	SourceUser
	// SourceEnv represents environment variables.
	SourceEnv
	// SourceArgs represents command-line arguments.
	SourceArgs
)

// String returns a human-readable name for the source.
func (s Source) String() string {
	switch s {
	case SourceBuiltin:
		return "default"
	case SourceUser:
		return "user"
	case SourceEnv:
		return "environment"
	case SourceArgs:
		return "arguments"
	default:
		return "unknown"
	}
}
