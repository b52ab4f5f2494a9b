// Package schema describes configuration nodes contributed to the host's
// configuration registry.
//
// A Node groups one or more related preference properties under a unique id.
// Each Property declares a JSON type, an optional enumeration of allowed values
// and a default. Nodes are plain values: they are built once, validated, and
// handed to a registry which takes ownership of its own copy.
package schema

import (
	"sort"
)

// Node is a named, typed schema unit describing related preference properties.
type Node struct {
	// ID is the unique key of the node within the registry namespace.
	ID string `json:"id" yaml:"id"`

	// Title is the display name used to group the node's properties.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Type is always "object" for a node.
	Type string `json:"type" yaml:"type"`

	// Properties maps a full property key (e.g. "preferences.TrayIconColor")
	// to its schema.
	Properties map[string]Property `json:"properties" yaml:"properties"`
}

// Property is the schema of a single preference value.
type Property struct {
	// Description is human-readable documentation.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Type is the JSON type of the value (string, number, integer, boolean, array, object).
	Type string `json:"type" yaml:"type"`

	// Enum lists allowed values in display order.
	Enum []any `json:"enum,omitempty" yaml:"enum,omitempty"`

	// Default is the value used when the user has not set one.
	Default any `json:"default,omitempty" yaml:"default,omitempty"`

	// Scope defines where this setting can be configured.
	Scope string `json:"scope,omitempty" yaml:"scope,omitempty"`

	// Deprecated marks the property as deprecated.
	Deprecated bool `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`

	// DeprecationMessage explains what to use instead.
	DeprecationMessage string `json:"deprecationMessage,omitempty" yaml:"deprecationMessage,omitempty"`

	// Tags for categorization.
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`

	// Order for display ordering.
	Order int `json:"order,omitempty" yaml:"order,omitempty"`
}

// PropertyKeys returns the node's property keys in sorted order.
func (n Node) PropertyKeys() []string {
	keys := make([]string, 0, len(n.Properties))
	for k := range n.Properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Property returns the schema for key and whether the node declares it.
func (n Node) Property(key string) (Property, bool) {
	p, ok := n.Properties[key]
	return p, ok
}

// Clone returns a deep copy of the node. Slices and the property map are
// copied so the clone shares no mutable state with n.
func (n Node) Clone() Node {
	out := n
	if n.Properties != nil {
		out.Properties = make(map[string]Property, len(n.Properties))
		for k, p := range n.Properties {
			out.Properties[k] = p.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the property.
func (p Property) Clone() Property {
	out := p
	if p.Enum != nil {
		out.Enum = append([]any(nil), p.Enum...)
	}
	if p.Tags != nil {
		out.Tags = append([]string(nil), p.Tags...)
	}
	return out
}

// HasEnum reports whether the property restricts values to an enumeration.
func (p Property) HasEnum() bool {
	return len(p.Enum) > 0
}

// Allows reports whether value is one of the enumerated values.
// A property without an enumeration allows any value.
func (p Property) Allows(value any) bool {
	if !p.HasEnum() {
		return true
	}
	return containsValue(p.Enum, value)
}
