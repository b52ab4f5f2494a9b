package schema

// Common type constants for JSON Schema.
const (
	TypeNameString  = "string"
	TypeNameNumber  = "number"
	TypeNameInteger = "integer"
	TypeNameBoolean = "boolean"
	TypeNameArray   = "array"
	TypeNameObject  = "object"
)

// knownTypes is the set of property types a registry accepts.
var knownTypes = map[string]bool{
	TypeNameString:  true,
	TypeNameNumber:  true,
	TypeNameInteger: true,
	TypeNameBoolean: true,
	TypeNameArray:   true,
	TypeNameObject:  true,
}

// NodeBuilder provides a fluent API for constructing nodes.
type NodeBuilder struct {
	node Node
}

// NewNode creates a builder for an object node with the given id.
func NewNode(id string) *NodeBuilder {
	return &NodeBuilder{
		node: Node{
			ID:   id,
			Type: TypeNameObject,
		},
	}
}

// Title sets the node title.
func (b *NodeBuilder) Title(title string) *NodeBuilder {
	b.node.Title = title
	return b
}

// Property adds a property to the node.
func (b *NodeBuilder) Property(key string, p Property) *NodeBuilder {
	if b.node.Properties == nil {
		b.node.Properties = make(map[string]Property)
	}
	b.node.Properties[key] = p
	return b
}

// Build returns a copy of the constructed node. The builder can keep being
// used without affecting nodes it already returned.
func (b *NodeBuilder) Build() Node {
	return b.node.Clone()
}

// Builder provides a fluent API for constructing properties.
type Builder struct {
	prop Property
}

// NewBuilder creates a new property builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Build returns the constructed property.
func (b *Builder) Build() Property {
	return b.prop.Clone()
}

// Description sets the property description.
func (b *Builder) Description(desc string) *Builder {
	b.prop.Description = desc
	return b
}

// Type sets the property type.
func (b *Builder) Type(typ string) *Builder {
	b.prop.Type = typ
	return b
}

// Default sets the default value.
func (b *Builder) Default(value any) *Builder {
	b.prop.Default = value
	return b
}

// Enum sets allowed values.
func (b *Builder) Enum(values ...any) *Builder {
	b.prop.Enum = values
	return b
}

// String creates a string property builder.
func String() *Builder {
	return NewBuilder().Type(TypeNameString)
}

// StringEnum creates a string property restricted to values, in order.
func StringEnum(values ...string) *Builder {
	anyValues := make([]any, len(values))
	for i, v := range values {
		anyValues[i] = v
	}
	return String().Enum(anyValues...)
}
