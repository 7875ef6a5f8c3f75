package openapi

// SchemaKind discriminates the four mutually exclusive schema shapes a
// request-body schema can take.
type SchemaKind int

const (
	// KindScalar is any schema carrying a plain type (string, integer, ...).
	KindScalar SchemaKind = iota

	// KindObject is a schema with type "object", required names, and properties.
	KindObject

	// KindArray is a schema with type "array" and an item schema.
	KindArray

	// KindRef is an unresolved internal reference ("$ref": "#/a/b/c").
	// After reference resolution no reachable node should have this kind
	// unless its target could not be found.
	KindRef
)

// SchemaNode is a normalized schema tree node.
type SchemaNode struct {
	Kind SchemaKind

	// Type is the declared schema type. Empty for refs and untyped schemas.
	Type string

	// Description and Example annotate the schema when declared.
	Description string
	Example     string

	// Required lists the required property names of an object schema.
	Required []string

	// Properties holds an object schema's properties in declaration order.
	Properties []Property

	// Items is an array schema's element schema.
	Items *SchemaNode

	// RefPath is the key path of a reference, e.g. ["components", "schemas", "User"]
	// for "#/components/schemas/User".
	RefPath []string
}

// Property is a named member of an object schema.
type Property struct {
	Name   string
	Schema *SchemaNode
}

// Property returns the schema of a named property of an object schema.
func (n *SchemaNode) Property(name string) (*SchemaNode, bool) {
	for _, p := range n.Properties {
		if p.Name == name {
			return p.Schema, true
		}
	}
	return nil, false
}

// IsRequired reports whether name is in the object schema's required set.
func (n *SchemaNode) IsRequired(name string) bool {
	for _, r := range n.Required {
		if r == name {
			return true
		}
	}
	return false
}
