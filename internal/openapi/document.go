// Package openapi turns raw OpenAPI 3.x documents into a validated,
// reference-resolved operation model. It covers loading (bytes, files,
// URLs, parsed structures), structural validation with defaulting,
// internal $ref resolution, and compilation of paths into Operations.
package openapi

// Document is a normalized OpenAPI document. Path, verb, and property
// ordering reflects the source document.
type Document struct {
	// OpenAPI is the declared spec version string.
	OpenAPI string

	// Info holds the document's title, description, and version,
	// defaulting to empty strings when absent.
	Info Info

	// Servers is the declared server list, empty when absent.
	Servers []any

	// Paths holds the path items in document order.
	Paths []PathItem

	// Components is the raw components subtree. It is consulted during
	// reference resolution and nil afterwards: resolved documents carry
	// no component table.
	Components any

	// raw is the full parsed document, kept only while references
	// are being resolved.
	raw *orderedMap
}

// Info is the document metadata block.
type Info struct {
	Title       string
	Description string
	Version     string
}

// PathItem is one path template and its declared verbs, in document order.
type PathItem struct {
	Path       string
	Operations []PathOperation
}

// PathOperation is one verb declared under a path.
type PathOperation struct {
	// Verb is one of get, put, post, patch, delete.
	Verb string

	// ID is the declared operationId, empty when absent.
	ID string

	Summary     string
	Description string

	// Parameters are the declared path/query/header parameters.
	Parameters []Parameter

	// RequestBody is the JSON request-body schema, nil when absent.
	RequestBody *SchemaNode
}

// Parameter is a declared operation parameter.
type Parameter struct {
	Name        string
	In          string
	Required    bool
	Description string
	Example     string
	Schema      *SchemaNode
}

// verbs is the set of HTTP verbs the compiler exposes. Verbs appear in
// operations in the order the source document declares them.
var verbs = []string{"get", "put", "post", "patch", "delete"}

func isVerb(s string) bool {
	for _, v := range verbs {
		if v == s {
			return true
		}
	}
	return false
}
