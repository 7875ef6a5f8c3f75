package openapi

// Location classifies where a parameter is carried in a request.
type Location string

const (
	// LocationPath parameters substitute into the path template.
	LocationPath Location = "path"

	// LocationQuery parameters become query string entries.
	LocationQuery Location = "query"

	// LocationBody parameters become request body fields.
	LocationBody Location = "body"
)

// ParameterSpec describes one callable parameter of an Operation.
type ParameterSpec struct {
	Name        string
	Location    Location
	Type        string
	Description string
	Example     string
	Required    bool
}

// NewParameterSpec constructs a ParameterSpec. When an example is present
// the description is augmented with " (eg <example>)" here, exactly once.
func NewParameterSpec(name string, location Location, typ, description, example string, required bool) ParameterSpec {
	if example != "" {
		description += " (eg " + example + ")"
	}
	return ParameterSpec{
		Name:        name,
		Location:    location,
		Type:        typ,
		Description: description,
		Example:     example,
		Required:    required,
	}
}

// Operation is a compiled, immutable representation of one API endpoint.
// Its identity is Name, which is unique within a registry.
type Operation struct {
	// Name is the canonical operation name produced by Normalize.
	Name string

	// Verb is one of get, put, post, patch, delete.
	Verb string

	// Path is the path template with {param} placeholders.
	Path string

	Description string

	// Parameters holds the operation's parameters partitioned by
	// location: path first, then query, then body.
	Parameters []ParameterSpec
}

// ParametersIn returns the operation's parameters for one location,
// preserving declaration order.
func (o *Operation) ParametersIn(loc Location) []ParameterSpec {
	var out []ParameterSpec
	for _, p := range o.Parameters {
		if p.Location == loc {
			out = append(out, p)
		}
	}
	return out
}
