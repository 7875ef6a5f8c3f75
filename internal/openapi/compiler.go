package openapi

// Compile walks a normalized document's paths in order and produces the flat
// operation list. One Operation is produced per declared verb per path, in
// document order; that order determines the tool order a gateway exposes, so
// it is stable across runs of the same document.
func Compile(doc *Document) []*Operation {
	var ops []*Operation
	for _, item := range doc.Paths {
		for _, po := range item.Operations {
			ops = append(ops, compileOperation(item.Path, po))
		}
	}
	return ops
}

func compileOperation(path string, po PathOperation) *Operation {
	raw := po.ID
	if raw == "" {
		raw = po.Verb + "_" + path
	}

	desc := po.Description
	if desc == "" {
		desc = po.Summary
	}

	op := &Operation{
		Name:        Normalize(raw),
		Verb:        po.Verb,
		Path:        path,
		Description: desc,
	}

	// Path first, then query, then body: extraction consumes argument
	// keys in that order.
	for _, loc := range []string{"path", "query"} {
		for _, p := range po.Parameters {
			if p.In != loc {
				continue
			}
			op.Parameters = append(op.Parameters, NewParameterSpec(
				p.Name, Location(loc), schemaType(p.Schema),
				p.Description, p.Example, p.Required,
			))
		}
	}

	// Body parameters come from flattening an object request-body schema's
	// top-level properties. Non-object body schemas are not expanded.
	if po.RequestBody != nil && po.RequestBody.Kind == KindObject {
		for _, prop := range po.RequestBody.Properties {
			op.Parameters = append(op.Parameters, NewParameterSpec(
				prop.Name, LocationBody, schemaType(prop.Schema),
				prop.Schema.Description, prop.Schema.Example,
				po.RequestBody.IsRequired(prop.Name),
			))
		}
	}

	return op
}

func schemaType(n *SchemaNode) string {
	if n == nil || n.Type == "" {
		return "string"
	}
	return n.Type
}
