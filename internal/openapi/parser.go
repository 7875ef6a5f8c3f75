package openapi

import (
	"fmt"
	"strings"

	apperrors "github.com/restmcp/restmcp/internal/errors"
)

// Parse validates and normalizes a parsed OpenAPI document. The input may be
// a plain map[string]any or the ordered representation produced by the
// loaders. On success the returned document has every resolvable request-body
// reference replaced in place and no component table.
//
// Structural failures are fatal: they return a DomainError with kind
// ErrInvalidSpec carrying the offending document path.
func Parse(v any) (*Document, error) {
	root, ok := asMap(toOrdered(v))
	if !ok {
		return nil, validationErr("", "object")
	}

	doc := &Document{raw: root}

	openAPI, ok := getString(root, "openapi")
	if !ok {
		return nil, validationErr("openapi", "string")
	}
	doc.OpenAPI = openAPI

	if v, present := root.Get("info"); present {
		info, ok := v.(*orderedMap)
		if !ok {
			return nil, validationErr("info", "object")
		}
		doc.Info.Title, _ = getString(info, "title")
		doc.Info.Description, _ = getString(info, "description")
		doc.Info.Version, _ = getString(info, "version")
	}

	doc.Servers = []any{}
	if v, present := root.Get("servers"); present {
		servers, ok := v.([]any)
		if !ok {
			return nil, validationErr("servers", "array")
		}
		doc.Servers = servers
	}

	pathsVal, present := root.Get("paths")
	if !present {
		return nil, validationErr("paths", "map of path to verb map")
	}
	paths, ok := pathsVal.(*orderedMap)
	if !ok {
		return nil, validationErr("paths", "map of path to verb map")
	}

	for _, path := range paths.Keys() {
		itemVal, _ := paths.Get(path)
		item, ok := itemVal.(*orderedMap)
		if !ok {
			return nil, validationErr("paths."+path, "verb map")
		}
		pathItem := PathItem{Path: path}
		for _, verb := range item.Keys() {
			if !isVerb(verb) {
				continue
			}
			detailsVal, _ := item.Get(verb)
			details, ok := detailsVal.(*orderedMap)
			if !ok {
				return nil, validationErr("paths."+path+"."+verb, "object")
			}
			op, err := parsePathOperation(path, verb, details)
			if err != nil {
				return nil, err
			}
			pathItem.Operations = append(pathItem.Operations, op)
		}
		doc.Paths = append(doc.Paths, pathItem)
	}

	if v, present := root.Get("components"); present {
		doc.Components = v
	}

	resolveReferences(doc)

	// The component table has served its purpose once references are
	// resolved; resolved documents do not carry it.
	doc.Components = nil
	doc.raw = nil

	return doc, nil
}

func parsePathOperation(path, verb string, details *orderedMap) (PathOperation, error) {
	op := PathOperation{Verb: verb}
	op.ID, _ = getString(details, "operationId")
	op.Summary, _ = getString(details, "summary")
	op.Description, _ = getString(details, "description")

	if v, present := details.Get("parameters"); present {
		params, ok := v.([]any)
		if !ok {
			return op, validationErr(fmt.Sprintf("paths.%s.%s.parameters", path, verb), "array")
		}
		for i, raw := range params {
			at := fmt.Sprintf("paths.%s.%s.parameters[%d]", path, verb, i)
			param, err := parseParameter(at, raw)
			if err != nil {
				return op, err
			}
			op.Parameters = append(op.Parameters, param)
		}
	}

	if v, present := details.Get("requestBody"); present {
		body, ok := v.(*orderedMap)
		if !ok {
			return op, validationErr(fmt.Sprintf("paths.%s.%s.requestBody", path, verb), "object")
		}
		op.RequestBody = parseRequestBody(body)
	}

	return op, nil
}

func parseParameter(at string, raw any) (Parameter, error) {
	m, ok := raw.(*orderedMap)
	if !ok {
		return Parameter{}, validationErr(at, "object")
	}

	name, ok := getString(m, "name")
	if !ok || name == "" {
		return Parameter{}, validationErr(at+".name", "non-empty string")
	}

	in, ok := getString(m, "in")
	if !ok {
		return Parameter{}, validationErr(at+".in", "one of query, path, header")
	}
	switch in {
	case "query", "path", "header":
	default:
		return Parameter{}, validationErr(at+".in", "one of query, path, header")
	}

	param := Parameter{Name: name, In: in}
	param.Required, _ = getBool(m, "required")
	param.Description, _ = getString(m, "description")
	if ex, present := m.Get("example"); present {
		param.Example = stringify(ex)
	}

	if schemaVal, present := m.Get("schema"); present {
		param.Schema = parseSchema(schemaVal)
	}
	if param.Schema == nil {
		param.Schema = &SchemaNode{Kind: KindScalar, Type: "string"}
	}

	return param, nil
}

// parseRequestBody extracts the JSON schema from a requestBody block,
// preferring application/json content and falling back to the first
// declared content type.
func parseRequestBody(body *orderedMap) *SchemaNode {
	content, ok := getMap(body, "content")
	if !ok || content.Len() == 0 {
		return nil
	}

	media, ok := getMap(content, "application/json")
	if !ok {
		media, ok = getMap(content, content.Keys()[0])
		if !ok {
			return nil
		}
	}

	schemaVal, present := media.Get("schema")
	if !present {
		return nil
	}
	return parseSchema(schemaVal)
}

// parseSchema normalizes a raw schema value into one of the four mutually
// exclusive node shapes: Ref, Object, Array, or Scalar.
func parseSchema(v any) *SchemaNode {
	m, ok := asMap(v)
	if !ok {
		return &SchemaNode{Kind: KindScalar}
	}

	node := &SchemaNode{}
	node.Description, _ = getString(m, "description")
	if ex, present := m.Get("example"); present {
		node.Example = stringify(ex)
	}

	if ref, ok := getString(m, "$ref"); ok {
		node.Kind = KindRef
		node.RefPath = refPath(ref)
		return node
	}

	typ, _ := getString(m, "type")
	switch typ {
	case "object":
		node.Kind = KindObject
		node.Type = "object"
		if req, present := m.Get("required"); present {
			if list, ok := req.([]any); ok {
				for _, r := range list {
					if s, ok := r.(string); ok {
						node.Required = append(node.Required, s)
					}
				}
			}
		}
		if props, ok := getMap(m, "properties"); ok {
			for _, name := range props.Keys() {
				propVal, _ := props.Get(name)
				node.Properties = append(node.Properties, Property{
					Name:   name,
					Schema: parseSchema(propVal),
				})
			}
		}
	case "array":
		node.Kind = KindArray
		node.Type = "array"
		if items, present := m.Get("items"); present {
			node.Items = parseSchema(items)
		}
	default:
		node.Kind = KindScalar
		node.Type = typ
	}

	return node
}

// refPath turns a "#/a/b/c" reference string into its ordered key path.
func refPath(ref string) []string {
	trimmed := strings.TrimPrefix(ref, "#/")
	trimmed = strings.Trim(trimmed, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

func stringify(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}

func validationErr(path, expected string) error {
	return apperrors.New("openapi", "Parse", apperrors.ErrInvalidSpec,
		fmt.Errorf("%s: expected %s", pathOrRoot(path), expected)).
		WithContext("path", path).
		WithContext("expected", expected)
}

func pathOrRoot(path string) string {
	if path == "" {
		return "document"
	}
	return path
}
