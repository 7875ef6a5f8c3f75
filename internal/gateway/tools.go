package gateway

import (
	"github.com/restmcp/restmcp/internal/openapi"
	"github.com/restmcp/restmcp/internal/registry"
)

// projectTools turns every registered operation into a tool descriptor, in
// registration order.
func projectTools(reg *registry.Registry) []Tool {
	ops := reg.List()
	tools := make([]Tool, 0, len(ops))
	for _, op := range ops {
		tools = append(tools, projectTool(op))
	}
	return tools
}

func projectTool(op *openapi.Operation) Tool {
	schema := ToolInputSchema{
		Type:       "object",
		Properties: make(map[string]ToolProperty, len(op.Parameters)),
	}
	for _, p := range op.Parameters {
		schema.Properties[p.Name] = ToolProperty{
			Type:        jsonSchemaType(p.Type),
			Description: p.Description,
		}
		if p.Required {
			schema.Required = append(schema.Required, p.Name)
		}
	}
	return Tool{
		Name:        op.Name,
		Description: op.Description,
		InputSchema: schema,
	}
}

// jsonSchemaType maps a declared parameter type onto a JSON-Schema type,
// falling back to string for anything unrecognized.
func jsonSchemaType(t string) string {
	switch t {
	case "string":
		return "string"
	case "integer", "int":
		return "integer"
	case "number", "float", "double":
		return "number"
	case "boolean", "bool":
		return "boolean"
	case "array":
		return "array"
	case "object":
		return "object"
	default:
		return "string"
	}
}
