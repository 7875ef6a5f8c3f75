package registry

import (
	"fmt"
	"strings"

	"github.com/restmcp/restmcp/internal/openapi"
)

// Extraction is the result of splitting an argument map into the three
// request components. Remaining holds the keys no parameter claimed; callers
// drop them rather than forwarding them.
type Extraction struct {
	Path      string
	Query     map[string]any
	Body      map[string]any
	Remaining map[string]any
}

// Extract splits args into request components in the fixed order path, then
// query, then body. Each stage consumes the keys it claims, so the order
// determines which keys remain. The input map is never mutated.
func Extract(op *openapi.Operation, args map[string]any) Extraction {
	path, remaining := PathFor(op, args)
	query, remaining := QueryFor(op, remaining)
	body, remaining := PayloadFor(op, remaining)
	return Extraction{
		Path:      path,
		Query:     query,
		Body:      body,
		Remaining: remaining,
	}
}

// PathFor substitutes path parameters present in args into the operation's
// path template and returns the remaining arguments. Parameters absent from
// args leave their placeholder unsubstituted; the invalid URL surfaces
// downstream. Missing required parameters are not an error here.
func PathFor(op *openapi.Operation, args map[string]any) (string, map[string]any) {
	remaining := cloneArgs(args)
	path := op.Path
	for _, p := range op.ParametersIn(openapi.LocationPath) {
		v, ok := remaining[p.Name]
		if !ok {
			continue
		}
		path = strings.ReplaceAll(path, "{"+p.Name+"}", fmt.Sprintf("%v", v))
		delete(remaining, p.Name)
	}
	return path, remaining
}

// QueryFor moves query parameters present in args into a query map and
// returns it with the remaining arguments.
func QueryFor(op *openapi.Operation, args map[string]any) (map[string]any, map[string]any) {
	return consume(op.ParametersIn(openapi.LocationQuery), args)
}

// PayloadFor moves body parameters present in args into a body map and
// returns it with the remaining arguments.
func PayloadFor(op *openapi.Operation, args map[string]any) (map[string]any, map[string]any) {
	return consume(op.ParametersIn(openapi.LocationBody), args)
}

func consume(params []openapi.ParameterSpec, args map[string]any) (map[string]any, map[string]any) {
	remaining := cloneArgs(args)
	consumed := make(map[string]any)
	for _, p := range params {
		if v, ok := remaining[p.Name]; ok {
			consumed[p.Name] = v
			delete(remaining, p.Name)
		}
	}
	return consumed, remaining
}

func cloneArgs(args map[string]any) map[string]any {
	out := make(map[string]any, len(args))
	for k, v := range args {
		out[k] = v
	}
	return out
}
