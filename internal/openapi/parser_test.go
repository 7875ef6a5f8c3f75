package openapi

import (
	"errors"
	"strings"
	"testing"

	apperrors "github.com/restmcp/restmcp/internal/errors"
)

// minimalDoc returns a structurally valid document as a plain map, the way a
// caller that already parsed JSON would hand it over.
func minimalDoc() map[string]any {
	return map[string]any{
		"openapi": "3.0.0",
		"info":    map[string]any{"title": "T", "version": "1"},
		"paths":   map[string]any{},
	}
}

func TestParse_Defaults(t *testing.T) {
	t.Parallel()

	doc, err := Parse(minimalDoc())
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}

	if doc.OpenAPI != "3.0.0" {
		t.Errorf("OpenAPI = %q, want 3.0.0", doc.OpenAPI)
	}
	if doc.Info.Title != "T" || doc.Info.Version != "1" {
		t.Errorf("Info = %+v", doc.Info)
	}
	if doc.Servers == nil || len(doc.Servers) != 0 {
		t.Errorf("Servers = %v, want empty non-nil slice", doc.Servers)
	}
	if len(doc.Paths) != 0 {
		t.Errorf("Paths = %v, want empty", doc.Paths)
	}
}

func TestParse_MissingInfoIsAllowed(t *testing.T) {
	t.Parallel()

	doc, err := Parse(map[string]any{
		"openapi": "3.1.0",
		"paths":   map[string]any{},
	})
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}
	if doc.Info.Title != "" {
		t.Errorf("Info.Title = %q, want empty", doc.Info.Title)
	}
}

func TestParse_ValidationFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		doc      any
		wantPath string
	}{
		{
			name:     "not an object",
			doc:      []any{"nope"},
			wantPath: "document",
		},
		{
			name: "missing openapi field",
			doc: map[string]any{
				"paths": map[string]any{},
			},
			wantPath: "openapi",
		},
		{
			name: "openapi not a string",
			doc: map[string]any{
				"openapi": 3,
				"paths":   map[string]any{},
			},
			wantPath: "openapi",
		},
		{
			name: "missing paths",
			doc: map[string]any{
				"openapi": "3.0.0",
			},
			wantPath: "paths",
		},
		{
			name: "path item not a map",
			doc: map[string]any{
				"openapi": "3.0.0",
				"paths":   map[string]any{"/users": "nope"},
			},
			wantPath: "paths./users",
		},
		{
			name: "parameter without name",
			doc: map[string]any{
				"openapi": "3.0.0",
				"paths": map[string]any{
					"/users": map[string]any{
						"get": map[string]any{
							"parameters": []any{
								map[string]any{"in": "query"},
							},
						},
					},
				},
			},
			wantPath: "parameters[0].name",
		},
		{
			name: "parameter with bad location",
			doc: map[string]any{
				"openapi": "3.0.0",
				"paths": map[string]any{
					"/users": map[string]any{
						"get": map[string]any{
							"parameters": []any{
								map[string]any{"name": "x", "in": "cookie"},
							},
						},
					},
				},
			},
			wantPath: ".in",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse(tt.doc)
			if err == nil {
				t.Fatal("Parse() expected error, got nil")
			}
			if !errors.Is(err, apperrors.ErrInvalidSpec) {
				t.Errorf("Parse() error = %v, want ErrInvalidSpec kind", err)
			}
			if !strings.Contains(err.Error(), tt.wantPath) {
				t.Errorf("Parse() error = %v, want to mention %q", err, tt.wantPath)
			}
		})
	}
}

func TestParse_NonVerbKeysSkipped(t *testing.T) {
	t.Parallel()

	doc, err := Parse(map[string]any{
		"openapi": "3.0.0",
		"paths": map[string]any{
			"/users": map[string]any{
				"get":         map[string]any{"operationId": "listUsers"},
				"description": "a path-level description",
				"summary":     "path summary",
			},
		},
	})
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}

	if len(doc.Paths) != 1 || len(doc.Paths[0].Operations) != 1 {
		t.Fatalf("Paths = %+v, want one path with one operation", doc.Paths)
	}
	if doc.Paths[0].Operations[0].Verb != "get" {
		t.Errorf("Verb = %q, want get", doc.Paths[0].Operations[0].Verb)
	}
}

func TestParse_ParameterDefaults(t *testing.T) {
	t.Parallel()

	doc, err := Parse(map[string]any{
		"openapi": "3.0.0",
		"paths": map[string]any{
			"/items": map[string]any{
				"get": map[string]any{
					"parameters": []any{
						map[string]any{"name": "q", "in": "query"},
						map[string]any{
							"name":        "limit",
							"in":          "query",
							"required":    true,
							"description": "max results",
							"example":     25,
							"schema":      map[string]any{"type": "integer"},
						},
					},
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}

	params := doc.Paths[0].Operations[0].Parameters
	if len(params) != 2 {
		t.Fatalf("got %d parameters, want 2", len(params))
	}

	// A parameter without a schema defaults to a string scalar.
	if params[0].Schema == nil || params[0].Schema.Type != "string" || params[0].Schema.Kind != KindScalar {
		t.Errorf("default schema = %+v, want string scalar", params[0].Schema)
	}
	if params[0].Required {
		t.Error("required should default to false")
	}

	if !params[1].Required || params[1].Schema.Type != "integer" {
		t.Errorf("declared parameter = %+v", params[1])
	}
	// Examples are stringified at parse time.
	if params[1].Example != "25" {
		t.Errorf("Example = %q, want \"25\"", params[1].Example)
	}
}

func TestParse_RequestBodyContentSelection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  map[string]any
		wantType string
		wantNil  bool
	}{
		{
			name: "prefers application/json",
			content: map[string]any{
				"application/json": map[string]any{
					"schema": map[string]any{"type": "object"},
				},
				"text/plain": map[string]any{
					"schema": map[string]any{"type": "string"},
				},
			},
			wantType: "object",
		},
		{
			name: "falls back to first content type",
			content: map[string]any{
				"application/xml": map[string]any{
					"schema": map[string]any{"type": "string"},
				},
			},
			wantType: "string",
		},
		{
			name:    "empty content",
			content: map[string]any{},
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc, err := Parse(map[string]any{
				"openapi": "3.0.0",
				"paths": map[string]any{
					"/things": map[string]any{
						"post": map[string]any{
							"requestBody": map[string]any{"content": tt.content},
						},
					},
				},
			})
			if err != nil {
				t.Fatalf("Parse() unexpected error: %v", err)
			}

			body := doc.Paths[0].Operations[0].RequestBody
			if tt.wantNil {
				if body != nil {
					t.Errorf("RequestBody = %+v, want nil", body)
				}
				return
			}
			if body == nil || body.Type != tt.wantType {
				t.Errorf("RequestBody = %+v, want type %q", body, tt.wantType)
			}
		})
	}
}

func TestParse_ResolvesReferences(t *testing.T) {
	t.Parallel()

	doc, err := Parse(map[string]any{
		"openapi": "3.0.0",
		"paths": map[string]any{
			"/users": map[string]any{
				"post": map[string]any{
					"requestBody": map[string]any{
						"content": map[string]any{
							"application/json": map[string]any{
								"schema": map[string]any{"$ref": "#/components/schemas/User"},
							},
						},
					},
				},
			},
		},
		"components": map[string]any{
			"schemas": map[string]any{
				"User": map[string]any{
					"type":     "object",
					"required": []any{"name"},
					"properties": map[string]any{
						"age":  map[string]any{"type": "integer"},
						"name": map[string]any{"type": "string"},
					},
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}

	body := doc.Paths[0].Operations[0].RequestBody
	if body == nil || body.Kind != KindObject {
		t.Fatalf("RequestBody = %+v, want resolved object schema", body)
	}
	if !body.IsRequired("name") || body.IsRequired("age") {
		t.Errorf("Required = %v, want [name]", body.Required)
	}
	if nameSchema, ok := body.Property("name"); !ok || nameSchema.Type != "string" {
		t.Errorf("name property = %+v", nameSchema)
	}

	// The component table is consumed by resolution.
	if doc.Components != nil {
		t.Error("Components should be nil after parsing")
	}
}

func TestParse_UnresolvableReferenceLeftIntact(t *testing.T) {
	t.Parallel()

	doc, err := Parse(map[string]any{
		"openapi": "3.0.0",
		"paths": map[string]any{
			"/users": map[string]any{
				"post": map[string]any{
					"requestBody": map[string]any{
						"content": map[string]any{
							"application/json": map[string]any{
								"schema": map[string]any{"$ref": "#/components/schemas/Missing"},
							},
						},
					},
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}

	body := doc.Paths[0].Operations[0].RequestBody
	if body == nil || body.Kind != KindRef {
		t.Fatalf("RequestBody = %+v, want dangling ref", body)
	}
	want := []string{"components", "schemas", "Missing"}
	if len(body.RefPath) != len(want) {
		t.Fatalf("RefPath = %v, want %v", body.RefPath, want)
	}
	for i := range want {
		if body.RefPath[i] != want[i] {
			t.Errorf("RefPath = %v, want %v", body.RefPath, want)
		}
	}
}

func TestParse_PlainMapKeysAreSorted(t *testing.T) {
	t.Parallel()

	// Plain maps carry no source order; the parser sorts their keys so
	// the compiled operation order is reproducible.
	doc, err := Parse(map[string]any{
		"openapi": "3.0.0",
		"paths": map[string]any{
			"/zebras":    map[string]any{"get": map[string]any{}},
			"/aardvarks": map[string]any{"get": map[string]any{}},
		},
	})
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}

	if doc.Paths[0].Path != "/aardvarks" || doc.Paths[1].Path != "/zebras" {
		t.Errorf("path order = [%s %s], want sorted", doc.Paths[0].Path, doc.Paths[1].Path)
	}
}
