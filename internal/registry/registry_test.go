package registry

import (
	"errors"
	"testing"

	apperrors "github.com/restmcp/restmcp/internal/errors"
	"github.com/restmcp/restmcp/internal/openapi"
)

func op(name, verb, path string) *openapi.Operation {
	return &openapi.Operation{Name: name, Verb: verb, Path: path}
}

func TestRegistry_AddAndGet(t *testing.T) {
	t.Parallel()

	r := New()
	r.Add(op("list_users", "get", "/users"))
	r.Add(op("create_user", "post", "/users"))

	got, err := r.Get("list_users")
	if err != nil {
		t.Fatalf("Get() unexpected error: %v", err)
	}
	if got.Verb != "get" || got.Path != "/users" {
		t.Errorf("Get() = %+v", got)
	}

	if r.Len() != 2 {
		t.Errorf("Len() = %d, want 2", r.Len())
	}
}

func TestRegistry_GetUnknown(t *testing.T) {
	t.Parallel()

	r := New()

	_, err := r.Get("nope")
	if err == nil {
		t.Fatal("Get() expected error, got nil")
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound kind", err)
	}
}

func TestRegistry_LastWinsKeepsPosition(t *testing.T) {
	t.Parallel()

	r := New()
	r.Add(op("get_item", "get", "/items/{id}"))
	r.Add(op("list_items", "get", "/items"))
	r.Add(op("get_item", "get", "/v2/items/{id}"))

	// The replacement takes effect but the name keeps its original slot.
	names := r.Names()
	if len(names) != 2 || names[0] != "get_item" || names[1] != "list_items" {
		t.Errorf("Names() = %v, want [get_item list_items]", names)
	}

	got, err := r.Get("get_item")
	if err != nil {
		t.Fatalf("Get() unexpected error: %v", err)
	}
	if got.Path != "/v2/items/{id}" {
		t.Errorf("Get() path = %q, want the later registration", got.Path)
	}
}

func TestRegistry_ListOrder(t *testing.T) {
	t.Parallel()

	r := FromOperations([]*openapi.Operation{
		op("c", "get", "/c"),
		op("a", "get", "/a"),
		op("b", "get", "/b"),
	})

	list := r.List()
	want := []string{"c", "a", "b"}
	for i, name := range want {
		if list[i].Name != name {
			t.Errorf("List()[%d].Name = %q, want %q", i, list[i].Name, name)
		}
	}
}

func TestRegistry_AddNilIgnored(t *testing.T) {
	t.Parallel()

	r := New()
	r.Add(nil)

	if r.Len() != 0 {
		t.Errorf("Len() = %d, want 0", r.Len())
	}
}
