// Package registry stores compiled operations by canonical name and provides
// the argument-extraction helpers that turn a caller-supplied argument map
// into path, query, and body request components.
package registry

import (
	"fmt"

	apperrors "github.com/restmcp/restmcp/internal/errors"
	"github.com/restmcp/restmcp/internal/openapi"
)

// Registry holds operations keyed by canonical name, preserving insertion
// order. Registering a name that already exists silently replaces the stored
// operation (last wins) while keeping the name's original position; tool
// listings therefore stay in document order even across collisions.
type Registry struct {
	order []string
	ops   map[string]*openapi.Operation
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{ops: make(map[string]*openapi.Operation)}
}

// FromOperations builds a registry from a compiled operation list.
func FromOperations(ops []*openapi.Operation) *Registry {
	r := New()
	for _, op := range ops {
		r.Add(op)
	}
	return r
}

// Add registers an operation under its canonical name. A duplicate name
// overwrites the earlier operation.
func (r *Registry) Add(op *openapi.Operation) {
	if op == nil {
		return
	}
	if _, exists := r.ops[op.Name]; !exists {
		r.order = append(r.order, op.Name)
	}
	r.ops[op.Name] = op
}

// Get returns the operation registered under name.
func (r *Registry) Get(name string) (*openapi.Operation, error) {
	op, ok := r.ops[name]
	if !ok {
		return nil, apperrors.New("registry", "Get", apperrors.ErrNotFound,
			fmt.Errorf("unknown operation %q", name)).
			WithContext("operation", name)
	}
	return op, nil
}

// List returns all operations in registration order.
func (r *Registry) List() []*openapi.Operation {
	out := make([]*openapi.Operation, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.ops[name])
	}
	return out
}

// Names returns the registered canonical names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registered operations.
func (r *Registry) Len() int {
	return len(r.order)
}
