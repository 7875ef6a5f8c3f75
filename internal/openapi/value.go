package openapi

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// orderedMap is a JSON/YAML mapping that remembers the order its keys
// appeared in the source document. Iteration order over paths, verbs, and
// schema properties is part of the compiler's observable contract, so plain
// map[string]any is not enough.
type orderedMap struct {
	keys []string
	vals map[string]any
}

func newOrderedMap() *orderedMap {
	return &orderedMap{vals: make(map[string]any)}
}

// Get returns the value stored under key.
func (m *orderedMap) Get(key string) (any, bool) {
	v, ok := m.vals[key]
	return v, ok
}

// Set stores a value, appending the key on first insertion.
func (m *orderedMap) Set(key string, value any) {
	if _, exists := m.vals[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.vals[key] = value
}

// Keys returns the keys in source-document order.
func (m *orderedMap) Keys() []string {
	return m.keys
}

func (m *orderedMap) Len() int {
	return len(m.keys)
}

// decodeDocument parses raw bytes into ordered generic values. YAML is a
// superset of JSON, so a single yaml.Node pass handles both formats while
// preserving mapping key order.
func decodeDocument(data []byte) (any, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if node.Kind == 0 || len(node.Content) == 0 {
		return nil, fmt.Errorf("decode document: empty document")
	}
	return nodeValue(&node)
}

// nodeValue converts a yaml.Node tree into orderedMap / []any / scalar values.
func nodeValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return nodeValue(n.Content[0])
	case yaml.MappingNode:
		m := newOrderedMap()
		for i := 0; i+1 < len(n.Content); i += 2 {
			var key string
			if err := n.Content[i].Decode(&key); err != nil {
				return nil, fmt.Errorf("decode mapping key: %w", err)
			}
			val, err := nodeValue(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m.Set(key, val)
		}
		return m, nil
	case yaml.SequenceNode:
		seq := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			val, err := nodeValue(item)
			if err != nil {
				return nil, err
			}
			seq = append(seq, val)
		}
		return seq, nil
	case yaml.AliasNode:
		return nodeValue(n.Alias)
	default:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("decode scalar: %w", err)
		}
		return v, nil
	}
}

// toOrdered normalizes caller-supplied parsed structures (plain maps and
// slices) into the ordered representation the parser works over. Plain map
// keys carry no source order, so they are sorted for reproducibility.
func toOrdered(v any) any {
	switch t := v.(type) {
	case *orderedMap:
		return t
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		m := newOrderedMap()
		for _, k := range keys {
			m.Set(k, toOrdered(t[k]))
		}
		return m
	case map[any]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, fmt.Sprintf("%v", k))
		}
		sort.Strings(keys)
		m := newOrderedMap()
		for _, k := range keys {
			for ok, ov := range t {
				if fmt.Sprintf("%v", ok) == k {
					m.Set(k, toOrdered(ov))
				}
			}
		}
		return m
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = toOrdered(item)
		}
		return out
	default:
		return v
	}
}

// asMap returns v as an orderedMap when it is one.
func asMap(v any) (*orderedMap, bool) {
	m, ok := v.(*orderedMap)
	return m, ok
}

// getMap looks up a key expected to hold a mapping.
func getMap(m *orderedMap, key string) (*orderedMap, bool) {
	v, ok := m.Get(key)
	if !ok {
		return nil, false
	}
	sub, ok := v.(*orderedMap)
	return sub, ok
}

// getString looks up a key expected to hold a string.
func getString(m *orderedMap, key string) (string, bool) {
	v, ok := m.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// getBool looks up a key expected to hold a bool.
func getBool(m *orderedMap, key string) (bool, bool) {
	v, ok := m.Get(key)
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}
