package openapi

// resolveReferences replaces every request-body schema that is a reference
// with the subtree its key path points at. Lookup walks the full parsed
// document, not just the component table. Unresolvable references are left
// untouched: a dangling $ref is not a load failure.
func resolveReferences(doc *Document) {
	if doc.raw == nil {
		return
	}
	for pi := range doc.Paths {
		for oi := range doc.Paths[pi].Operations {
			op := &doc.Paths[pi].Operations[oi]
			if op.RequestBody == nil || op.RequestBody.Kind != KindRef {
				continue
			}
			target, ok := lookupPath(doc.raw, op.RequestBody.RefPath)
			if !ok {
				continue
			}
			op.RequestBody = parseSchema(target)
		}
	}
}

// lookupPath walks an ordered key path against nested mappings.
func lookupPath(root *orderedMap, path []string) (any, bool) {
	if len(path) == 0 {
		return nil, false
	}
	var current any = root
	for _, key := range path {
		m, ok := asMap(current)
		if !ok {
			return nil, false
		}
		next, ok := m.Get(key)
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}
