package specloader

import "fmt"

// refCycleGuard breaks $ref cycles: a ref met again while its own target is
// still being expanded through that ref is left as a {"$ref": ref}
// placeholder, and a ref whose expansion has completed reuses that
// expansion for every later occurrence.
type refCycleGuard struct {
	doc      map[string]any
	resolved map[string]any // ref pointer string -> materialized value
	visiting map[string]bool
}

// Dereference returns a copy of doc in which every {"$ref": "#/..."} node is
// replaced with the object it points to. Only local (same-document) JSON Pointer
// refs are supported, matching the Non-goals ("only the contract ... is
// specified" for everything outside the core pipeline) — external file refs
// are out of scope for this CLI's spec loading.
func Dereference(doc map[string]any) (map[string]any, error) {
	g := &refCycleGuard{
		doc:      doc,
		resolved: map[string]any{},
		visiting: map[string]bool{},
	}
	out, err := g.walk(doc)
	if err != nil {
		return nil, err
	}
	m, ok := out.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: root is not an object after dereferencing", ErrInvalidDocument)
	}
	return m, nil
}

func (g *refCycleGuard) walk(v any) (any, error) {
	switch t := v.(type) {
	case map[string]any:
		if ref, ok := t["$ref"].(string); ok && len(t) >= 1 {
			return g.resolveRef(ref)
		}
		out := make(map[string]any, len(t))
		for k, val := range t {
			resolved, err := g.walk(val)
			if err != nil {
				return nil, err
			}
			out[k] = resolved
		}
		return out, nil
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			resolved, err := g.walk(e)
			if err != nil {
				return nil, err
			}
			out[i] = resolved
		}
		return out, nil
	default:
		return v, nil
	}
}

func (g *refCycleGuard) resolveRef(ref string) (any, error) {
	if existing, ok := g.resolved[ref]; ok {
		return existing, nil
	}
	if g.visiting[ref] {
		// Cycle: leave a pointer-shaped placeholder rather than recursing
		// forever. The fingerprint serializer additionally guards against
		// any cycle that survives (e.g. through a shared map identity) with
		// its own sentinel.
		return map[string]any{"$ref": ref}, nil
	}
	target, err := resolvePointer(g.doc, ref)
	if err != nil {
		return nil, err
	}
	g.visiting[ref] = true
	resolved, err := g.walk(target)
	delete(g.visiting, ref)
	if err != nil {
		return nil, err
	}
	g.resolved[ref] = resolved
	return resolved, nil
}
