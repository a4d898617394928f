// Package jsonutil provides deterministic JSON serialization shared by the
// spec loader's fingerprinting and the schema/introspection output.
package jsonutil

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
)

// circularSentinelKey is the key of the sentinel object substituted for any
// node reached through a cycle.
const circularSentinelKey = "__circular"

// Canonicalize walks v (the output of a JSON/YAML unmarshal, so maps are
// map[string]any and sequences are []any) and returns a value whose map
// keys are ordered and whose cycles are replaced by a sentinel object, ready
// for deterministic json.Marshal.
func Canonicalize(v any) any {
	return canonicalize(v, map[uintptr]bool{})
}

// CanonicalJSON marshals v via Canonicalize using sorted keys.
//
// encoding/json already sorts map[string]any keys on marshal, but
// Canonicalize is still required to break cycles before Marshal ever sees
// them (json.Marshal does not detect cycles in map[string]any/[]any trees
// and will recurse until the stack overflows).
func CanonicalJSON(v any) ([]byte, error) {
	return json.Marshal(Canonicalize(v))
}

// Fingerprint returns the hex-encoded SHA-256 of v's canonical serialization.
func Fingerprint(v any) (string, error) {
	b, err := CanonicalJSON(v)
	if err != nil {
		return "", fmt.Errorf("jsonutil: fingerprint: %w", err)
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}

func canonicalize(v any, seen map[uintptr]bool) any {
	switch t := v.(type) {
	case map[string]any:
		ptr := mapIdentity(t)
		if ptr != 0 {
			if seen[ptr] {
				return map[string]any{circularSentinelKey: true}
			}
			seen[ptr] = true
			defer delete(seen, ptr)
		}
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make(map[string]any, len(t))
		for _, k := range keys {
			out[k] = canonicalize(t[k], seen)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = canonicalize(e, seen)
		}
		return out
	default:
		return v
	}
}

// mapIdentity returns a stable, comparable identity for a map value so we
// can detect re-entry into the same underlying map during a walk. Two
// distinct maps with identical contents never collide because the address
// comes from reflection on the map header, not its contents.
func mapIdentity(m map[string]any) uintptr {
	return mapPtr(m)
}
