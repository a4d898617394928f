package specloader

import (
	"fmt"
	"strconv"
	"strings"
)

// resolvePointer resolves a local JSON Pointer reference of the form
// "#/components/schemas/Widget" against doc.
func resolvePointer(doc map[string]any, ref string) (any, error) {
	if !strings.HasPrefix(ref, "#/") {
		return nil, fmt.Errorf("%w: unsupported external $ref %q", ErrInvalidDocument, ref)
	}
	segments := strings.Split(strings.TrimPrefix(ref, "#/"), "/")
	var cur any = doc
	for _, raw := range segments {
		seg := unescapePointerSegment(raw)
		switch node := cur.(type) {
		case map[string]any:
			next, ok := node[seg]
			if !ok {
				return nil, fmt.Errorf("%w: $ref %q: key %q not found", ErrInvalidDocument, ref, seg)
			}
			cur = next
		case []any:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, fmt.Errorf("%w: $ref %q: invalid array index %q", ErrInvalidDocument, ref, seg)
			}
			cur = node[idx]
		default:
			return nil, fmt.Errorf("%w: $ref %q: cannot descend into scalar at %q", ErrInvalidDocument, ref, seg)
		}
	}
	return cur, nil
}

func unescapePointerSegment(s string) string {
	s = strings.ReplaceAll(s, "~1", "/")
	s = strings.ReplaceAll(s, "~0", "~")
	return s
}
