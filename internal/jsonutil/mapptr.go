package jsonutil

import "reflect"

// mapPtr exposes the runtime pointer backing a map header, used purely as a
// cycle-detection key during canonicalization. It is never dereferenced.
func mapPtr(m map[string]any) uintptr {
	if m == nil {
		return 0
	}
	return reflect.ValueOf(m).Pointer()
}
