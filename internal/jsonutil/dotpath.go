package jsonutil

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// SetDotPath sets value at the dot-joined path inside the JSON document doc,
// creating intermediate objects as needed, and returns the updated document.
// An empty doc ("") is treated as "{}".
func SetDotPath(doc string, path []string, value any) (string, error) {
	if doc == "" {
		doc = "{}"
	}
	key := strings.Join(path, ".")
	out, err := sjson.Set(doc, key, value)
	if err != nil {
		return "", fmt.Errorf("jsonutil: set %q: %w", key, err)
	}
	return out, nil
}

// GetDotPath reads the value at the dot-joined path out of doc. ok is false
// when the path is absent.
func GetDotPath(doc string, path []string) (value gjson.Result, ok bool) {
	key := strings.Join(path, ".")
	r := gjson.Get(doc, key)
	return r, r.Exists()
}
