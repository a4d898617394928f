package request

import (
	"net/url"
	"strings"
)

// renderPath substitutes each {var} path template segment with its
// URL-encoded positional value. positionals are given in the same template
// order as rawPathArgs (§3 invariant 3).
func renderPath(pathTemplate string, rawPathArgs []string, positionalValues []string) string {
	rendered := pathTemplate
	for i, name := range rawPathArgs {
		var value string
		if i < len(positionalValues) {
			value = positionalValues[i]
		}
		rendered = strings.ReplaceAll(rendered, "{"+name+"}", encodePathSegment(value))
	}
	return rendered
}

// encodePathSegment percent-encodes a value for use as a single path
// segment, encoding "/" as %2F so a positional value containing a slash
// does not introduce an extra path segment (§8 boundary behavior).
func encodePathSegment(value string) string {
	return url.PathEscape(value)
}
