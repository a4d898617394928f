// Package strcase implements the small set of case and pluralization rules
// the naming planner and param deriver need. No dependency in the retrieval
// pack offers kebab-casing or English pluralization (the pack's casing
// helpers are all JS/TS-side, e.g. tsgonest's emitter); these are simple,
// well-defined transforms better hand-rolled than pulled in as a dependency
// for a handful of regex-free rules.
package strcase

import (
	"strings"
	"unicode"
)

// Kebab converts camelCase, PascalCase, snake_case or space separated input
// into kebab-case.
func Kebab(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		switch {
		case r == '_' || r == ' ' || r == '.' || r == '/':
			if b.Len() > 0 {
				b.WriteByte('-')
			}
		case r == '{' || r == '}':
			// drop path-template braces entirely

		case unicode.IsUpper(r):
			if i > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if (unicode.IsLower(prev) || unicode.IsDigit(prev)) || (unicode.IsUpper(prev) && nextLower) {
					if b.Len() > 0 && b.String()[b.Len()-1] != '-' {
						b.WriteByte('-')
					}
				}
			}
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	out := b.String()
	out = strings.Trim(out, "-")
	for strings.Contains(out, "--") {
		out = strings.ReplaceAll(out, "--", "-")
	}
	return out
}

// CamelFromFlag rewrites a kebab long-flag name ("x-request-id") into the
// camelCase lookup key ("xRequestId") the request builder uses, per the
// documented CLI parser convention (§ "Case and camelCase convention").
func CamelFromFlag(name string) string {
	parts := strings.Split(name, "-")
	if len(parts) == 0 {
		return name
	}
	var b strings.Builder
	b.WriteString(parts[0])
	for _, p := range parts[1:] {
		if p == "" {
			continue
		}
		r := []rune(p)
		r[0] = unicode.ToUpper(r[0])
		b.WriteString(string(r))
	}
	return b.String()
}

// irregularPlurals covers the common irregular English nouns likely to show
// up as OpenAPI resource tags/segments; everything else falls back to the
// regular suffix rules in Pluralize.
var irregularPlurals = map[string]string{
	"person": "people",
	"child":  "children",
	"man":    "men",
	"woman":  "women",
	"mouse":  "mice",
	"goose":  "geese",
	"datum":  "data",
	"index":  "indices",
	"status": "statuses",
}

var uncountable = map[string]bool{
	"data":     true,
	"info":     true,
	"news":     true,
	"settings": true,
	"metadata": true,
}

// Pluralize returns the plural form of an English noun. A word that already
// ends in a plural "s" (not "ss", "us" or "is") is returned unchanged.
func Pluralize(s string) string {
	lower := strings.ToLower(s)
	if uncountable[lower] {
		return s
	}
	if irregular, ok := irregularPlurals[lower]; ok {
		return irregular
	}
	if strings.HasSuffix(lower, "s") && !strings.HasSuffix(lower, "ss") &&
		!strings.HasSuffix(lower, "us") && !strings.HasSuffix(lower, "is") {
		return s
	}
	if strings.HasSuffix(lower, "s") || strings.HasSuffix(lower, "x") ||
		strings.HasSuffix(lower, "z") || strings.HasSuffix(lower, "ch") ||
		strings.HasSuffix(lower, "sh") {
		return s + "es"
	}
	if strings.HasSuffix(lower, "y") && len(lower) > 1 {
		beforeY := lower[len(lower)-2]
		if !isVowel(rune(beforeY)) {
			return s[:len(s)-1] + "ies"
		}
	}
	return s + "s"
}

// Singularize returns a best-effort singular form of a lower-cased plural
// English noun; used only to strip a resource name out of a disambiguator
// candidate, where an imperfect match degrades gracefully (the candidate is
// simply left un-stripped).
func Singularize(s string) string {
	lower := strings.ToLower(s)
	if uncountable[lower] {
		return s
	}
	for singular, plural := range irregularPlurals {
		if plural == lower {
			return singular
		}
	}
	switch {
	case strings.HasSuffix(lower, "ies") && len(lower) > 3:
		return s[:len(s)-3] + "y"
	case strings.HasSuffix(lower, "es") && len(lower) > 2:
		return s[:len(s)-2]
	case strings.HasSuffix(lower, "s") && len(lower) > 1:
		return s[:len(s)-1]
	}
	return s
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}
