package paramderiver

import (
	"sort"
	"strings"

	"github.com/AndrewBarba/specli/internal/naming"
	"github.com/AndrewBarba/specli/internal/strcase"
)

// BodyFlagDef is one dot-notation flag generated from a request body's JSON
// object schema.
type BodyFlagDef struct {
	Flag        string
	Path        []string
	Type        Type // scalar only: string, number, integer, boolean
	Description string
	Required    bool
}

// PreferredContentType applies the selection order from §4.6: exact
// application/json first, any *json* next, otherwise the first declared
// content type.
func PreferredContentType(contentTypes []string) string {
	for _, ct := range contentTypes {
		if ct == "application/json" {
			return ct
		}
	}
	for _, ct := range contentTypes {
		if strings.Contains(ct, "json") {
			return ct
		}
	}
	if len(contentTypes) > 0 {
		return contentTypes[0]
	}
	return ""
}

// DeriveBodyFlags walks the preferred content type's schema and emits a
// flag per scalar leaf, dot-joining the path. Arrays and non-object leaves
// are not expanded (§4.6 "Arrays and non-object leaves are not expanded in
// v1"). Flags colliding with an existing operation flag or a reserved
// built-in are skipped.
func DeriveBodyFlags(op naming.PlannedOperation, opFlags []ParamSpec) (contentType string, defs []BodyFlagDef) {
	if op.RequestBody == nil {
		return "", nil
	}
	contentType = PreferredContentType(op.RequestBody.ContentTypes)
	schema := op.RequestBody.SchemaByContentType[contentType]
	if schema == nil {
		return contentType, nil
	}

	existing := map[string]bool{}
	for _, f := range opFlags {
		existing[f.Flag] = true
	}

	var walk func(s map[string]any, path []string, ancestorRequired bool)
	walk = func(s map[string]any, path []string, ancestorRequired bool) {
		typ := extractType(s)
		props, _ := s["properties"].(map[string]any)
		required := stringSet(s["required"])

		if typ == TypeObject && props != nil {
			names := make([]string, 0, len(props))
			for name := range props {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				childSchema, _ := props[name].(map[string]any)
				childPath := append(append([]string{}, path...), name)
				walk(childSchema, childPath, required[name])
			}
			return
		}

		if len(path) == 0 {
			return
		}
		switch typ {
		case TypeString, TypeNumber, TypeInteger, TypeBoolean:
			flag := "--" + strings.Join(path, ".")
			if existing[flag] || ReservedFlags[flag] {
				return
			}
			defs = append(defs, BodyFlagDef{
				Flag:        flag,
				Path:        append([]string{}, path...),
				Type:        typ,
				Description: strField(s, "description"),
				Required:    ancestorRequired,
			})
		default:
			// arrays, unknown leaves: not expanded in v1.
		}
	}

	walk(schema, nil, false)
	return contentType, defs
}

func stringSet(raw any) map[string]bool {
	list, _ := raw.([]any)
	out := map[string]bool{}
	for _, v := range list {
		if s, ok := v.(string); ok {
			out[s] = true
		}
	}
	return out
}

func strField(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

// FlagToCamel mirrors the request builder's flag->lookup-key convention,
// re-exported here so the param deriver and request builder agree on the
// mapping without a second source of truth.
func FlagToCamel(flag string) string {
	name := strings.TrimPrefix(flag, "--")
	return strcase.CamelFromFlag(name)
}
