// Package paramderiver implements C6: converting OpenAPI parameters and
// request-body schemas into positionals, flags, dot-notation body flags,
// and per-operation JSON Schemas for validation.
package paramderiver

import (
	"sort"

	"github.com/AndrewBarba/specli/internal/naming"
	"github.com/AndrewBarba/specli/internal/opindex"
	"github.com/AndrewBarba/specli/internal/strcase"
)

// Kind is whether a ParamSpec is positional or a flag.
type Kind string

const (
	KindPositional Kind = "positional"
	KindFlag       Kind = "flag"
)

// Type is the coarse value type a ParamSpec carries.
type Type string

const (
	TypeString  Type = "string"
	TypeNumber  Type = "number"
	TypeInteger Type = "integer"
	TypeBoolean Type = "boolean"
	TypeArray   Type = "array"
	TypeObject  Type = "object"
	TypeUnknown Type = "unknown"
)

// ParamSpec is one derived positional or flag.
type ParamSpec struct {
	Kind        Kind
	In          opindex.ParamLocation
	Name        string
	Flag        string // "--" + kebab(name), empty for positionals
	Required    bool
	Type        Type
	Format      string
	Description string
	Enum        []string
	ItemType    Type
	ItemFormat  string
	ItemEnum    []string
	Schema      map[string]any
}

// ReservedFlags are built-in flags every generated body flag must avoid
// colliding with, per §4.6.
var ReservedFlags = map[string]bool{"--curl": true}

// Derive builds the positional and flag ParamSpecs for a planned operation.
// Path parameters become positionals in template order (§3 invariant 3);
// everything else becomes a flag ordered by (in, name), per §3.
func Derive(op naming.PlannedOperation) (positionals []ParamSpec, flags []ParamSpec) {
	byName := map[string]opindex.NormalizedParameter{}
	for _, p := range op.Parameters {
		if p.In == opindex.InPath {
			byName[p.Name] = p
		}
	}

	for _, rawName := range op.RawPathArgs {
		p := byName[rawName]
		positionals = append(positionals, ParamSpec{
			Kind:     KindPositional,
			In:       opindex.InPath,
			Name:     rawName,
			Required: true,
			Type:     extractType(p.Schema),
			Format:   extractFormat(p.Schema),
			Schema:   p.Schema,
		})
	}

	var nonPath []opindex.NormalizedParameter
	for _, p := range op.Parameters {
		if p.In != opindex.InPath {
			nonPath = append(nonPath, p)
		}
	}
	sort.Slice(nonPath, func(i, j int) bool {
		if nonPath[i].In != nonPath[j].In {
			return nonPath[i].In < nonPath[j].In
		}
		return nonPath[i].Name < nonPath[j].Name
	})

	for _, p := range nonPath {
		flags = append(flags, toFlagSpec(p))
	}

	return positionals, flags
}

func toFlagSpec(p opindex.NormalizedParameter) ParamSpec {
	spec := ParamSpec{
		Kind:        KindFlag,
		In:          p.In,
		Name:        p.Name,
		Flag:        "--" + strcase.Kebab(p.Name),
		Required:    p.Required,
		Description: p.Description,
		Type:        extractType(p.Schema),
		Format:      extractFormat(p.Schema),
		Schema:      p.Schema,
	}
	if spec.Type == TypeString {
		spec.Enum = extractStringEnum(p.Schema)
	}
	if spec.Type == TypeArray {
		items, _ := p.Schema["items"].(map[string]any)
		spec.ItemType = extractType(items)
		spec.ItemFormat = extractFormat(items)
		if spec.ItemType == TypeString {
			spec.ItemEnum = extractStringEnum(items)
		}
	}
	return spec
}

// extractType reads schema.type. OpenAPI 3.1 nullable unions like
// ["string", "null"] take the first non-null member, per §8 boundary
// behavior; anything else unrecognized is TypeUnknown rather than a crash.
func extractType(schema map[string]any) Type {
	if schema == nil {
		return TypeUnknown
	}
	switch t := schema["type"].(type) {
	case string:
		return normalizeType(t)
	case []any:
		for _, v := range t {
			if s, ok := v.(string); ok && s != "null" {
				return normalizeType(s)
			}
		}
	}
	return TypeUnknown
}

func normalizeType(t string) Type {
	switch t {
	case "string":
		return TypeString
	case "number":
		return TypeNumber
	case "integer":
		return TypeInteger
	case "boolean":
		return TypeBoolean
	case "array":
		return TypeArray
	case "object":
		return TypeObject
	default:
		return TypeUnknown
	}
}

func extractFormat(schema map[string]any) string {
	if schema == nil {
		return ""
	}
	f, _ := schema["format"].(string)
	return f
}

// extractStringEnum surfaces only string-valued enum members, per §4.6.
func extractStringEnum(schema map[string]any) []string {
	if schema == nil {
		return nil
	}
	raw, ok := schema["enum"].([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
