package request

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/AndrewBarba/specli/internal/opindex"
	"github.com/AndrewBarba/specli/internal/paramderiver"
	"github.com/AndrewBarba/specli/internal/result"
)

// validateLocation compiles a location's derived JSON Schema (query, header,
// cookie, or request body) and validates the assembled instance against it,
// per §4.8 "Validation". A nil schema always passes.
func validateLocation(schema map[string]any, instance any) ([]result.ValidationError, error) {
	if schema == nil {
		return nil, nil
	}

	compiled, err := compileSchema(schema)
	if err != nil {
		return nil, fmt.Errorf("request: compile schema: %w", err)
	}

	if err := compiled.Validate(instance); err != nil {
		if ve, ok := err.(*jsonschema.ValidationError); ok {
			return flattenValidationError(ve), nil
		}
		return []result.ValidationError{{Message: err.Error()}}, nil
	}
	return nil, nil
}

func compileSchema(schema map[string]any) (*jsonschema.Schema, error) {
	raw, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("schema.json", bytes.NewReader(raw)); err != nil {
		return nil, err
	}
	return c.Compile("schema.json")
}

// flattenValidationError walks the jsonschema error tree's causes (leaves
// carry the actual failures; the root is a wrapper) into flat
// ValidationErrors formatted per §4.8: "<instance-path> missing required
// property '<name>'" for a required-keyword failure, otherwise
// "<instance-path> <message>".
func flattenValidationError(ve *jsonschema.ValidationError) []result.ValidationError {
	if len(ve.Causes) == 0 {
		path := ve.InstanceLocation
		if strings.HasSuffix(ve.KeywordLocation, "/required") {
			if name, ok := missingPropertyName(ve.Message); ok {
				path += "/" + name
			}
		}
		return []result.ValidationError{{
			Path:    path,
			Message: formatLeafMessage(ve),
		}}
	}
	var out []result.ValidationError
	for _, cause := range ve.Causes {
		out = append(out, flattenValidationError(cause)...)
	}
	return out
}

func formatLeafMessage(ve *jsonschema.ValidationError) string {
	if strings.HasSuffix(ve.KeywordLocation, "/required") {
		if name, ok := missingPropertyName(ve.Message); ok {
			return fmt.Sprintf("missing required property '%s'", name)
		}
	}
	return ve.Message
}

// missingPropertyName extracts the property name from jsonschema/v5's
// "missing properties: 'foo'" message shape.
func missingPropertyName(msg string) (string, bool) {
	idx := strings.Index(msg, "'")
	if idx < 0 {
		return "", false
	}
	rest := msg[idx+1:]
	end := strings.Index(rest, "'")
	if end < 0 {
		return "", false
	}
	return rest[:end], true
}

// instanceForLocation builds the decoded-JSON instance document that a
// location's derived schema validates against, coercing each present flag
// value to its declared scalar/array type.
func instanceForLocation(specs []paramderiver.ParamSpec, in opindex.ParamLocation, flagValues map[string]FlagValue) (map[string]any, []result.ValidationError) {
	instance := map[string]any{}
	var errs []result.ValidationError
	for _, spec := range specs {
		if spec.In != in {
			continue
		}
		val, ok := flagValues[paramderiver.FlagToCamel(spec.Flag)]
		if !ok || !val.present() {
			continue
		}
		coerced, err := coerceParamValue(spec, val)
		if err != nil {
			errs = append(errs, result.ValidationError{Path: "/" + spec.Name, Message: err.Error()})
			continue
		}
		instance[spec.Name] = coerced
	}
	return instance, errs
}

func coerceParamValue(spec paramderiver.ParamSpec, val FlagValue) (any, error) {
	if spec.Type == paramderiver.TypeArray {
		items := make([]any, 0, len(val.Array))
		for _, s := range val.Array {
			v, err := coerceScalar(spec.ItemType, s)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return items, nil
	}
	if val.IsBool {
		return val.Bool, nil
	}
	return coerceScalar(spec.Type, val.String)
}

func coerceScalar(typ paramderiver.Type, s string) (any, error) {
	switch typ {
	case paramderiver.TypeInteger:
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, &strconvError{"integer", s}
		}
		return n, nil
	case paramderiver.TypeNumber:
		n, err := strconv.ParseFloat(s, 64)
		if err != nil || !isFinite(n) {
			return nil, &strconvError{"number", s}
		}
		return n, nil
	case paramderiver.TypeBoolean:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return nil, &strconvError{"boolean", s}
		}
		return b, nil
	default:
		return s, nil
	}
}
