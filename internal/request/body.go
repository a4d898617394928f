package request

import (
	"math"
	"strconv"
	"strings"

	"github.com/AndrewBarba/specli/internal/command"
	"github.com/AndrewBarba/specli/internal/jsonutil"
	"github.com/AndrewBarba/specli/internal/paramderiver"
	"github.com/AndrewBarba/specli/internal/result"
)

// buildBody assembles the request body per §4.8 "Body assembly". Body-flag
// keys keep their dots literally and are never camelCased (§"Case and
// camelCase convention").
func buildBody(action command.CommandAction, flagValues map[string]FlagValue) (body string, contentType string, validationErrs []result.ValidationError) {
	if action.RequestBodySchema == nil && len(action.BodyFlags) == 0 {
		return "", "", nil
	}

	if len(action.BodyFlags) == 0 {
		if action.BodyRequired {
			return "{}", action.BodyContentType, nil
		}
		return "", "", nil
	}

	doc := "{}"
	for _, def := range action.BodyFlags {
		val, ok := flagValues[bodyFlagKey(def)]
		if !ok || !val.present() {
			continue
		}
		coerced, err := coerceLeaf(def.Type, val)
		if err != nil {
			validationErrs = append(validationErrs, result.ValidationError{
				Path:    strings.Join(def.Path, "."),
				Message: err.Error(),
			})
			continue
		}
		updated, err := jsonutil.SetDotPath(doc, def.Path, coerced)
		if err != nil {
			validationErrs = append(validationErrs, result.ValidationError{
				Path:    strings.Join(def.Path, "."),
				Message: err.Error(),
			})
			continue
		}
		doc = updated
	}

	if len(validationErrs) > 0 {
		return "", action.BodyContentType, validationErrs
	}

	missing := missingRequiredBodyFlags(action.BodyFlags, flagValues)
	if len(missing) > 0 {
		for _, def := range missing {
			validationErrs = append(validationErrs, result.ValidationError{
				Path:    strings.Join(def.Path, "."),
				Message: "missing required property '" + strings.Join(def.Path, ".") + "'",
			})
		}
		return "", action.BodyContentType, validationErrs
	}

	return doc, action.BodyContentType, nil
}

// bodyFlagKey is the flagValues lookup key for a body flag definition: the
// flag name with its leading "--" stripped, dots kept literal (§"Case and
// camelCase convention" — body-flag keys are never camelCased).
func bodyFlagKey(def paramderiver.BodyFlagDef) string {
	return strings.TrimPrefix(def.Flag, "--")
}

func missingRequiredBodyFlags(defs []paramderiver.BodyFlagDef, flagValues map[string]FlagValue) []paramderiver.BodyFlagDef {
	var missing []paramderiver.BodyFlagDef
	for _, def := range defs {
		if !def.Required {
			continue
		}
		val, ok := flagValues[bodyFlagKey(def)]
		if !ok || !val.present() {
			missing = append(missing, def)
		}
	}
	return missing
}

// coerceLeaf applies §4.8's leaf coercion rules: integers via base-10
// parse, numbers via general float parse rejecting NaN/Inf, booleans true
// on presence.
func coerceLeaf(typ paramderiver.Type, val FlagValue) (any, error) {
	switch typ {
	case paramderiver.TypeBoolean:
		if val.IsBool {
			return val.Bool, nil
		}
		return true, nil
	case paramderiver.TypeInteger:
		n, err := strconv.ParseInt(val.String, 10, 64)
		if err != nil {
			return nil, &strconvError{"integer", val.String}
		}
		return n, nil
	case paramderiver.TypeNumber:
		n, err := strconv.ParseFloat(val.String, 64)
		if err != nil || !isFinite(n) {
			return nil, &strconvError{"number", val.String}
		}
		return n, nil
	default:
		return val.String, nil
	}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

type strconvError struct {
	want string
	got  string
}

func (e *strconvError) Error() string {
	return "expected a " + e.want + ", got " + strconv.Quote(e.got)
}
