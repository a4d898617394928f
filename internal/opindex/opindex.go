// Package opindex implements C2: flattening an OpenAPI document's paths
// into a normalized, deterministically ordered operation list with merged
// path+operation parameters and content-typed request bodies.
package opindex

import "sort"

// methods is the ordered set of HTTP verbs recognized as operations under a
// path item, per §4.2.
var methods = []string{"get", "post", "put", "patch", "delete", "options", "head", "trace"}

// ParamLocation is where an OpenAPI parameter is placed.
type ParamLocation string

const (
	InPath   ParamLocation = "path"
	InQuery  ParamLocation = "query"
	InHeader ParamLocation = "header"
	InCookie ParamLocation = "cookie"
)

// NormalizedParameter is a single, already-merged operation parameter.
type NormalizedParameter struct {
	In          ParamLocation
	Name        string
	Required    bool
	Description string
	Schema      map[string]any
}

// NormalizedRequestBody describes an operation's request body across its
// declared content types.
type NormalizedRequestBody struct {
	Required           bool
	ContentTypes       []string
	SchemaByContentType map[string]map[string]any
}

// NormalizedOperation is one HTTP verb at one path with merged parameters.
type NormalizedOperation struct {
	Method      string
	Path        string
	OperationID string
	Tags        []string
	Summary     string
	Description string
	Deprecated  bool
	// Security holds the operation's own requirement, or the document
	// default when the operation declares none; it is nil only when neither
	// declares security, and a non-nil empty slice when the operation
	// explicitly disables auth.
	Security    []map[string][]string
	Parameters  []NormalizedParameter
	RequestBody *NormalizedRequestBody
}

// Key returns the "METHOD path" identity used throughout the pipeline.
func (op NormalizedOperation) Key() string {
	return op.Method + " " + op.Path
}

// Build flattens doc["paths"] into a sorted operation list, merging
// path-item and operation-level parameters and falling back operation
// security to the document-level default, per §4.2.
func Build(doc map[string]any) []NormalizedOperation {
	paths, _ := doc["paths"].(map[string]any)
	docSecurity := parseSecurity(doc["security"])

	var ops []NormalizedOperation
	for path, rawItem := range paths {
		item, ok := rawItem.(map[string]any)
		if !ok {
			continue
		}
		pathParams := parseParameters(item["parameters"])

		for _, method := range methods {
			rawOp, ok := item[method]
			if !ok {
				continue
			}
			opMap, ok := rawOp.(map[string]any)
			if !ok {
				continue
			}
			ops = append(ops, buildOperation(strUpper(method), path, opMap, pathParams, docSecurity))
		}
	}

	sort.Slice(ops, func(i, j int) bool {
		if ops[i].Path != ops[j].Path {
			return ops[i].Path < ops[j].Path
		}
		return ops[i].Method < ops[j].Method
	})

	return ops
}

func buildOperation(method, path string, opMap map[string]any, pathParams []NormalizedParameter, docSecurity []map[string][]string) NormalizedOperation {
	opParams := parseParameters(opMap["parameters"])
	merged := mergeParameters(pathParams, opParams)

	// Path parameters are always required, regardless of source, per §4.2.
	for i := range merged {
		if merged[i].In == InPath {
			merged[i].Required = true
		}
	}

	op := NormalizedOperation{
		Method:      method,
		Path:        path,
		OperationID: strField(opMap, "operationId"),
		Tags:        strSlice(opMap["tags"]),
		Summary:     strField(opMap, "summary"),
		Description: strField(opMap, "description"),
		Deprecated:  boolField(opMap, "deprecated"),
		Parameters:  merged,
		RequestBody: parseRequestBody(opMap["requestBody"]),
	}

	if raw, declared := opMap["security"]; declared {
		op.Security = parseSecurity(raw)
	} else {
		op.Security = docSecurity
	}

	return op
}

// mergeParameters implements the "(location, name)" merge map from §4.2:
// path-item entries first, operation entries win on collision.
func mergeParameters(pathParams, opParams []NormalizedParameter) []NormalizedParameter {
	type key struct {
		in   ParamLocation
		name string
	}
	byKey := map[key]NormalizedParameter{}
	var order []key

	add := func(p NormalizedParameter) {
		k := key{p.In, p.Name}
		if _, exists := byKey[k]; !exists {
			order = append(order, k)
		}
		byKey[k] = p
	}

	for _, p := range pathParams {
		add(p)
	}
	for _, p := range opParams {
		add(p)
	}

	out := make([]NormalizedParameter, 0, len(order))
	for _, k := range order {
		out = append(out, byKey[k])
	}
	return out
}

func parseParameters(raw any) []NormalizedParameter {
	list, ok := raw.([]any)
	if !ok {
		return nil
	}
	var out []NormalizedParameter
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		name, _ := m["name"].(string)
		in, _ := m["in"].(string)
		if name == "" || !isValidLocation(in) {
			continue
		}
		schema, _ := m["schema"].(map[string]any)
		out = append(out, NormalizedParameter{
			In:          ParamLocation(in),
			Name:        name,
			Required:    boolField(m, "required"),
			Description: strField(m, "description"),
			Schema:      schema,
		})
	}
	return out
}

func isValidLocation(in string) bool {
	switch ParamLocation(in) {
	case InPath, InQuery, InHeader, InCookie:
		return true
	}
	return false
}

func parseRequestBody(raw any) *NormalizedRequestBody {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	content, _ := m["content"].(map[string]any)
	if content == nil {
		return nil
	}
	rb := &NormalizedRequestBody{
		Required:            boolField(m, "required"),
		SchemaByContentType: map[string]map[string]any{},
	}
	for ct, rawMedia := range content {
		rb.ContentTypes = append(rb.ContentTypes, ct)
		if media, ok := rawMedia.(map[string]any); ok {
			if schema, ok := media["schema"].(map[string]any); ok {
				rb.SchemaByContentType[ct] = schema
			}
		}
	}
	sort.Strings(rb.ContentTypes)
	return rb
}

// parseSecurity normalizes the OpenAPI `security` array shape
// ([]{scheme: [scopes]}) into []map[string][]string. A present-but-empty
// array is preserved as a non-nil empty slice so callers can distinguish
// "disabled" from "not declared".
func parseSecurity(raw any) []map[string][]string {
	list, ok := raw.([]any)
	if !ok {
		return nil
	}
	out := make([]map[string][]string, 0, len(list))
	for _, item := range list {
		reqMap, ok := item.(map[string]any)
		if !ok {
			continue
		}
		req := map[string][]string{}
		for scheme, rawScopes := range reqMap {
			req[scheme] = strSlice(rawScopes)
		}
		out = append(out, req)
	}
	return out
}

func strField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func boolField(m map[string]any, key string) bool {
	b, _ := m[key].(bool)
	return b
}

func strSlice(raw any) []string {
	list, ok := raw.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, v := range list {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func strUpper(method string) string {
	b := []byte(method)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 32
		}
	}
	return string(b)
}
