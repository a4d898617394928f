package paramderiver

// BuildLocationSchema builds the object schema for one parameter location
// (query, header, or cookie) per §4.6: properties from the parameter
// schemas, a required list for required params. Returns nil when there are
// no properties for that location, so callers can omit it.
func BuildLocationSchema(specs []ParamSpec, in string) map[string]any {
	props := map[string]any{}
	var required []string
	for _, p := range specs {
		if string(p.In) != in {
			continue
		}
		schema := p.Schema
		if schema == nil {
			schema = map[string]any{}
		}
		props[p.Name] = schema
		if p.Required {
			required = append(required, p.Name)
		}
	}
	if len(props) == 0 {
		return nil
	}
	out := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		out["required"] = required
	}
	return out
}
