// Package introspect implements C11: rendering the loaded spec and derived
// command model as the deterministic `__schema` payload, in both its full
// and minimal variants.
package introspect

import (
	"github.com/AndrewBarba/specli/internal/authscheme"
	"github.com/AndrewBarba/specli/internal/command"
	"github.com/AndrewBarba/specli/internal/jsonutil"
	"github.com/AndrewBarba/specli/internal/naming"
	"github.com/AndrewBarba/specli/internal/opindex"
	"github.com/AndrewBarba/specli/internal/paramderiver"
	"github.com/AndrewBarba/specli/internal/servers"
	"github.com/AndrewBarba/specli/internal/specloader"
)

// Input bundles every derived structure the §4.11 record draws from.
type Input struct {
	Loaded     *specloader.LoadedSpec
	Servers    []servers.ServerInfo
	Auth       *authscheme.Registry
	Operations []opindex.NormalizedOperation
	Planned    []naming.PlannedOperation
	Model      command.Model
}

// Full builds the complete schema record named in §4.11: schema_version,
// openapi metadata, spec provenance, capability counts, servers, auth
// schemes, the normalized operation list, the planned (resource, action)
// assignments, and the full command tree with its flat id index.
// Canonicalized for byte-stable output across runs.
func Full(in Input) map[string]any {
	doc := baseDoc(in)
	doc["operations"] = operationSummaries(in.Operations)
	doc["planned"] = plannedSummaries(in.Planned)
	doc["commands"] = commandTree(in.Model, true)
	doc["commandsIndex"] = commandsIndex(in.Model)
	return jsonutil.Canonicalize(doc).(map[string]any)
}

// Minimal builds the compact variant: everything in Full except
// operations, planned, and commandsIndex, per §4.11.
func Minimal(in Input) map[string]any {
	doc := baseDoc(in)
	doc["commands"] = commandTree(in.Model, false)
	return jsonutil.Canonicalize(doc).(map[string]any)
}

func baseDoc(in Input) map[string]any {
	return map[string]any{
		"schemaVersion": 1,
		"openapi":       openapiInfo(in.Loaded),
		"spec":          specInfo(in.Loaded),
		"capabilities":  capabilities(in),
		"servers":       serverInfos(in.Servers),
		"authSchemes":   authSchemes(in.Auth),
	}
}

func openapiInfo(loaded *specloader.LoadedSpec) map[string]any {
	out := map[string]any{}
	if loaded == nil {
		return out
	}
	if v, ok := loaded.Document["openapi"].(string); ok {
		out["version"] = v
	}
	if info, ok := loaded.Document["info"].(map[string]any); ok {
		if title, ok := info["title"].(string); ok && title != "" {
			out["title"] = title
		}
		if version, ok := info["version"].(string); ok && version != "" {
			out["infoVersion"] = version
		}
	}
	return out
}

func specInfo(loaded *specloader.LoadedSpec) map[string]any {
	if loaded == nil {
		return map[string]any{}
	}
	return map[string]any{
		"id":          loaded.SpecID,
		"fingerprint": loaded.Fingerprint,
		"source":      string(loaded.Source),
	}
}

func capabilities(in Input) map[string]any {
	commandCount := 0
	for _, r := range in.Model.Resources {
		commandCount += len(r.Actions)
	}
	return map[string]any{
		"servers":    len(in.Servers),
		"auth":       authCount(in.Auth),
		"operations": len(in.Operations),
		"commands":   commandCount,
	}
}

func authCount(reg *authscheme.Registry) int {
	if reg == nil {
		return 0
	}
	return len(reg.Schemes)
}

func serverInfos(list []servers.ServerInfo) []any {
	out := make([]any, 0, len(list))
	for _, s := range list {
		vars := make([]any, 0, len(s.Variables))
		for _, v := range s.Variables {
			entry := map[string]any{"name": v.Name}
			if v.Default != "" {
				entry["default"] = v.Default
			}
			if len(v.Enum) > 0 {
				entry["enum"] = toAnySlice(v.Enum)
			}
			vars = append(vars, entry)
		}
		entry := map[string]any{"url": s.URL, "variables": vars}
		if s.Description != "" {
			entry["description"] = s.Description
		}
		out = append(out, entry)
	}
	return out
}

func authSchemes(reg *authscheme.Registry) []any {
	if reg == nil {
		return []any{}
	}
	out := make([]any, 0, len(reg.Schemes))
	for _, s := range reg.Schemes {
		entry := map[string]any{"key": s.Key, "kind": string(s.Kind)}
		if s.Name != "" {
			entry["name"] = s.Name
		}
		if s.In != "" {
			entry["in"] = s.In
		}
		if s.HTTPScheme != "" {
			entry["httpScheme"] = s.HTTPScheme
		}
		if s.BearerFormat != "" {
			entry["bearerFormat"] = s.BearerFormat
		}
		if s.Description != "" {
			entry["description"] = s.Description
		}
		out = append(out, entry)
	}
	return out
}

func operationSummaries(ops []opindex.NormalizedOperation) []any {
	out := make([]any, 0, len(ops))
	for _, op := range ops {
		entry := map[string]any{
			"method":     op.Method,
			"path":       op.Path,
			"deprecated": op.Deprecated,
		}
		if op.OperationID != "" {
			entry["operationId"] = op.OperationID
		}
		if op.Summary != "" {
			entry["summary"] = op.Summary
		}
		if len(op.Tags) > 0 {
			entry["tags"] = toAnySlice(op.Tags)
		}
		out = append(out, entry)
	}
	return out
}

func plannedSummaries(planned []naming.PlannedOperation) []any {
	out := make([]any, 0, len(planned))
	for _, p := range planned {
		entry := map[string]any{
			"resource": p.Resource,
			"action":   p.Action,
			"method":   p.Method,
			"path":     p.Path,
			"style":    string(p.Style),
		}
		if p.AliasOf != "" {
			entry["aliasOf"] = p.AliasOf
		}
		out = append(out, entry)
	}
	return out
}

func commandsIndex(model command.Model) map[string]any {
	out := map[string]any{}
	for _, r := range model.Resources {
		for _, a := range r.Actions {
			out[a.ID] = map[string]any{"resource": a.Resource, "action": a.Action}
		}
	}
	return out
}

func commandTree(model command.Model, full bool) []any {
	resources := make([]any, 0, len(model.Resources))
	for _, r := range model.Resources {
		actions := make([]any, 0, len(r.Actions))
		for _, a := range r.Actions {
			if full {
				actions = append(actions, fullAction(a))
			} else {
				actions = append(actions, minimalAction(a))
			}
		}
		resources = append(resources, map[string]any{"name": r.Name, "actions": actions})
	}
	return resources
}

func fullAction(a command.CommandAction) map[string]any {
	doc := map[string]any{
		"id":              a.ID,
		"action":          a.Action,
		"canonicalAction": a.CanonicalAction,
		"method":          a.Method,
		"path":            a.Path,
		"style":           string(a.Style),
		"deprecated":      a.Deprecated,
		"positionals":     paramSchemas(a.Positionals),
		"flags":           paramSchemas(a.Flags),
		"bodyFlags":       bodyFlagSchemas(a.BodyFlags),
		"auth":            authSchema(a.Auth),
	}
	if a.AliasOf != "" {
		doc["aliasOf"] = a.AliasOf
	}
	if a.Summary != "" {
		doc["summary"] = a.Summary
	}
	if a.Description != "" {
		doc["description"] = a.Description
	}
	if len(a.Tags) > 0 {
		doc["tags"] = toAnySlice(a.Tags)
	}
	if a.BodyContentType != "" {
		doc["bodyContentType"] = a.BodyContentType
	}
	return doc
}

func minimalAction(a command.CommandAction) map[string]any {
	return map[string]any{
		"action":      a.Action,
		"method":      a.Method,
		"path":        a.Path,
		"positionals": paramNames(a.Positionals),
		"flags":       paramNames(a.Flags),
	}
}

func paramSchemas(specs []paramderiver.ParamSpec) []any {
	out := make([]any, 0, len(specs))
	for _, p := range specs {
		entry := map[string]any{
			"name":     p.Name,
			"required": p.Required,
			"type":     string(p.Type),
		}
		if p.Flag != "" {
			entry["flag"] = p.Flag
		}
		if p.Format != "" {
			entry["format"] = p.Format
		}
		if p.Description != "" {
			entry["description"] = p.Description
		}
		if len(p.Enum) > 0 {
			entry["enum"] = toAnySlice(p.Enum)
		}
		if p.Type == paramderiver.TypeArray {
			entry["itemType"] = string(p.ItemType)
			if p.ItemFormat != "" {
				entry["itemFormat"] = p.ItemFormat
			}
			if len(p.ItemEnum) > 0 {
				entry["itemEnum"] = toAnySlice(p.ItemEnum)
			}
		}
		out = append(out, entry)
	}
	return out
}

func paramNames(specs []paramderiver.ParamSpec) []any {
	out := make([]any, 0, len(specs))
	for _, p := range specs {
		out = append(out, p.Name)
	}
	return out
}

func bodyFlagSchemas(defs []paramderiver.BodyFlagDef) []any {
	out := make([]any, 0, len(defs))
	for _, d := range defs {
		entry := map[string]any{
			"flag":     d.Flag,
			"path":     toAnySlice(d.Path),
			"type":     string(d.Type),
			"required": d.Required,
		}
		if d.Description != "" {
			entry["description"] = d.Description
		}
		out = append(out, entry)
	}
	return out
}

func authSchema(a command.AuthSummary) map[string]any {
	alts := make([]any, 0, len(a.Alternatives))
	for _, alt := range a.Alternatives {
		reqs := make([]any, 0, len(alt))
		for _, r := range alt {
			reqs = append(reqs, map[string]any{
				"key":    r.Key,
				"scopes": toAnySlice(r.Scopes),
			})
		}
		alts = append(alts, reqs)
	}
	return map[string]any{
		"required":     a.RequiresAuth(),
		"alternatives": alts,
	}
}

func toAnySlice(s []string) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = v
	}
	return out
}
