// Package naming implements C5: assigning deterministic (resource, action)
// pairs to operations via REST/RPC heuristics, pluralization, and collision
// suffixing.
package naming

import (
	"sort"
	"strings"

	"github.com/AndrewBarba/specli/internal/opindex"
	"github.com/AndrewBarba/specli/internal/strcase"
)

// Style classifies an operation's command shape.
type Style string

const (
	StyleREST Style = "rest"
	StyleRPC  Style = "rpc"
)

// PlannedOperation augments a NormalizedOperation with its derived naming.
type PlannedOperation struct {
	opindex.NormalizedOperation

	Resource        string
	Action          string
	CanonicalAction string
	PathArgs        []string // kebab-cased positional names, in template order
	RawPathArgs     []string // original path-parameter names, in template order
	Style           Style
	AliasOf         string // non-empty when Action was disambiguated
}

var genericTags = map[string]bool{"default": true, "defaults": true, "api": true}

var actionSynonyms = map[string]string{
	"retrieve": "get",
	"read":     "get",
	"search":   "list",
	"patch":    "update",
	"remove":   "delete",
}

var restActions = map[string]bool{"get": true, "list": true, "create": true, "update": true, "delete": true}

// Plan assigns (resource, action) to every operation and resolves
// collisions, returning operations ordered by (resource, action, path,
// method) per §4.5.
func Plan(ops []opindex.NormalizedOperation) []PlannedOperation {
	planned := make([]PlannedOperation, 0, len(ops))
	for _, op := range ops {
		planned = append(planned, plan(op))
	}
	resolveCollisions(planned)

	sort.Slice(planned, func(i, j int) bool {
		a, b := planned[i], planned[j]
		if a.Resource != b.Resource {
			return a.Resource < b.Resource
		}
		if a.Action != b.Action {
			return a.Action < b.Action
		}
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		return a.Method < b.Method
	})

	return planned
}

func plan(op opindex.NormalizedOperation) PlannedOperation {
	style := classifyStyle(op)
	resource := deriveResource(op, style)
	rawPathArgs := pathTemplateVars(op.Path)
	pathArgs := make([]string, len(rawPathArgs))
	for i, a := range rawPathArgs {
		pathArgs[i] = strcase.Kebab(a)
	}

	action := deriveAction(op, style, resource, len(rawPathArgs) > 0)

	return PlannedOperation{
		NormalizedOperation: op,
		Resource:            resource,
		Action:              action,
		CanonicalAction:     action,
		PathArgs:            pathArgs,
		RawPathArgs:         rawPathArgs,
		Style:               style,
	}
}

func classifyStyle(op opindex.NormalizedOperation) Style {
	if strings.Contains(op.Path, ".") {
		return StyleRPC
	}
	if strings.Contains(op.OperationID, ".") && op.Method == "POST" {
		return StyleRPC
	}
	return StyleREST
}

func pathTemplateVars(path string) []string {
	var out []string
	for _, seg := range strings.Split(path, "/") {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			out = append(out, strings.TrimSuffix(strings.TrimPrefix(seg, "{"), "}"))
		}
	}
	return out
}

func deriveResource(op opindex.NormalizedOperation, style Style) string {
	// 1. first non-generic tag
	for _, tag := range op.Tags {
		lower := strings.ToLower(tag)
		if genericTags[lower] {
			continue
		}
		return strcase.Kebab(strcase.Pluralize(tag))
	}

	// 2. operationId prefix before '.', '__', or '_'
	if op.OperationID != "" {
		prefix := splitFirst(op.OperationID, ".", "__", "_")
		if prefix != "" {
			if prefix == "ping" {
				return "ping"
			}
			return strcase.Kebab(strcase.Pluralize(prefix))
		}
	}

	// 3. first non-empty path segment
	path := op.Path
	if style == StyleRPC {
		if idx := strings.Index(path, "."); idx >= 0 {
			path = path[:idx]
		}
	}
	for _, seg := range strings.Split(path, "/") {
		if seg == "" {
			continue
		}
		if strings.HasPrefix(seg, "{") {
			continue
		}
		if seg == "ping" {
			return "ping"
		}
		return strcase.Kebab(strcase.Pluralize(seg))
	}

	return "root"
}

// splitFirst returns the prefix of s before whichever of seps occurs first,
// or "" if none occur.
func splitFirst(s string, seps ...string) string {
	best := -1
	for _, sep := range seps {
		if idx := strings.Index(s, sep); idx >= 0 && (best == -1 || idx < best) {
			best = idx
		}
	}
	if best == -1 {
		return ""
	}
	return s[:best]
}

func deriveAction(op opindex.NormalizedOperation, style Style, resource string, hasPathArgs bool) string {
	if style == StyleRPC {
		return deriveRPCAction(op)
	}
	return deriveRESTAction(op, hasPathArgs)
}

func deriveRESTAction(op opindex.NormalizedOperation, hasPathArgs bool) string {
	if op.OperationID != "" {
		suffix := lastSuffix(op.OperationID, ".", "__", "_")
		if suffix != "" {
			canon := canonicalizeAction(strcase.Kebab(suffix))
			if restActions[canon] {
				return canon
			}
		}
	}

	switch {
	case op.Method == "GET" && !hasPathArgs:
		return "list"
	case op.Method == "POST" && !hasPathArgs:
		return "create"
	case op.Method == "GET" && hasPathArgs:
		return "get"
	case (op.Method == "PUT" || op.Method == "PATCH") && hasPathArgs:
		return "update"
	case op.Method == "DELETE" && hasPathArgs:
		return "delete"
	default:
		return strcase.Kebab(op.Method)
	}
}

func deriveRPCAction(op opindex.NormalizedOperation) string {
	if op.OperationID != "" {
		suffix := lastSuffix(op.OperationID, ".", "__", "_")
		if suffix != "" {
			return canonicalizeAction(strcase.Kebab(suffix))
		}
	}
	if idx := strings.LastIndex(op.Path, "."); idx >= 0 {
		last := op.Path[idx+1:]
		if last != "" {
			return canonicalizeAction(strcase.Kebab(last))
		}
	}
	return strcase.Kebab(op.Method)
}

func lastSuffix(s string, seps ...string) string {
	best := -1
	bestLen := 0
	for _, sep := range seps {
		if idx := strings.LastIndex(s, sep); idx >= 0 && idx > best {
			best = idx
			bestLen = len(sep)
		}
	}
	if best == -1 {
		return ""
	}
	return s[best+bestLen:]
}

func canonicalizeAction(action string) string {
	if canon, ok := actionSynonyms[action]; ok {
		return canon
	}
	return action
}
