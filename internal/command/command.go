// Package command implements C7: aggregating the naming planner and param
// deriver outputs into a resource-grouped, lexicographically ordered
// command catalog with content-addressed action ids.
package command

import (
	"sort"
	"strings"

	"github.com/AndrewBarba/specli/internal/naming"
	"github.com/AndrewBarba/specli/internal/paramderiver"
	"github.com/AndrewBarba/specli/internal/strcase"
)

// AuthRequirement is one {key, scopes[]} entry within an AuthSummary
// alternative.
type AuthRequirement struct {
	Key    string
	Scopes []string
}

// AuthSummary is an ordered list of alternatives; any one alternative
// satisfies the operation's auth requirement. An empty list means no auth
// is required.
type AuthSummary struct {
	Alternatives [][]AuthRequirement
}

// RequiresAuth reports whether any alternative exists.
func (a AuthSummary) RequiresAuth() bool {
	return len(a.Alternatives) > 0
}

func buildAuthSummary(security []map[string][]string) AuthSummary {
	var alts [][]AuthRequirement
	for _, req := range security {
		keys := make([]string, 0, len(req))
		for k := range req {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var alt []AuthRequirement
		for _, k := range keys {
			alt = append(alt, AuthRequirement{Key: k, Scopes: req[k]})
		}
		alts = append(alts, alt)
	}
	return AuthSummary{Alternatives: alts}
}

// CommandAction is one fully derived resource/action command.
type CommandAction struct {
	ID                 string
	Key                string // "METHOD path"
	Resource           string
	Action             string
	CanonicalAction    string
	AliasOf            string
	Method             string
	Path               string
	RawPathArgs        []string
	Positionals        []paramderiver.ParamSpec
	Flags              []paramderiver.ParamSpec
	BodyContentType    string
	BodyRequired       bool
	BodyFlags          []paramderiver.BodyFlagDef
	QuerySchema        map[string]any
	HeaderSchema       map[string]any
	CookieSchema       map[string]any
	RequestBodySchema  map[string]any
	Auth               AuthSummary
	Style              naming.Style
	Tags               []string
	Summary            string
	Description        string
	Deprecated         bool
}

// Resource groups a resource name with its sorted actions.
type Resource struct {
	Name    string
	Actions []CommandAction
}

// Model is the full command catalog: resources sorted alphabetically,
// actions within each resource sorted by action then path then method.
type Model struct {
	SpecID    string
	Resources []Resource
}

// Build assembles the command model for a planned operation set.
func Build(specID string, planned []naming.PlannedOperation) Model {
	byResource := map[string][]CommandAction{}
	var resourceOrder []string

	for _, op := range planned {
		action := buildAction(specID, op)
		if _, seen := indexOf(resourceOrder, op.Resource); !seen {
			resourceOrder = append(resourceOrder, op.Resource)
		}
		byResource[op.Resource] = append(byResource[op.Resource], action)
	}

	sort.Strings(resourceOrder)

	model := Model{SpecID: specID}
	for _, name := range resourceOrder {
		actions := byResource[name]
		sort.Slice(actions, func(i, j int) bool {
			a, b := actions[i], actions[j]
			if a.Action != b.Action {
				return a.Action < b.Action
			}
			if a.Path != b.Path {
				return a.Path < b.Path
			}
			return a.Method < b.Method
		})
		model.Resources = append(model.Resources, Resource{Name: name, Actions: actions})
	}

	return model
}

func buildAction(specID string, op naming.PlannedOperation) CommandAction {
	positionals, flags := paramderiver.Derive(op)
	contentType, bodyFlags := paramderiver.DeriveBodyFlags(op, flags)

	var requestBodySchema map[string]any
	var bodyRequired bool
	if op.RequestBody != nil {
		bodyRequired = op.RequestBody.Required
		if contentType != "" {
			requestBodySchema = op.RequestBody.SchemaByContentType[contentType]
		}
	}

	opKey := strcase.Kebab(op.Key())

	return CommandAction{
		ID:                id(specID, op.Resource, op.Action, opKey),
		Key:               op.Key(),
		Resource:          op.Resource,
		Action:            op.Action,
		CanonicalAction:   op.CanonicalAction,
		AliasOf:           op.AliasOf,
		Method:            op.Method,
		Path:              op.Path,
		RawPathArgs:       op.RawPathArgs,
		Positionals:       positionals,
		Flags:             flags,
		BodyContentType:   contentType,
		BodyRequired:      bodyRequired,
		BodyFlags:         bodyFlags,
		QuerySchema:       paramderiver.BuildLocationSchema(flags, "query"),
		HeaderSchema:      paramderiver.BuildLocationSchema(flags, "header"),
		CookieSchema:      paramderiver.BuildLocationSchema(flags, "cookie"),
		RequestBodySchema: requestBodySchema,
		Auth:              buildAuthSummary(op.Security),
		Style:             op.Style,
		Tags:              op.Tags,
		Summary:           op.Summary,
		Description:       op.Description,
		Deprecated:        op.Deprecated,
	}
}

func id(specID, resource, action, opKey string) string {
	return strings.Join([]string{specID, strcase.Kebab(resource), strcase.Kebab(action), opKey}, ":")
}

func indexOf(list []string, s string) (int, bool) {
	for i, v := range list {
		if v == s {
			return i, true
		}
	}
	return -1, false
}

// Find locates an action by resource and action name.
func (m Model) Find(resource, action string) (CommandAction, bool) {
	for _, r := range m.Resources {
		if r.Name != resource {
			continue
		}
		for _, a := range r.Actions {
			if a.Action == action {
				return a, true
			}
		}
	}
	return CommandAction{}, false
}
