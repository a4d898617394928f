package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AndrewBarba/specli/internal/command"
	"github.com/AndrewBarba/specli/internal/paramderiver"
	"github.com/AndrewBarba/specli/internal/request"
)

// newResourceCommand builds one resource's subcommand, with one child
// subcommand per action, per §4.13.
func newResourceCommand(r command.Resource, inv *invoker) *cobra.Command {
	cmd := &cobra.Command{
		Use:   r.Name,
		Short: fmt.Sprintf("Commands for %s", r.Name),
	}
	for _, action := range r.Actions {
		cmd.AddCommand(newActionCommand(action, inv))
	}
	return cmd
}

// flagBinding remembers where one declared flag's parsed value landed, so
// RunE can read it back (via cmd.Flags().Changed) without re-deriving the
// flag name/type mapping a second time.
type flagBinding struct {
	key     string
	name    string
	kind    paramderiver.Type
	strVal  *string
	boolVal *bool
	arrVal  *[]string
}

// newActionCommand builds one action's leaf command: positionals in
// raw_path_args order, one flag per declared ParamSpec, one flag per
// dot-notation body flag, and the built-in --curl short-circuit, per §4.13.
func newActionCommand(a command.CommandAction, inv *invoker) *cobra.Command {
	use := a.Action
	for _, p := range a.Positionals {
		use += " <" + p.Name + ">"
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: actionShort(a),
		Long:  a.Description,
		Args:  cobra.ArbitraryArgs,
	}
	if a.Deprecated {
		cmd.Deprecated = "this operation is marked deprecated in the source spec"
	}

	var bindings []flagBinding
	claimsCurl := false
	for _, spec := range a.Flags {
		name := strings.TrimPrefix(spec.Flag, "--")
		if name == "curl" {
			claimsCurl = true
		}
		bindings = append(bindings, registerParamFlag(cmd, spec, name))
	}
	for _, def := range a.BodyFlags {
		name := strings.TrimPrefix(def.Flag, "--")
		bindings = append(bindings, registerBodyFlag(cmd, def, name))
	}

	var curlFlag bool
	if !claimsCurl {
		cmd.Flags().BoolVar(&curlFlag, "curl", false, "Print the equivalent curl command instead of sending the request")
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if len(args) < len(a.Positionals) {
			missing := a.Positionals[len(args)]
			inv.runError(cmd, fmt.Sprintf("missing required positional '%s'", missing.Name))
			return nil
		}
		positionals := args[:len(a.Positionals)]

		flagValues := map[string]request.FlagValue{}
		for _, b := range bindings {
			if !cmd.Flags().Changed(b.name) {
				continue
			}
			switch {
			case b.boolVal != nil:
				flagValues[b.key] = request.FlagValue{IsBool: true, Bool: *b.boolVal}
			case b.arrVal != nil:
				flagValues[b.key] = request.FlagValue{IsArray: true, Array: *b.arrVal}
			default:
				flagValues[b.key] = request.FlagValue{String: *b.strVal}
			}
		}

		inv.runAction(cmd, a, positionals, flagValues, curlFlag)
		return nil
	}

	return cmd
}

// registerParamFlag registers one query/header/cookie ParamSpec as a cobra
// flag, keyed for lookup by its camelCase flag name per §9 "Case and
// camelCase convention".
func registerParamFlag(cmd *cobra.Command, spec paramderiver.ParamSpec, name string) flagBinding {
	key := paramderiver.FlagToCamel(spec.Flag)
	usage := flagUsage(spec.Description, spec.Required)

	switch spec.Type {
	case paramderiver.TypeBoolean:
		var v bool
		cmd.Flags().BoolVar(&v, name, false, usage)
		return flagBinding{key: key, name: name, kind: spec.Type, boolVal: &v}
	case paramderiver.TypeArray:
		var v []string
		cmd.Flags().Var(&arrayFlagValue{values: &v}, name, usage)
		return flagBinding{key: key, name: name, kind: spec.Type, arrVal: &v}
	default:
		// Numbers and integers are bound as strings and coerced downstream
		// by the request builder (§4.8), so malformed input surfaces as a
		// validation result instead of a cobra parse error.
		var v string
		cmd.Flags().StringVar(&v, name, "", usage)
		return flagBinding{key: key, name: name, kind: spec.Type, strVal: &v}
	}
}

// registerBodyFlag registers one dot-notation body flag. Its lookup key is
// the literal flag name with dots preserved, never camelCased, per §9.
func registerBodyFlag(cmd *cobra.Command, def paramderiver.BodyFlagDef, name string) flagBinding {
	usage := flagUsage(def.Description, def.Required)
	if def.Type == paramderiver.TypeBoolean {
		var v bool
		cmd.Flags().BoolVar(&v, name, false, usage)
		return flagBinding{key: name, name: name, kind: def.Type, boolVal: &v}
	}
	var v string
	cmd.Flags().StringVar(&v, name, "", usage)
	return flagBinding{key: name, name: name, kind: def.Type, strVal: &v}
}

func flagUsage(description string, required bool) string {
	if required {
		if description == "" {
			return "(required)"
		}
		return description + " (required)"
	}
	return description
}

func actionShort(a command.CommandAction) string {
	if a.Summary != "" {
		return a.Summary
	}
	return a.Method + " " + a.Path
}
