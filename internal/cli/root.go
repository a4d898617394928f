// Package cli implements C13: assembling the dynamic cobra command tree
// from a resolved command.Model and wiring each leaf command to the
// request/executor/render pipeline. Building that tree requires the spec
// to already be loaded (see bootstrap.go and ResolveSpecInput), so
// NewRootCommand takes a fully-resolved RootConfig rather than discovering
// the spec itself.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRootCommand builds the complete cobra tree for cfg: global flags, the
// login/logout/whoami/__schema built-ins, and one subcommand per resource
// with one child subcommand per action, per §4.13 and §6.
func NewRootCommand(cfg RootConfig) *cobra.Command {
	g := &globalFlags{}
	inv := &invoker{cfg: cfg, globals: g}

	name := cfg.Name
	if name == "" {
		name = "specli"
	}

	root := &cobra.Command{
		Use:           name,
		Short:         fmt.Sprintf("%s — a generated CLI for %s", name, specTitle(cfg)),
		Version:       cfg.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.PersistentFlags().StringVar(&g.spec, "spec", "", "OpenAPI document path or URL (resolved before startup)")
	root.PersistentFlags().StringVar(&g.server, "server", "", "Override the server URL")
	root.PersistentFlags().Var(&kvFlagValue{target: &g.serverVars}, "server-var", "Server URL template variable, name=value (repeatable)")
	root.PersistentFlags().StringVar(&g.authScheme, "auth", "", "Auth scheme key to use")
	root.PersistentFlags().StringVar(&g.bearerToken, "bearer-token", "", "Bearer token")
	root.PersistentFlags().StringVar(&g.oauthToken, "oauth-token", "", "Alias of --bearer-token")
	root.PersistentFlags().StringVar(&g.username, "username", "", "Basic auth username")
	root.PersistentFlags().StringVar(&g.password, "password", "", "Basic auth password")
	root.PersistentFlags().StringVar(&g.apiKey, "api-key", "", "API key credential")
	root.PersistentFlags().BoolVar(&g.jsonOutput, "json", false, "Emit machine-readable JSON instead of colorized text")

	root.AddCommand(newLoginCommand(inv))
	root.AddCommand(newLogoutCommand(inv))
	root.AddCommand(newWhoamiCommand(inv))
	root.AddCommand(newSchemaCommand(inv))

	for _, resource := range cfg.Model.Resources {
		root.AddCommand(newResourceCommand(resource, inv))
	}

	return root
}

func specTitle(cfg RootConfig) string {
	if cfg.Loaded == nil {
		return "an OpenAPI spec"
	}
	if info, ok := cfg.Loaded.Document["info"].(map[string]any); ok {
		if title, ok := info["title"].(string); ok && title != "" {
			return title
		}
	}
	return cfg.Loaded.SpecID
}
