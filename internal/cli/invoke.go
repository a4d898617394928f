package cli

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/AndrewBarba/specli/internal/authscheme"
	"github.com/AndrewBarba/specli/internal/command"
	"github.com/AndrewBarba/specli/internal/executor"
	"github.com/AndrewBarba/specli/internal/naming"
	"github.com/AndrewBarba/specli/internal/opindex"
	"github.com/AndrewBarba/specli/internal/profile"
	"github.com/AndrewBarba/specli/internal/render"
	"github.com/AndrewBarba/specli/internal/request"
	"github.com/AndrewBarba/specli/internal/result"
	"github.com/AndrewBarba/specli/internal/servers"
	"github.com/AndrewBarba/specli/internal/specloader"
)

// RootConfig bundles the fully-resolved pipeline output main.go assembles
// during bootstrap, everything NewRootCommand needs to build the dynamic
// command tree and wire each leaf action to the request/executor/render
// pipeline.
type RootConfig struct {
	Name         string
	Version      string
	Loaded       *specloader.LoadedSpec
	Model        command.Model
	Servers      []servers.ServerInfo
	AuthRegistry *authscheme.Registry
	Embedded     request.EmbeddedDefaults
	Operations   []opindex.NormalizedOperation
	Planned      []naming.PlannedOperation
	ProfileStore *profile.Store
}

// invoker carries the resolved pipeline and parsed globals through to every
// leaf command's RunE closure.
type invoker struct {
	cfg     RootConfig
	globals *globalFlags
}

func (inv *invoker) profileLookup() request.ProfileLookup {
	if inv.cfg.ProfileStore == nil {
		return request.NoopProfileLookup{}
	}
	return inv.cfg.ProfileStore
}

// activeProfile reads the spec's default profile, addressed by the empty
// profile name per the Open Question decision recorded in DESIGN.md (no
// --profile flag exists in v1; the empty name stands for "the default").
func (inv *invoker) activeProfile() *request.Profile {
	if inv.cfg.ProfileStore == nil {
		return nil
	}
	p, _ := inv.cfg.ProfileStore.GetProfileForSpec(context.Background(), inv.cfg.Loaded.SpecID, "")
	return p
}

// renderer builds a Renderer matching the requested output mode, enabling
// color only for an interactive text-mode stdout.
func (inv *invoker) renderer(cmd *cobra.Command) *render.Renderer {
	mode := render.ModeText
	if inv.globals.jsonOutput {
		mode = render.ModeJSON
	}
	color := mode == render.ModeText && isatty.IsTerminal(os.Stdout.Fd())
	return render.New(mode, color, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// runAction drives the full per-invocation pipeline: build the prepared
// request (or a validation failure), execute it (or short-circuit to curl),
// render the result, and exit with its mapped exit code. It never returns.
func (inv *invoker) runAction(cmd *cobra.Command, action command.CommandAction, positionals []string, flagValues map[string]request.FlagValue, curlOnly bool) {
	r := inv.renderer(cmd)

	in := request.BuildInput{
		SpecID:               inv.cfg.Loaded.SpecID,
		Action:               action,
		Positionals:          positionals,
		FlagValues:           flagValues,
		Globals:              inv.globals.toGlobals(),
		Servers:              inv.cfg.Servers,
		AuthRegistry:         inv.cfg.AuthRegistry,
		Profile:              inv.activeProfile(),
		Embedded:             inv.cfg.Embedded,
		ProfileLookup:        inv.profileLookup(),
		AllowStoredTokenAuto: false,
	}

	outcome, err := request.Build(in)

	var res result.CommandResult
	switch {
	case err != nil:
		res = result.Error(err.Error(), nil, nil)
	case len(outcome.Errors) > 0:
		res = result.Validation(outcome.Errors, nil)
	default:
		exec := executor.New(nil)
		res = exec.Execute(cmd.Context(), outcome.Prepared, curlOnly)
	}

	res = res.WithContext(action.Resource, action.Action)
	os.Exit(r.Render(res))
}

// runData renders a data-kind result from a built-in (login/logout/whoami/
// __schema) and exits with its mapped code (always 0 per §3 invariant 6).
func (inv *invoker) runData(cmd *cobra.Command, kind string, data any) {
	r := inv.renderer(cmd)
	os.Exit(r.Render(result.Data(kind, data)))
}

// runError renders an error-kind result from a built-in and exits 1.
func (inv *invoker) runError(cmd *cobra.Command, message string) {
	r := inv.renderer(cmd)
	os.Exit(r.Render(result.Error(message, nil, nil)))
}
