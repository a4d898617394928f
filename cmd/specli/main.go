// Command specli turns an OpenAPI 3.x document into a non-interactive CLI:
// see internal/cli for the dynamic command tree this binary assembles
// before handing control to cobra.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/AndrewBarba/specli/internal/authscheme"
	"github.com/AndrewBarba/specli/internal/cli"
	"github.com/AndrewBarba/specli/internal/command"
	"github.com/AndrewBarba/specli/internal/logging"
	"github.com/AndrewBarba/specli/internal/naming"
	"github.com/AndrewBarba/specli/internal/opindex"
	"github.com/AndrewBarba/specli/internal/profile"
	"github.com/AndrewBarba/specli/internal/request"
	"github.com/AndrewBarba/specli/internal/servers"
	"github.com/AndrewBarba/specli/internal/specloader"
)

// version/commit/date are set via -ldflags at release build time, matching
// the teacher's cmd/currier convention.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// The following are set via -ldflags only by the build-time embedding step
// named in §6 "Build-time contract"; a plain `go build` leaves them empty,
// which downstream code treats as "no default" per that section.
var (
	embeddedSpecText  string
	embeddedCLIName   string
	embeddedServer    string
	embeddedServerVar string // comma-separated k=v pairs
	embeddedAuthKey   string
)

func main() {
	logger := logging.NewStderr(slog.LevelWarn, os.Stderr)

	input := cli.ResolveSpecInput(os.Args[1:], embeddedSpecText)
	loader := specloader.NewLoader(cli.RealFiles{}, cli.RealFetcher{}, logger)

	loaded, err := loader.Load(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	ops := opindex.Build(loaded.Document)
	planned := naming.Plan(ops)
	model := command.Build(loaded.SpecID, planned)
	serverList := servers.Collect(loaded.Document)
	registry := authscheme.Build(loaded.Document)

	name := embeddedCLIName
	if name == "" {
		name = "specli"
	}

	store, err := openProfileStore(name)
	if err != nil {
		logger.Warn("profile store unavailable, logins will not persist", "error", err)
	}
	if store != nil {
		defer store.Close()
	}

	cfg := cli.RootConfig{
		Name:         name,
		Version:      version,
		Loaded:       loaded,
		Model:        model,
		Servers:      serverList,
		AuthRegistry: registry,
		Embedded: request.EmbeddedDefaults{
			Server:     embeddedServer,
			ServerVars: parseKV(embeddedServerVar),
			AuthScheme: embeddedAuthKey,
		},
		Operations:   ops,
		Planned:      planned,
		ProfileStore: store,
	}

	root := cli.NewRootCommand(cfg)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func openProfileStore(cliName string) (*profile.Store, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		homeDir, herr := os.UserHomeDir()
		if herr != nil {
			return nil, fmt.Errorf("could not determine config directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	dir := filepath.Join(configDir, cliName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("could not create config directory: %w", err)
	}

	return profile.Open(filepath.Join(dir, "profiles.db"))
}

func parseKV(raw string) map[string]string {
	if raw == "" {
		return nil
	}
	out := map[string]string{}
	for _, pair := range strings.Split(raw, ",") {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		out[name] = value
	}
	return out
}
