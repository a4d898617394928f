package cli

import (
	"strings"

	"github.com/AndrewBarba/specli/internal/specloader"
)

// ResolveSpecInput pre-scans argv for the --spec flag so the document can be
// loaded, dereferenced, and turned into a command.Model before the cobra
// tree — whose resource/action subcommands depend on that model — is ever
// constructed. cobra only parses flags after the tree it builds against
// already exists, so this scan has to happen outside of it.
func ResolveSpecInput(args []string, embeddedText string) specloader.Input {
	spec := ""
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--spec":
			if i+1 < len(args) {
				spec = args[i+1]
			}
		case strings.HasPrefix(arg, "--spec="):
			spec = strings.TrimPrefix(arg, "--spec=")
		}
	}
	return specloader.Input{Spec: spec, EmbeddedText: embeddedText}
}
