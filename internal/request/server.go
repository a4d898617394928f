package request

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/AndrewBarba/specli/internal/servers"
)

// resolveServer implements §4.8's server resolution: first non-empty of
// CLI --server, profile server, embedded default, servers[0].url; then
// resolves {var} placeholders from CLI --server-var > embedded default >
// the spec's own server-variable default (or its first enum value). The
// spec's values apply only when the base URL came from servers[0].
func resolveServer(globals Globals, profile *Profile, embedded EmbeddedDefaults, serverList []servers.ServerInfo) (string, error) {
	base := globals.Server
	if base == "" && profile != nil {
		base = profile.Server
	}
	if base == "" {
		base = embedded.Server
	}

	var specDefaults map[string]string
	if base == "" && len(serverList) > 0 {
		base = serverList[0].URL
		specDefaults = map[string]string{}
		for _, v := range serverList[0].Variables {
			if v.Default != "" {
				specDefaults[v.Name] = v.Default
			} else if len(v.Enum) > 0 {
				specDefaults[v.Name] = v.Enum[0]
			}
		}
	}

	if base == "" {
		return "", fmt.Errorf("request: no server resolved (no --server, profile, embedded default, or spec server)")
	}

	varNames := servers.VariableNames(base)
	if len(varNames) == 0 {
		return base, nil
	}

	resolved := base
	for _, name := range varNames {
		value, ok := "", false
		if v, exists := globals.ServerVars[name]; exists && v != "" {
			value, ok = v, true
		} else if v, exists := embedded.ServerVars[name]; exists && v != "" {
			value, ok = v, true
		} else if specDefaults != nil {
			if v, exists := specDefaults[name]; exists && v != "" {
				value, ok = v, true
			}
		}
		if !ok {
			return "", fmt.Errorf("%w: %q in server URL %q", ErrUnresolvedServerVariable, name, base)
		}
		resolved = strings.ReplaceAll(resolved, "{"+name+"}", value)
	}

	return resolved, nil
}

// joinBaseAndPath joins a server base URL with a path template's already
// rendered path, treating a leading "/" on the path as relative to the
// base's own path (preserving any base-path prefix), per §4.8.
func joinBaseAndPath(base, renderedPath string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("request: invalid server URL %q: %w", base, err)
	}

	baseDir := u.EscapedPath()
	if !strings.HasSuffix(baseDir, "/") {
		baseDir += "/"
	}
	trimmedPath := strings.TrimPrefix(renderedPath, "/")
	rawPath := baseDir + trimmedPath
	path, err := url.PathUnescape(rawPath)
	if err != nil {
		return "", fmt.Errorf("request: invalid path %q: %w", rawPath, err)
	}
	u.Path = path
	u.RawPath = rawPath

	return u.String(), nil
}
