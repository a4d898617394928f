package cli

import "github.com/AndrewBarba/specli/internal/request"

// globalFlags holds the root-level flag values bound by NewRootCommand,
// shared by every resource/action subcommand and the login/logout/whoami/
// __schema built-ins, per §6 "Global flags".
type globalFlags struct {
	spec        string
	server      string
	serverVars  map[string]string
	authScheme  string
	bearerToken string
	oauthToken  string
	username    string
	password    string
	apiKey      string
	jsonOutput  bool
}

// toGlobals adapts the parsed CLI flags into request.Globals, resolving
// --oauth-token as a plain alias of --bearer-token per §6.
func (g *globalFlags) toGlobals() request.Globals {
	token := g.bearerToken
	if token == "" {
		token = g.oauthToken
	}
	return request.Globals{
		Server:      g.server,
		ServerVars:  g.serverVars,
		AuthScheme:  g.authScheme,
		BearerToken: token,
		Username:    g.username,
		Password:    g.password,
		APIKey:      g.apiKey,
	}
}
