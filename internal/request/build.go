package request

import (
	"encoding/json"

	"github.com/AndrewBarba/specli/internal/authscheme"
	"github.com/AndrewBarba/specli/internal/command"
	"github.com/AndrewBarba/specli/internal/result"
	"github.com/AndrewBarba/specli/internal/servers"
)

// BuildInput bundles everything Build needs beyond the command action and
// the raw flag values: the spec's servers and auth registry, the active
// profile (if any), build-time embedded defaults, and the profile/secret
// store to consult for stored tokens.
type BuildInput struct {
	SpecID               string
	Action               command.CommandAction
	Positionals          []string
	FlagValues           map[string]FlagValue
	Globals              Globals
	Servers              []servers.ServerInfo
	AuthRegistry         *authscheme.Registry
	Profile              *Profile
	Embedded             EmbeddedDefaults
	ProfileLookup        ProfileLookup
	AllowStoredTokenAuto bool
}

// Outcome is Build's result: exactly one of Prepared or Errors is set (a
// validation failure never also returns a usable PreparedRequest).
type Outcome struct {
	Prepared *PreparedRequest
	Errors   []result.ValidationError
}

// Build runs the full C8 pipeline: resolve the server, render the path,
// place parameters, assemble and validate the body, resolve and apply
// auth, and render the curl-equivalent string.
func Build(in BuildInput) (Outcome, error) {
	profileLookup := in.ProfileLookup
	if profileLookup == nil {
		profileLookup = NoopProfileLookup{}
	}

	base, err := resolveServer(in.Globals, in.Profile, in.Embedded, in.Servers)
	if err != nil {
		return Outcome{}, err
	}

	renderedPath := renderPath(in.Action.Path, in.Action.RawPathArgs, in.Positionals)
	fullURL, err := joinBaseAndPath(base, renderedPath)
	if err != nil {
		return Outcome{}, err
	}

	var failures []result.ValidationError

	queryInstance, qerrs := instanceForLocation(in.Action.Flags, "query", in.FlagValues)
	headerInstance, herrs := instanceForLocation(in.Action.Flags, "header", in.FlagValues)
	cookieInstance, cerrs := instanceForLocation(in.Action.Flags, "cookie", in.FlagValues)
	failures = append(failures, qerrs...)
	failures = append(failures, herrs...)
	failures = append(failures, cerrs...)

	for _, step := range []struct {
		schema   map[string]any
		instance any
	}{
		{in.Action.QuerySchema, queryInstance},
		{in.Action.HeaderSchema, headerInstance},
		{in.Action.CookieSchema, cookieInstance},
	} {
		verrs, err := validateLocation(step.schema, step.instance)
		if err != nil {
			return Outcome{}, err
		}
		failures = append(failures, verrs...)
	}

	bodyDoc, contentType, bodyErrs := buildBody(in.Action, in.FlagValues)
	failures = append(failures, bodyErrs...)

	if bodyDoc != "" && in.Action.RequestBodySchema != nil {
		var decoded any
		if jsonErr := json.Unmarshal([]byte(bodyDoc), &decoded); jsonErr == nil {
			verrs, err := validateLocation(in.Action.RequestBodySchema, decoded)
			if err != nil {
				return Outcome{}, err
			}
			failures = append(failures, verrs...)
		}
	}

	if len(failures) > 0 {
		return Outcome{Errors: failures}, nil
	}

	query, headerPairs, cookiePairs := placeParameters(in.Action, in.FlagValues)

	headers := NewHeaders()
	if contentType != "" && bodyDoc != "" {
		headers.Set("Content-Type", contentType)
	}
	applyHeadersAndCookies(headers, headerPairs, cookiePairs)

	auth, authErr := resolveAuth(in.Action, in.Globals, authOptions{
		Profile:              in.Profile,
		Embedded:             in.Embedded,
		Registry:             in.AuthRegistry,
		ProfileLookup:        profileLookup,
		SpecID:               in.SpecID,
		AllowStoredTokenAuto: in.AllowStoredTokenAuto,
	})
	if authErr != nil && in.Action.Auth.RequiresAuth() {
		return Outcome{}, authErr
	}
	applyAuth(headers, &query, auth)

	if qs := buildQueryString(query); qs != "" {
		fullURL = fullURL + "?" + qs
	}

	prepared := &PreparedRequest{
		Method:  in.Action.Method,
		URL:     fullURL,
		Headers: headers,
		Body:    bodyDoc,
	}
	prepared.Curl = renderCurl(prepared.Method, prepared.URL, prepared.Headers, prepared.Body)

	return Outcome{Prepared: prepared}, nil
}
