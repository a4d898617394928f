// Package request implements C8: building the URL, placing parameters,
// assembling the body, validating inputs, and applying authentication to
// produce a PreparedRequest.
package request

import (
	"errors"

	"github.com/AndrewBarba/specli/internal/authscheme"
)

// PreparedRequest is a fully materialized request that has not yet been
// issued, per §3.
type PreparedRequest struct {
	Method  string
	URL     string
	Headers *Headers
	Body    string
	Curl    string
}

// Globals holds the CLI's root-level flag inputs (§6).
type Globals struct {
	Server      string
	ServerVars  map[string]string
	AuthScheme  string
	BearerToken string
	Username    string
	Password    string
	APIKey      string
	Curl        bool
}

// EmbeddedDefaults holds the build-time embedded defaults (§ Build-time
// contract): a default server URL, default server variables, and a default
// auth scheme key.
type EmbeddedDefaults struct {
	Server     string
	ServerVars map[string]string
	AuthScheme string
}

// Profile is the subset of C12's Profile the request builder consults.
type Profile struct {
	Name       string
	Server     string
	AuthScheme string
}

// ProfileLookup is the C12 interface contract the request builder depends
// on; it never decides storage policy.
type ProfileLookup interface {
	ReadProfiles(specID string) ([]Profile, *Profile, error)
	GetProfile(name string) (*Profile, error)
	GetToken(specID, profileName string) (string, error)
}

// NoopProfileLookup is a ProfileLookup that always reports "nothing
// configured", for invocations that don't have a profile store wired in
// (e.g. `prepare`/`curl` against an ad-hoc spec).
type NoopProfileLookup struct{}

func (NoopProfileLookup) ReadProfiles(string) ([]Profile, *Profile, error) { return nil, nil, nil }
func (NoopProfileLookup) GetProfile(string) (*Profile, error)             { return nil, nil }
func (NoopProfileLookup) GetToken(string, string) (string, error)         { return "", nil }

// ErrUnresolvedServerVariable is returned when a server URL template
// variable has no value from any source.
var ErrUnresolvedServerVariable = errors.New("request: unresolved server variable")

// ErrUnknownAuthScheme is returned when --auth names a scheme key that
// doesn't exist in the spec's security scheme registry.
var ErrUnknownAuthScheme = errors.New("request: unknown auth scheme")

// ErrMissingCredential is returned when a selected auth scheme has no
// usable token/credential.
var ErrMissingCredential = errors.New("request: missing credential for auth scheme")

// resolvedAuth is the auth scheme+credentials chosen for one invocation.
type resolvedAuth struct {
	scheme   *authscheme.Scheme
	token    string
	username string
	password string
	apiKey   string
}
