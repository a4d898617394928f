package request

import (
	"encoding/base64"
	"fmt"

	"github.com/AndrewBarba/specli/internal/authscheme"
	"github.com/AndrewBarba/specli/internal/command"
)

// authOptions bundles the inputs the auth priority chain consults, beyond
// the per-invocation Globals already carried by buildRequest.
type authOptions struct {
	Profile               *Profile
	Embedded              EmbeddedDefaults
	Registry              *authscheme.Registry
	ProfileLookup         ProfileLookup
	SpecID                string
	AllowStoredTokenAuto  bool
}

// resolveAuth implements §4.8's auth priority chain: CLI --auth, then the
// active profile's scheme, then the embedded build default, then the
// operation's own single-alternative/single-scheme requirement, then the
// spec's single registered scheme, and finally (only when explicitly opted
// in, per §9 "Open questions") the first bearer-compatible scheme with a
// stored token. An empty result means no auth is applied.
func resolveAuth(action command.CommandAction, globals Globals, opts authOptions) (*resolvedAuth, error) {
	key := selectSchemeKey(action, globals, opts)
	if key == "" {
		return nil, nil
	}

	if opts.Registry == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAuthScheme, key)
	}
	scheme, ok := opts.Registry.ByKey(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAuthScheme, key)
	}

	switch scheme.Kind {
	case authscheme.KindHTTPBearer, authscheme.KindOAuth2, authscheme.KindOpenIDConnect:
		token := globals.BearerToken
		if token == "" {
			token = lookupStoredToken(opts)
		}
		if token == "" {
			return nil, fmt.Errorf("%w: scheme %q", ErrMissingCredential, key)
		}
		return &resolvedAuth{scheme: &scheme, token: token}, nil

	case authscheme.KindHTTPBasic:
		if globals.Username == "" {
			return nil, fmt.Errorf("%w: scheme %q", ErrMissingCredential, key)
		}
		return &resolvedAuth{scheme: &scheme, username: globals.Username, password: globals.Password}, nil

	case authscheme.KindAPIKey:
		apiKey := globals.APIKey
		if apiKey == "" {
			apiKey = lookupStoredToken(opts)
		}
		if apiKey == "" {
			return nil, fmt.Errorf("%w: scheme %q", ErrMissingCredential, key)
		}
		return &resolvedAuth{scheme: &scheme, apiKey: apiKey}, nil

	default:
		return nil, fmt.Errorf("%w: scheme %q has no supported credential shape", ErrUnknownAuthScheme, key)
	}
}

func lookupStoredToken(opts authOptions) string {
	if opts.ProfileLookup == nil {
		return ""
	}
	profileName := ""
	if opts.Profile != nil {
		profileName = opts.Profile.Name
	}
	token, _ := opts.ProfileLookup.GetToken(opts.SpecID, profileName)
	return token
}

func selectSchemeKey(action command.CommandAction, globals Globals, opts authOptions) string {
	if globals.AuthScheme != "" {
		return globals.AuthScheme
	}
	if opts.Profile != nil && opts.Profile.AuthScheme != "" {
		return opts.Profile.AuthScheme
	}
	if opts.Embedded.AuthScheme != "" {
		return opts.Embedded.AuthScheme
	}
	if len(action.Auth.Alternatives) == 1 && len(action.Auth.Alternatives[0]) == 1 {
		return action.Auth.Alternatives[0][0].Key
	}
	if opts.Registry != nil && len(opts.Registry.Schemes) == 1 {
		return opts.Registry.Schemes[0].Key
	}
	if opts.AllowStoredTokenAuto && opts.Registry != nil {
		for _, s := range opts.Registry.Schemes {
			if s.IsBearerCompatible() && lookupStoredToken(opts) != "" {
				return s.Key
			}
		}
	}
	return ""
}

// applyAuth places the resolved credential onto the request per the
// scheme's kind and, for api-key schemes, its declared location.
func applyAuth(h *Headers, query *[]kv, auth *resolvedAuth) {
	if auth == nil || auth.scheme == nil {
		return
	}
	switch auth.scheme.Kind {
	case authscheme.KindHTTPBearer, authscheme.KindOAuth2, authscheme.KindOpenIDConnect:
		h.Set("Authorization", "Bearer "+auth.token)
	case authscheme.KindHTTPBasic:
		encoded := base64.StdEncoding.EncodeToString([]byte(auth.username + ":" + auth.password))
		h.Set("Authorization", "Basic "+encoded)
	case authscheme.KindAPIKey:
		switch auth.scheme.In {
		case "query":
			*query = append(*query, kv{auth.scheme.Name, auth.apiKey})
		case "cookie":
			existing := h.Get("Cookie")
			pair := auth.scheme.Name + "=" + auth.apiKey
			if existing != "" {
				pair = existing + "; " + pair
			}
			h.Set("Cookie", pair)
		default:
			h.Set(auth.scheme.Name, auth.apiKey)
		}
	}
}
