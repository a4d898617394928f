// Package authscheme implements C4: parsing components.securitySchemes into
// a classified, deterministically ordered registry.
package authscheme

import (
	"sort"

	"github.com/AndrewBarba/specli/internal/strcase"
)

// Kind classifies a security scheme.
type Kind string

const (
	KindHTTPBearer     Kind = "http-bearer"
	KindHTTPBasic      Kind = "http-basic"
	KindAPIKey         Kind = "api-key"
	KindOAuth2         Kind = "oauth2"
	KindOpenIDConnect  Kind = "openIdConnect"
	KindUnknown        Kind = "unknown"
)

// OAuthFlow captures one OAuth2 flow's URLs and sorted scope names.
type OAuthFlow struct {
	AuthorizationURL string
	TokenURL         string
	RefreshURL       string
	Scopes           []string
}

// Scheme is one classified entry from components.securitySchemes.
type Scheme struct {
	Key               string
	Kind              Kind
	Name              string // header/query/cookie parameter name, for api-key
	In                string // header | query | cookie, for api-key
	HTTPScheme        string // the raw "scheme" field for http-type schemes
	BearerFormat      string
	Description       string
	OAuthFlows        map[string]OAuthFlow
	OpenIDConnectURL  string
}

// Registry is the sorted set of parsed schemes, keyed by their original key.
type Registry struct {
	Schemes []Scheme
	byKey   map[string]Scheme
}

// ByKey looks up a scheme by its securitySchemes key.
func (r *Registry) ByKey(key string) (Scheme, bool) {
	s, ok := r.byKey[key]
	return s, ok
}

// Build parses components.securitySchemes, sorted by kebab-cased key, per §4.4.
func Build(doc map[string]any) *Registry {
	reg := &Registry{byKey: map[string]Scheme{}}

	components, _ := doc["components"].(map[string]any)
	if components == nil {
		return reg
	}
	raw, _ := components["securitySchemes"].(map[string]any)
	if raw == nil {
		return reg
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return strcase.Kebab(keys[i]) < strcase.Kebab(keys[j])
	})

	for _, key := range keys {
		m, ok := raw[key].(map[string]any)
		if !ok {
			continue
		}
		scheme := parseScheme(key, m)
		reg.Schemes = append(reg.Schemes, scheme)
		reg.byKey[key] = scheme
	}

	return reg
}

func parseScheme(key string, m map[string]any) Scheme {
	typ, _ := m["type"].(string)
	s := Scheme{
		Key:         key,
		Description: strField(m, "description"),
	}

	switch typ {
	case "http":
		scheme, _ := m["scheme"].(string)
		s.HTTPScheme = scheme
		s.BearerFormat = strField(m, "bearerFormat")
		switch scheme {
		case "bearer":
			s.Kind = KindHTTPBearer
		case "basic":
			s.Kind = KindHTTPBasic
		default:
			s.Kind = KindUnknown
		}
	case "apiKey":
		s.Kind = KindAPIKey
		s.Name, _ = m["name"].(string)
		in, _ := m["in"].(string)
		switch in {
		case "header", "query", "cookie":
			s.In = in
		default:
			s.In = "header"
		}
	case "oauth2":
		s.Kind = KindOAuth2
		s.OAuthFlows = parseFlows(m["flows"])
	case "openIdConnect":
		s.Kind = KindOpenIDConnect
		s.OpenIDConnectURL, _ = m["openIdConnectUrl"].(string)
	default:
		s.Kind = KindUnknown
	}

	return s
}

func parseFlows(raw any) map[string]OAuthFlow {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	out := map[string]OAuthFlow{}
	for flowName, rawFlow := range m {
		flowMap, ok := rawFlow.(map[string]any)
		if !ok {
			continue
		}
		flow := OAuthFlow{
			AuthorizationURL: strField(flowMap, "authorizationUrl"),
			TokenURL:         strField(flowMap, "tokenUrl"),
			RefreshURL:       strField(flowMap, "refreshUrl"),
		}
		if scopes, ok := flowMap["scopes"].(map[string]any); ok {
			for scope := range scopes {
				flow.Scopes = append(flow.Scopes, scope)
			}
			sort.Strings(flow.Scopes)
		}
		out[flowName] = flow
	}
	return out
}

func strField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

// IsBearerCompatible reports whether a scheme can carry a bearer token,
// used by the "stored token exists" auto-selection opt-in (§"Open
// questions").
func (s Scheme) IsBearerCompatible() bool {
	switch s.Kind {
	case KindHTTPBearer, KindOAuth2, KindOpenIDConnect:
		return true
	}
	return false
}
