package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndrewBarba/specli/internal/authscheme"
	"github.com/AndrewBarba/specli/internal/command"
)

type fakeProfileLookup struct {
	token string
}

func (f fakeProfileLookup) ReadProfiles(string) ([]Profile, *Profile, error) { return nil, nil, nil }
func (f fakeProfileLookup) GetProfile(string) (*Profile, error)             { return nil, nil }
func (f fakeProfileLookup) GetToken(string, string) (string, error)         { return f.token, nil }

func bearerRegistry() *authscheme.Registry {
	return authscheme.Build(map[string]any{
		"components": map[string]any{
			"securitySchemes": map[string]any{
				"bearerAuth": map[string]any{"type": "http", "scheme": "bearer"},
			},
		},
	})
}

func bearerAction() command.CommandAction {
	return command.CommandAction{
		Auth: command.AuthSummary{Alternatives: [][]command.AuthRequirement{{{Key: "bearerAuth"}}}},
	}
}

func TestResolveAuth_CLIGlobalBearerTokenWins(t *testing.T) {
	auth, err := resolveAuth(bearerAction(), Globals{BearerToken: "cli-token"}, authOptions{
		Registry: bearerRegistry(),
	})
	require.NoError(t, err)
	require.NotNil(t, auth)
	assert.Equal(t, "cli-token", auth.token)
}

func TestResolveAuth_SingleAlternativeSingleSchemeAutoSelected(t *testing.T) {
	auth, err := resolveAuth(bearerAction(), Globals{BearerToken: "tok"}, authOptions{
		Registry: bearerRegistry(),
	})
	require.NoError(t, err)
	require.NotNil(t, auth)
	assert.Equal(t, authscheme.KindHTTPBearer, auth.scheme.Kind)
}

func TestResolveAuth_NoRequirementAndNoSchemeIsNoAuth(t *testing.T) {
	auth, err := resolveAuth(command.CommandAction{}, Globals{}, authOptions{})
	require.NoError(t, err)
	assert.Nil(t, auth)
}

func TestResolveAuth_MissingCredentialErrors(t *testing.T) {
	_, err := resolveAuth(bearerAction(), Globals{}, authOptions{Registry: bearerRegistry()})
	assert.ErrorIs(t, err, ErrMissingCredential)
}

func TestResolveAuth_FallsBackToStoredToken(t *testing.T) {
	auth, err := resolveAuth(bearerAction(), Globals{}, authOptions{
		Registry:      bearerRegistry(),
		ProfileLookup: fakeProfileLookup{token: "stored-token"},
	})
	require.NoError(t, err)
	require.NotNil(t, auth)
	assert.Equal(t, "stored-token", auth.token)
}

func TestResolveAuth_UnknownSchemeKeyErrors(t *testing.T) {
	_, err := resolveAuth(command.CommandAction{}, Globals{AuthScheme: "nonexistent"}, authOptions{Registry: bearerRegistry()})
	assert.ErrorIs(t, err, ErrUnknownAuthScheme)
}

func TestApplyAuth_BearerSetsAuthorizationHeader(t *testing.T) {
	h := NewHeaders()
	scheme, _ := bearerRegistry().ByKey("bearerAuth")
	applyAuth(h, &[]kv{}, &resolvedAuth{scheme: &scheme, token: "abc"})
	assert.Equal(t, "Bearer abc", h.Get("Authorization"))
}

func TestApplyAuth_APIKeyInQueryAppendsPair(t *testing.T) {
	reg := authscheme.Build(map[string]any{
		"components": map[string]any{
			"securitySchemes": map[string]any{
				"apiKeyAuth": map[string]any{"type": "apiKey", "name": "key", "in": "query"},
			},
		},
	})
	scheme, _ := reg.ByKey("apiKeyAuth")
	query := []kv{}
	applyAuth(NewHeaders(), &query, &resolvedAuth{scheme: &scheme, apiKey: "secret"})
	require.Len(t, query, 1)
	assert.Equal(t, kv{"key", "secret"}, query[0])
}

func TestApplyAuth_NilAuthIsNoop(t *testing.T) {
	h := NewHeaders()
	query := []kv{}
	applyAuth(h, &query, nil)
	assert.False(t, h.Has("Authorization"))
	assert.Empty(t, query)
}
