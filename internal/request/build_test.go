package request

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndrewBarba/specli/internal/authscheme"
	"github.com/AndrewBarba/specli/internal/command"
	"github.com/AndrewBarba/specli/internal/opindex"
	"github.com/AndrewBarba/specli/internal/paramderiver"
	"github.com/AndrewBarba/specli/internal/servers"
)

// §8 scenario 1: listing with int and string query flags.
func TestBuild_ListingWithQueryScenario(t *testing.T) {
	action := command.CommandAction{
		Method: "GET",
		Path:   "/contacts",
		Flags: []paramderiver.ParamSpec{
			{Flag: "--limit", Name: "limit", In: opindex.InQuery, Type: paramderiver.TypeInteger},
			{Flag: "--name", Name: "name", In: opindex.InQuery, Type: paramderiver.TypeString},
		},
	}
	out, err := Build(BuildInput{
		Action:   action,
		Servers:  []servers.ServerInfo{{URL: "https://api.example.com"}},
		FlagValues: map[string]FlagValue{
			"limit": {String: "10"},
			"name":  {String: "andrew"},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, out.Prepared)
	assert.Equal(t, "https://api.example.com/contacts?limit=10&name=andrew", out.Prepared.URL)
}

// §8 scenario 2: path params render into the URL.
func TestBuild_PathParamsScenario(t *testing.T) {
	action := command.CommandAction{
		Method:      "GET",
		Path:        "/users/{id}",
		RawPathArgs: []string{"id"},
	}
	out, err := Build(BuildInput{
		Action:      action,
		Positionals: []string{"123"},
		Servers:     []servers.ServerInfo{{URL: "https://api.example.com"}},
	})
	require.NoError(t, err)
	require.NotNil(t, out.Prepared)
	assert.Equal(t, "https://api.example.com/users/123", out.Prepared.URL)
}

// §8 scenario 3: repeatable array query parameter produces repeated keys.
func TestBuild_RepeatableArrayQueryScenario(t *testing.T) {
	action := command.CommandAction{
		Method: "GET",
		Path:   "/items",
		Flags: []paramderiver.ParamSpec{
			{Flag: "--tag", Name: "tag", In: opindex.InQuery, Type: paramderiver.TypeArray, ItemType: paramderiver.TypeString},
		},
	}
	out, err := Build(BuildInput{
		Action:  action,
		Servers: []servers.ServerInfo{{URL: "https://api.example.com"}},
		FlagValues: map[string]FlagValue{
			"tag": {IsArray: true, Array: []string{"a", "b"}},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, out.Prepared)
	assert.Equal(t, "https://api.example.com/items?tag=a&tag=b", out.Prepared.URL)
}

// §8 scenario 4: nested body via dot-notation.
func TestBuild_NestedBodyScenario(t *testing.T) {
	action := contactCreateAction()
	action.Method = "POST"
	action.Path = "/contacts"
	out, err := Build(BuildInput{
		Action:  action,
		Servers: []servers.ServerInfo{{URL: "https://api.example.com"}},
		FlagValues: map[string]FlagValue{
			"name":           {String: "Ada"},
			"address.street": {String: "123 Main"},
			"address.city":   {String: "NYC"},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, out.Prepared)
	assert.Equal(t, "application/json", out.Prepared.Headers.Get("Content-Type"))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out.Prepared.Body), &decoded))
	assert.Equal(t, map[string]any{"name": "Ada", "address": map[string]any{"street": "123 Main", "city": "NYC"}}, decoded)
}

// §8 scenario 5: missing required body field yields a validation outcome.
func TestBuild_MissingRequiredBodyFieldScenario(t *testing.T) {
	action := contactCreateAction()
	action.Method = "POST"
	action.Path = "/contacts"
	out, err := Build(BuildInput{
		Action:  action,
		Servers: []servers.ServerInfo{{URL: "https://api.example.com"}},
		FlagValues: map[string]FlagValue{
			"address.city": {String: "NYC"},
		},
	})
	require.NoError(t, err)
	assert.Nil(t, out.Prepared)
	require.Len(t, out.Errors, 1)
	assert.Equal(t, "name", out.Errors[0].Path)
	assert.Equal(t, "missing required property 'name'", out.Errors[0].Message)
}

// §8 scenario 6: bearer auth is masked in the curl rendering but not in the
// real request.
func TestBuild_BearerAuthMaskedInCurlScenario(t *testing.T) {
	action := command.CommandAction{
		Method:      "GET",
		Path:        "/users/{id}",
		RawPathArgs: []string{"id"},
		Auth:        command.AuthSummary{Alternatives: [][]command.AuthRequirement{{{Key: "bearerAuth"}}}},
	}
	registry := authscheme.Build(map[string]any{
		"components": map[string]any{
			"securitySchemes": map[string]any{
				"bearerAuth": map[string]any{"type": "http", "scheme": "bearer"},
			},
		},
	})
	out, err := Build(BuildInput{
		Action:       action,
		Positionals:  []string{"123"},
		Servers:      []servers.ServerInfo{{URL: "https://api.example.com"}},
		AuthRegistry: registry,
		Globals:      Globals{BearerToken: "abc123xyz"},
	})
	require.NoError(t, err)
	require.NotNil(t, out.Prepared)
	assert.Contains(t, out.Prepared.Curl, "Authorization: Bearer abc...xyz")
	assert.Equal(t, "Bearer abc123xyz", out.Prepared.Headers.Get("Authorization"))
}
