package servers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariableNames_ExtractsInOrder(t *testing.T) {
	names := VariableNames("https://{region}.api.{tld}.example.com")
	assert.Equal(t, []string{"region", "tld"}, names)
}

func TestVariableNames_NoPlaceholders(t *testing.T) {
	assert.Empty(t, VariableNames("https://api.example.com"))
}

func TestCollect_DeduplicatesByURLAcrossLevels(t *testing.T) {
	doc := map[string]any{
		"servers": []any{
			map[string]any{"url": "https://api.example.com", "description": "root"},
		},
		"paths": map[string]any{
			"/widgets": map[string]any{
				"servers": []any{
					map[string]any{"url": "https://api.example.com"},
					map[string]any{"url": "https://eu.api.example.com"},
				},
				"get": map[string]any{
					"servers": []any{
						map[string]any{"url": "https://eu.api.example.com"},
					},
				},
			},
		},
	}
	infos := Collect(doc)
	require.Len(t, infos, 2)
	assert.Equal(t, "https://api.example.com", infos[0].URL)
	assert.Equal(t, "root", infos[0].Description)
	assert.Equal(t, "https://eu.api.example.com", infos[1].URL)
}

func TestCollect_MergesVariablesFirstOccurrenceDefaultWins(t *testing.T) {
	doc := map[string]any{
		"servers": []any{
			map[string]any{
				"url": "https://{region}.example.com",
				"variables": map[string]any{
					"region": map[string]any{"default": "us", "enum": []any{"us", "eu"}},
				},
			},
			map[string]any{
				"url": "https://{region}.example.com",
				"variables": map[string]any{
					"region": map[string]any{"default": "eu"},
				},
			},
		},
	}
	infos := Collect(doc)
	require.Len(t, infos, 1)
	require.Len(t, infos[0].Variables, 1)
	assert.Equal(t, "us", infos[0].Variables[0].Default, "first occurrence's default wins")
	assert.Equal(t, []string{"region"}, infos[0].VariableNames)
}

func TestCollect_NoServersDeclared(t *testing.T) {
	assert.Empty(t, Collect(map[string]any{"paths": map[string]any{}}))
}
