package introspect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndrewBarba/specli/internal/command"
	"github.com/AndrewBarba/specli/internal/naming"
	"github.com/AndrewBarba/specli/internal/opindex"
	"github.com/AndrewBarba/specli/internal/servers"
	"github.com/AndrewBarba/specli/internal/specloader"
)

func testInput() Input {
	ops := []opindex.NormalizedOperation{
		{Method: "GET", Path: "/widgets", OperationID: "listWidgets", Tags: []string{"Widgets"}},
		{Method: "GET", Path: "/widgets/{id}", OperationID: "getWidget", Tags: []string{"Widgets"}},
	}
	planned := naming.Plan(ops)
	model := command.Build("widgets-api", planned)

	loaded := &specloader.LoadedSpec{
		Document: map[string]any{
			"openapi": "3.0.3",
			"info":    map[string]any{"title": "Widgets API", "version": "1.2.0"},
		},
		Source:      specloader.SourceFile,
		Origin:      "widgets.yaml",
		Fingerprint: "abc123",
		SpecID:      "widgets-api",
	}

	return Input{
		Loaded:     loaded,
		Servers:    []servers.ServerInfo{{URL: "https://api.example.com"}},
		Operations: ops,
		Planned:    planned,
		Model:      model,
	}
}

func TestFull_IncludesEveryDocumentedSection(t *testing.T) {
	doc := Full(testInput())

	assert.Equal(t, 1, doc["schemaVersion"])
	require.Contains(t, doc, "openapi")
	require.Contains(t, doc, "spec")
	require.Contains(t, doc, "capabilities")
	require.Contains(t, doc, "servers")
	require.Contains(t, doc, "authSchemes")
	require.Contains(t, doc, "operations")
	require.Contains(t, doc, "planned")
	require.Contains(t, doc, "commands")
	require.Contains(t, doc, "commandsIndex")

	openapi := doc["openapi"].(map[string]any)
	assert.Equal(t, "3.0.3", openapi["version"])
	assert.Equal(t, "Widgets API", openapi["title"])
	assert.Equal(t, "1.2.0", openapi["infoVersion"])

	spec := doc["spec"].(map[string]any)
	assert.Equal(t, "widgets-api", spec["id"])
	assert.Equal(t, "abc123", spec["fingerprint"])

	caps := doc["capabilities"].(map[string]any)
	assert.Equal(t, 2, caps["operations"])
	assert.Equal(t, 2, caps["commands"])
}

func TestMinimal_OmitsOperationsPlannedAndIndex(t *testing.T) {
	doc := Minimal(testInput())

	assert.NotContains(t, doc, "operations")
	assert.NotContains(t, doc, "planned")
	assert.NotContains(t, doc, "commandsIndex")
	assert.Contains(t, doc, "commands")
	assert.Contains(t, doc, "spec")
}

func TestFull_IsDeterministicAcrossCalls(t *testing.T) {
	in := testInput()
	first := Full(in)
	second := Full(in)
	assert.Equal(t, first, second)
}

func TestFull_NilLoadedSpecDoesNotPanic(t *testing.T) {
	in := testInput()
	in.Loaded = nil
	assert.NotPanics(t, func() {
		doc := Full(in)
		assert.Equal(t, map[string]any{}, doc["spec"])
	})
}
