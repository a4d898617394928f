package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndrewBarba/specli/internal/naming"
	"github.com/AndrewBarba/specli/internal/opindex"
)

func widgetsListOp() naming.PlannedOperation {
	return naming.PlannedOperation{
		NormalizedOperation: opindex.NormalizedOperation{
			Method: "GET",
			Path:   "/widgets",
		},
		Resource: "widgets",
		Action:   "list",
	}
}

func widgetsGetOp() naming.PlannedOperation {
	return naming.PlannedOperation{
		NormalizedOperation: opindex.NormalizedOperation{
			Method: "GET",
			Path:   "/widgets/{id}",
			Parameters: []opindex.NormalizedParameter{
				{In: opindex.InPath, Name: "id", Required: true, Schema: map[string]any{"type": "string"}},
			},
		},
		Resource:    "widgets",
		Action:      "get",
		RawPathArgs: []string{"id"},
	}
}

func TestBuild_GroupsByResourceSortedAlphabetically(t *testing.T) {
	model := Build("spec1", []naming.PlannedOperation{
		{Resource: "zebras", Action: "list", NormalizedOperation: opindex.NormalizedOperation{Method: "GET", Path: "/zebras"}},
		widgetsListOp(),
	})
	require.Len(t, model.Resources, 2)
	assert.Equal(t, "widgets", model.Resources[0].Name)
	assert.Equal(t, "zebras", model.Resources[1].Name)
}

func TestBuild_ActionsSortedByActionThenPathThenMethod(t *testing.T) {
	model := Build("spec1", []naming.PlannedOperation{
		widgetsGetOp(),
		widgetsListOp(),
	})
	require.Len(t, model.Resources, 1)
	actions := model.Resources[0].Actions
	require.Len(t, actions, 2)
	assert.Equal(t, "get", actions[0].Action)
	assert.Equal(t, "list", actions[1].Action)
}

func TestBuild_ActionIDIsContentAddressed(t *testing.T) {
	model := Build("widget-api", []naming.PlannedOperation{widgetsGetOp()})
	action, ok := model.Find("widgets", "get")
	require.True(t, ok)
	assert.Equal(t, "widget-api:widgets:get:get-widgets-id", action.ID)
}

func TestBuild_DifferentSpecsYieldDifferentActionIDs(t *testing.T) {
	a := Build("spec-a", []naming.PlannedOperation{widgetsGetOp()})
	b := Build("spec-b", []naming.PlannedOperation{widgetsGetOp()})
	actionA, _ := a.Find("widgets", "get")
	actionB, _ := b.Find("widgets", "get")
	assert.NotEqual(t, actionA.ID, actionB.ID)
}

func TestBuild_DerivesSchemasAndBodyFlagsFromRequestBody(t *testing.T) {
	op := naming.PlannedOperation{
		NormalizedOperation: opindex.NormalizedOperation{
			Method: "POST",
			Path:   "/contacts",
			Parameters: []opindex.NormalizedParameter{
				{In: opindex.InQuery, Name: "dryRun", Schema: map[string]any{"type": "boolean"}},
			},
			RequestBody: &opindex.NormalizedRequestBody{
				Required:     true,
				ContentTypes: []string{"application/json"},
				SchemaByContentType: map[string]map[string]any{
					"application/json": {
						"type":       "object",
						"required":   []any{"name"},
						"properties": map[string]any{"name": map[string]any{"type": "string"}},
					},
				},
			},
		},
		Resource: "contacts",
		Action:   "create",
	}
	model := Build("spec1", []naming.PlannedOperation{op})
	action, ok := model.Find("contacts", "create")
	require.True(t, ok)
	assert.True(t, action.BodyRequired)
	assert.Equal(t, "application/json", action.BodyContentType)
	require.Len(t, action.BodyFlags, 1)
	assert.Equal(t, "--name", action.BodyFlags[0].Flag)
	require.NotNil(t, action.QuerySchema)
	assert.Nil(t, action.HeaderSchema)
}

func TestFind_ReturnsFalseWhenMissing(t *testing.T) {
	model := Build("spec1", []naming.PlannedOperation{widgetsListOp()})
	_, ok := model.Find("widgets", "delete")
	assert.False(t, ok)
}
