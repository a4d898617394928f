package paramderiver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildLocationSchema_CollectsPropertiesAndRequired(t *testing.T) {
	specs := []ParamSpec{
		{In: "query", Name: "limit", Required: true, Schema: map[string]any{"type": "integer"}},
		{In: "query", Name: "name", Required: false, Schema: map[string]any{"type": "string"}},
		{In: "header", Name: "x-request-id"},
	}
	schema := BuildLocationSchema(specs, "query")
	require.NotNil(t, schema)
	assert.Equal(t, "object", schema["type"])
	props := schema["properties"].(map[string]any)
	assert.Contains(t, props, "limit")
	assert.Contains(t, props, "name")
	assert.NotContains(t, props, "x-request-id")
	assert.Equal(t, []string{"limit"}, schema["required"])
}

func TestBuildLocationSchema_NilWhenNoMatchingParams(t *testing.T) {
	specs := []ParamSpec{{In: "header", Name: "x-request-id"}}
	assert.Nil(t, BuildLocationSchema(specs, "query"))
}

func TestBuildLocationSchema_NilSchemaDefaultsToEmptyObject(t *testing.T) {
	specs := []ParamSpec{{In: "query", Name: "name", Schema: nil}}
	schema := BuildLocationSchema(specs, "query")
	require.NotNil(t, schema)
	props := schema["properties"].(map[string]any)
	assert.Equal(t, map[string]any{}, props["name"])
}
