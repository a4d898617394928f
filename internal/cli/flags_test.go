package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArrayFlagValue_RepeatedFlagAccumulates(t *testing.T) {
	var values []string
	f := &arrayFlagValue{values: &values}

	require.NoError(t, f.Set("red"))
	require.NoError(t, f.Set("green"))

	assert.Equal(t, []string{"red", "green"}, values)
}

func TestArrayFlagValue_CommaSeparatedSplitsIntoMultipleValues(t *testing.T) {
	var values []string
	f := &arrayFlagValue{values: &values}

	require.NoError(t, f.Set("red,green,blue"))

	assert.Equal(t, []string{"red", "green", "blue"}, values)
}

func TestArrayFlagValue_JSONArrayLiteral(t *testing.T) {
	var values []string
	f := &arrayFlagValue{values: &values}

	require.NoError(t, f.Set(`["red", "green"]`))

	assert.Equal(t, []string{"red", "green"}, values)
}

func TestArrayFlagValue_JSONArrayOfNumbers(t *testing.T) {
	var values []string
	f := &arrayFlagValue{values: &values}

	require.NoError(t, f.Set(`[1, 2, 3]`))

	assert.Equal(t, []string{"1", "2", "3"}, values)
}

func TestKVFlagValue_ParsesNameEqualsValue(t *testing.T) {
	target := map[string]string{}
	f := &kvFlagValue{target: &target}

	require.NoError(t, f.Set("environment=staging"))
	require.NoError(t, f.Set("region=us-east-1"))

	assert.Equal(t, map[string]string{"environment": "staging", "region": "us-east-1"}, target)
}

func TestKVFlagValue_RejectsMissingEquals(t *testing.T) {
	target := map[string]string{}
	f := &kvFlagValue{target: &target}

	err := f.Set("malformed")
	assert.Error(t, err)
}
