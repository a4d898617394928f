package render

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndrewBarba/specli/internal/result"
)

func TestRender_SuccessGoesToStdout(t *testing.T) {
	var out, errOut bytes.Buffer
	r := New(ModeText, false, &out, &errOut)

	code := r.Render(result.Success(nil, &result.Response{Status: 200, OK: true, RawBody: "ok"}, result.Timing{}))

	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "200")
	assert.Empty(t, errOut.String())
}

func TestRender_ErrorGoesToStderr(t *testing.T) {
	var out, errOut bytes.Buffer
	r := New(ModeText, false, &out, &errOut)

	code := r.Render(result.Error("boom", nil, nil))

	assert.Equal(t, 1, code)
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "boom")
}

func TestRender_ValidationGoesToStderrWithExitOne(t *testing.T) {
	var out, errOut bytes.Buffer
	r := New(ModeText, false, &out, &errOut)

	errs := []result.ValidationError{{Path: "$.name", Message: "is required"}}
	code := r.Render(result.Validation(errs, nil))

	assert.Equal(t, 1, code)
	assert.Contains(t, errOut.String(), "$.name")
	assert.Contains(t, errOut.String(), "is required")
}

func TestRender_CurlGoesToStdoutWithExitZero(t *testing.T) {
	var out, errOut bytes.Buffer
	r := New(ModeText, false, &out, &errOut)

	code := r.Render(result.Curl("curl -X GET https://example.com", nil))

	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "curl -X GET https://example.com")
}

func TestRender_JSONModeEmitsDecodableEnvelope(t *testing.T) {
	var out, errOut bytes.Buffer
	r := New(ModeJSON, false, &out, &errOut)

	res := result.Success(nil, &result.Response{Status: 204, OK: true}, result.Timing{})
	res = res.WithContext("widgets", "create")
	r.Render(res)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, "success", decoded["kind"])
	assert.Equal(t, "widgets", decoded["resource"])
	assert.Equal(t, "create", decoded["action"])
}

func TestRender_JSONValidationOmitsUnrelatedFields(t *testing.T) {
	var out, errOut bytes.Buffer
	r := New(ModeJSON, false, &out, &errOut)

	errs := []result.ValidationError{{Path: "$.id", Message: "must be an integer"}}
	r.Render(result.Validation(errs, nil))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(errOut.Bytes(), &decoded))
	assert.NotContains(t, decoded, "response")
	assert.NotContains(t, decoded, "curl")
	assert.Contains(t, decoded, "errors")
}

func TestRender_DataKindRendersIndentedJSONToStdout(t *testing.T) {
	var out, errOut bytes.Buffer
	r := New(ModeText, false, &out, &errOut)

	code := r.Render(result.Data("whoami", map[string]any{"specId": "widgets-api"}))

	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "widgets-api")
}

func TestRender_ColorDisabledProducesPlainText(t *testing.T) {
	var out, errOut bytes.Buffer
	r := New(ModeText, false, &out, &errOut)

	r.Render(result.Error("boom", nil, nil))

	assert.NotContains(t, errOut.String(), "\x1b[")
}
