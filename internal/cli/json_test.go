package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/rileyhilliard/rtad/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEnvelope(t *testing.T, buf *bytes.Buffer) JSONEnvelope {
	t.Helper()
	var env JSONEnvelope
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))
	return env
}

func TestMachineMode_DefaultValue(t *testing.T) {
	oldMode := machineMode
	defer func() { machineMode = oldMode }()

	machineMode = false
	assert.False(t, MachineMode())

	machineMode = true
	assert.True(t, MachineMode())
}

func TestWriteJSONSuccess_ComplexData(t *testing.T) {
	var buf bytes.Buffer

	data := struct {
		Table  string   `json:"table"`
		Cursor int64    `json:"cursor"`
		Rows   []string `json:"rows"`
	}{
		Table:  "lastb",
		Cursor: 42,
		Rows:   []string{"a", "b"},
	}
	require.NoError(t, WriteJSONSuccess(&buf, data))

	env := decodeEnvelope(t, &buf)
	assert.True(t, env.Success)
	assert.Nil(t, env.Error)
	dataMap, ok := env.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "lastb", dataMap["table"])
	assert.Equal(t, float64(42), dataMap["cursor"])
}

func TestWriteJSONSuccess_NilData(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSONSuccess(&buf, nil))

	env := decodeEnvelope(t, &buf)
	assert.True(t, env.Success)
	assert.Nil(t, env.Data)
	assert.Nil(t, env.Error)
	assert.NotContains(t, buf.String(), `"data"`)
}

func TestWriteJSONError_AllFields(t *testing.T) {
	var buf bytes.Buffer

	details := map[string]string{"url": "http://localhost:5000/rtad_lastb"}
	require.NoError(t, WriteJSONError(&buf, ErrCodeFetchFailed, "Backend returned 503", "Check the backend", details))

	env := decodeEnvelope(t, &buf)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, ErrCodeFetchFailed, env.Error.Code)
	assert.Equal(t, "Backend returned 503", env.Error.Message)
	assert.Equal(t, "Check the backend", env.Error.Suggestion)

	detailsMap, ok := env.Error.Details.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "http://localhost:5000/rtad_lastb", detailsMap["url"])
}

func TestWriteJSONFromError_NilError(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSONFromError(&buf, nil))

	env := decodeEnvelope(t, &buf)
	assert.False(t, env.Success)
	assert.Nil(t, env.Error)
}

func TestWriteJSONFromError_StructuredError(t *testing.T) {
	var buf bytes.Buffer

	rtadErr := errors.New(errors.ErrConfig, "Config file not found", "Run 'rtad init' to create one")
	require.NoError(t, WriteJSONFromError(&buf, rtadErr))

	env := decodeEnvelope(t, &buf)
	require.NotNil(t, env.Error)
	assert.Equal(t, ErrCodeConfigNotFound, env.Error.Code)
	assert.Equal(t, "Config file not found", env.Error.Message)
	assert.Equal(t, "Run 'rtad init' to create one", env.Error.Suggestion)
	assert.Nil(t, env.Error.Details)
}

func TestWriteJSONFromError_WrappedStructuredError(t *testing.T) {
	var buf bytes.Buffer

	inner := errors.New(errors.ErrState, "State file is corrupt", "Run 'rtad state reset'")
	require.NoError(t, WriteJSONFromError(&buf, fmt.Errorf("load: %w", inner)))

	env := decodeEnvelope(t, &buf)
	require.NotNil(t, env.Error)
	assert.Equal(t, ErrCodeStateInvalid, env.Error.Code)
}

func TestErrorToJSON_CauseInDetails(t *testing.T) {
	err := errors.WrapWithCode(fmt.Errorf("dial tcp: connection refused"), errors.ErrFetch,
		"Cannot reach backend", "Is it running?")

	result := ErrorToJSON(err)

	require.NotNil(t, result)
	assert.Equal(t, ErrCodeFetchFailed, result.Code)
	details, ok := result.Details.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "dial tcp: connection refused", details["cause"])
}

func TestErrorToJSON_GenericError(t *testing.T) {
	result := ErrorToJSON(fmt.Errorf("generic error message"))

	require.NotNil(t, result)
	assert.Equal(t, ErrCodeUnknown, result.Code)
	assert.Equal(t, "generic error message", result.Message)
	assert.Empty(t, result.Suggestion)
}

func TestErrorToJSON_NilReturnsNil(t *testing.T) {
	assert.Nil(t, ErrorToJSON(nil))
}

func TestErrorToJSON_AllInternalErrorCodes(t *testing.T) {
	tests := []struct {
		name         string
		internalCode string
		message      string
		wantCode     string
	}{
		{"config not found", errors.ErrConfig, "Config file not found", ErrCodeConfigNotFound},
		{"config invalid", errors.ErrConfig, "Poll interval 10ms is too short", ErrCodeConfigInvalid},
		{"fetch", errors.ErrFetch, "Backend returned 500", ErrCodeFetchFailed},
		{"state", errors.ErrState, "Stored sort state is invalid", ErrCodeStateInvalid},
		{"input", errors.ErrInput, "Unknown table \"x\"", ErrCodeInvalidInput},
		{"unmapped", "OTHER", "Something else", ErrCodeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ErrorToJSON(errors.New(tt.internalCode, tt.message, "some suggestion"))

			require.NotNil(t, result)
			assert.Equal(t, tt.wantCode, result.Code)
			assert.Equal(t, tt.message, result.Message)
		})
	}
}
