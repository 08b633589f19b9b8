package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodes(t *testing.T) {
	codes := []string{ErrConfig, ErrFetch, ErrState, ErrInput}

	seen := make(map[string]bool)
	for _, code := range codes {
		assert.NotEmpty(t, code, "error code should not be empty")
		assert.False(t, seen[code], "error code %q should be unique", code)
		seen[code] = true
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		code       string
		message    string
		suggestion string
	}{
		{
			name:       "config error",
			code:       ErrConfig,
			message:    "Invalid configuration in .rtad.yaml",
			suggestion: "Check your configuration file syntax",
		},
		{
			name:       "fetch error",
			code:       ErrFetch,
			message:    "Backend returned 502 for /rtad_lastb",
			suggestion: "Check that the metrics backend is running",
		},
		{
			name:       "state error",
			code:       ErrState,
			message:    "Cannot write sort state",
			suggestion: "Check permissions on the state directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, tt.message, tt.suggestion)

			require.NotNil(t, err)
			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.Equal(t, tt.suggestion, err.Suggestion)
			assert.Nil(t, err.Cause)
		})
	}
}

func TestErrorFormatting(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := WrapWithCode(cause, ErrFetch, "Cannot reach backend", "Is server.base_url correct?")

	out := err.Error()
	assert.Contains(t, out, "✗ Cannot reach backend")
	assert.Contains(t, out, "connection refused")
	assert.Contains(t, out, "Is server.base_url correct?")
}

func TestUnwrap(t *testing.T) {
	sentinel := errors.New("sentinel")
	err := WrapWithCode(sentinel, ErrState, "wrapped", "")

	assert.True(t, errors.Is(err, sentinel))
	assert.Equal(t, sentinel, errors.Unwrap(err))
}

func TestIsCode(t *testing.T) {
	err := New(ErrConfig, "bad", "")
	wrapped := fmt.Errorf("outer: %w", err)

	assert.True(t, IsCode(err, ErrConfig))
	assert.True(t, IsCode(wrapped, ErrConfig))
	assert.False(t, IsCode(err, ErrFetch))
	assert.False(t, IsCode(nil, ErrConfig))
	assert.False(t, IsCode(errors.New("plain"), ErrConfig))
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "", Summary(nil))
	assert.Equal(t, "plain", Summary(errors.New("plain")))
	assert.Equal(t, "Bad column", Summary(New(ErrInput, "Bad column", "Use 0-5")))
	assert.Equal(t, "Fetch failed: timeout",
		Summary(WrapWithCode(errors.New("timeout"), ErrFetch, "Fetch failed", "")))
}
