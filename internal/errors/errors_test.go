package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []string{ErrConfig, ErrExec, ErrRender}

	seen := make(map[string]bool)
	for _, code := range codes {
		assert.NotEmpty(t, code)
		assert.False(t, seen[code], "error code %q should be unique", code)
		seen[code] = true
	}
}

func TestNew(t *testing.T) {
	err := New(ErrConfig, "refresh_rate must be positive", "Set refresh_rate to 1.0 or higher")

	require.NotNil(t, err)
	assert.Equal(t, ErrConfig, err.Code)
	assert.Equal(t, "refresh_rate must be positive", err.Message)
	assert.Equal(t, "Set refresh_rate to 1.0 or higher", err.Suggestion)
	assert.Nil(t, err.Cause)
}

func TestWrapWithCodeKeepsCause(t *testing.T) {
	cause := fmt.Errorf("exit status 127")
	err := WrapWithCode(cause, ErrExec, "sensors failed", "Install lm-sensors")

	assert.Equal(t, ErrExec, err.Code)
	assert.Same(t, cause, errors.Unwrap(err))
}

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
		excludes []string
	}{
		{
			name:     "message only",
			err:      New(ErrRender, "Terminal too small", ""),
			contains: []string{"✗ Terminal too small"},
		},
		{
			name: "with cause and suggestion",
			err: WrapWithCode(fmt.Errorf("yaml: line 3: did not find expected key"), ErrConfig,
				"Invalid config format", "Check the YAML syntax"),
			contains: []string{
				"✗ Invalid config format",
				"yaml: line 3",
				"Check the YAML syntax",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, want := range tt.contains {
				assert.Contains(t, msg, want)
			}
			assert.True(t, strings.HasPrefix(msg, "✗ "))
		})
	}
}

func TestIsCode(t *testing.T) {
	err := New(ErrExec, "nvidia-smi timed out", "")
	wrapped := fmt.Errorf("collect gpu: %w", err)

	assert.True(t, IsCode(err, ErrExec))
	assert.True(t, IsCode(wrapped, ErrExec))
	assert.False(t, IsCode(wrapped, ErrConfig))
	assert.False(t, IsCode(nil, ErrExec))
	assert.False(t, IsCode(fmt.Errorf("plain"), ErrExec))
}
