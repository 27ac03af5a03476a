package logger

import (
	"bytes"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	return &buf
}

func TestEnvLogger_Debug(t *testing.T) {
	tests := []struct {
		name      string
		envValue  string
		expectLog bool
	}{
		{name: "logs when SYSMON_DEBUG is set", envValue: "1", expectLog: true},
		{name: "logs when SYSMON_DEBUG is any value", envValue: "true", expectLog: true},
		{name: "silent when SYSMON_DEBUG is empty", envValue: "", expectLog: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLog(t)
			t.Setenv(DebugEnv, tt.envValue)

			l := NewEnvLogger("[test]")
			l.Debug("sensor %s", "coretemp")

			if tt.expectLog {
				assert.Contains(t, buf.String(), "[test] sensor coretemp")
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestEnvLogger_Levels(t *testing.T) {
	buf := captureLog(t)

	l := NewEnvLogger("[config]")
	l.Info("loaded %s", "config.yaml")
	l.Warn("falling back to defaults")
	l.Error("watch failed: %v", "boom")

	out := buf.String()
	assert.Contains(t, out, "[config] loaded config.yaml")
	assert.Contains(t, out, "[config] WARN: falling back to defaults")
	assert.Contains(t, out, "[config] ERROR: watch failed: boom")
}

func TestNoop(t *testing.T) {
	buf := captureLog(t)

	l := Noop()
	l.Debug("a")
	l.Info("b")
	l.Warn("c")
	l.Error("d")

	assert.Empty(t, buf.String())
}

func TestBufferLogger(t *testing.T) {
	l := NewBufferLogger()
	l.Debug("gpu temp unavailable")
	l.Warn("config reload rejected: %s", "warning >= critical")

	require.Len(t, l.Messages, 2)
	assert.Equal(t, "debug", l.Messages[0].Level)
	assert.Equal(t, "config reload rejected: warning >= critical", l.Messages[1].Message)
	assert.True(t, l.HasLevel("warn"))
	assert.False(t, l.HasLevel("error"))
	assert.True(t, l.Contains("rejected"))
	assert.False(t, l.Contains("panic"))

	l.Clear()
	assert.Empty(t, l.Messages)
}

func TestSetDefault(t *testing.T) {
	orig := Default()
	t.Cleanup(func() { SetDefault(orig) })

	buf := NewBufferLogger()
	SetDefault(buf)
	Default().Info("hello")

	assert.True(t, buf.HasLevel("info"))
}
