package internal

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in    string
		want  LogLevel
		valid bool
	}{
		{"ERROR", LogLevelError, true},
		{"warn", LogLevelWarn, true},
		{" Info ", LogLevelInfo, true},
		{"DEBUG", LogLevelDebug, true},
		{"trace", LogLevelTrace, true},
		{"", LogLevelInfo, false},
		{"verbose", LogLevelInfo, false},
	}
	for _, tt := range tests {
		got, ok := ParseLogLevel(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.valid, ok, tt.in)
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerTo(&buf, LogLevelWarn)

	l.Info("hidden %d", 1)
	l.Debug("hidden %d", 2)
	assert.Empty(t, buf.String())

	l.Warn("shown %d", 3)
	assert.Contains(t, buf.String(), "shown 3")
	assert.Contains(t, buf.String(), `"level":"warn"`)
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerTo(&buf, LogLevelTrace).With("run", "abc")

	l.Trace("step %s", "one")
	assert.Contains(t, buf.String(), `"run":"abc"`)
	assert.Contains(t, buf.String(), "step one")
	assert.Equal(t, LogLevelTrace, l.GetLevel())
}
