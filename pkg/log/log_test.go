package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		want    LogLevel
		wantErr bool
	}{
		{name: "error", level: "error", want: LogLevelError},
		{name: "warn", level: "warn", want: LogLevelWarn},
		{name: "info", level: "info", want: LogLevelInfo},
		{name: "debug", level: "debug", want: LogLevelDebug},
		{name: "trace", level: "trace", want: LogLevelTrace},
		{name: "unknown", level: "verbose", want: LogLevelError, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLogLevel(tt.level)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLogger_levelFiltering(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := New(buf, "", 0, LogLevelInfo)

	logger.Debug("hidden %d", 1)
	logger.Info("shown %d", 2)
	logger.Error("shown %d", 3)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	entry := map[string]string{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "shown 2", entry["msg"])
}

func TestSetDefaultLogger(t *testing.T) {
	previous := getDefaultLogger()
	defer SetDefaultLogger(previous)

	buf := &bytes.Buffer{}
	SetDefaultLogger(New(buf, "", 0, LogLevelTrace))
	Trace("turn %d", 7)

	assert.Contains(t, buf.String(), `"msg":"turn 7"`)
}
