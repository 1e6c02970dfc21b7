package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"defaults", NewDefaultConfig(), ""},
		{"json debug", Config{Level: "debug", Format: "json"}, ""},
		{"bad level", Config{Level: "loud", Format: "json"}, "log level"},
		{"bad format", Config{Level: "info", Format: "xml"}, "log format"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestNewWithWriter_JSONRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithWriter(Config{Level: "warn", Format: "json"}, &buf)
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("scheduling reminder failed", zap.String("title", "Gym"))
	require.NoError(t, logger.Sync())

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "scheduling reminder failed", entry["msg"])
	assert.Equal(t, "Gym", entry["title"])
	assert.Equal(t, "planeasy", entry["logger"])
}

func TestNewWithWriter_InvalidConfig(t *testing.T) {
	_, err := NewWithWriter(Config{Level: "info", Format: "yaml"}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))
	l := zap.NewExample()
	assert.Same(t, l, OrNop(l))
}

func TestTestLogger_Assertions(t *testing.T) {
	tl := NewTestLogger()
	tl.Warn("load failed", zap.String("key", "plans"))

	tl.AssertLogged(t, zapcore.WarnLevel, "load")
	tl.AssertNotLogged(t, zapcore.ErrorLevel, "load")
	tl.AssertField(t, "load failed", "key", "plans")
	assert.Equal(t, 1, tl.FilterMessage("failed").Len())

	tl.Reset()
	assert.Empty(t, tl.All())
}
