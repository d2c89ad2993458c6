package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"", zerolog.InfoLevel},
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestFilePath(t *testing.T) {
	day := time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC)

	path, err := FilePath(Config{Dir: "/var/tmp/b"}, day)
	require.NoError(t, err)
	assert.Equal(t, "/var/tmp/b/buddy_2025-03-09.log", path)

	path, err = FilePath(Config{Dir: "/x", File: "custom.log"}, day)
	require.NoError(t, err)
	assert.Equal(t, "/x/custom.log", path)
}

func TestWriterFieldsAndLevel(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Writer: &buf, Level: "info", Session: "abc"})
	require.NoError(t, err)

	log := l.Component("machine")
	log.Debug().Msg("hidden")
	log.Info().Str("to", "happy").Msg("expression")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "buddy", entry["app"])
	assert.Equal(t, "abc", entry["session"])
	assert.Equal(t, "machine", entry["component"])
	assert.Equal(t, "happy", entry["to"])
	assert.Equal(t, "info", entry["level"])
	assert.Empty(t, l.Path())
	assert.NoError(t, l.Close())
}

func TestFileOutput(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	l, err := New(Config{Dir: dir, Level: "debug"})
	require.NoError(t, err)

	zl := l.Zerolog()
	zl.Debug().Msg("started")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(l.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"started"`)
	assert.True(t, strings.HasPrefix(filepath.Base(l.Path()), "buddy_"))
}

func TestInvalidLevel(t *testing.T) {
	_, err := New(Config{Writer: &bytes.Buffer{}, Level: "chatty"})
	assert.Error(t, err)
}

func TestNop(t *testing.T) {
	l := Nop()
	assert.NotPanics(t, func() {
		zl := l.Component("x")
		zl.Info().Msg("dropped")
	})
	assert.NoError(t, l.Close())
}
