// Package logging_test tests logger construction for hooks and CLI commands.
// Related: internal/logging/logging.go
// Tags: logging, zerolog

package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevel(t *testing.T) {
	t.Parallel()
	assert.Equal(t, zerolog.DebugLevel, Level(true))
	assert.Equal(t, zerolog.InfoLevel, Level(false))
}

func TestFile_AppendsJSONLines(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "logs")
	logger, closer, err := File(dir, false)
	require.NoError(t, err)

	logger.Info().Str("event", "stop").Msg("first")
	logger.Debug().Msg("suppressed at info level")
	require.NoError(t, closer.Close())

	logger, closer, err = File(dir, true)
	require.NoError(t, err)
	logger.Debug().Msg("second")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(filepath.Join(dir, LogFileName))
	require.NoError(t, err)
	lines := bytes.Split(bytes.TrimSpace(data), []byte("\n"))
	require.Len(t, lines, 2)

	var first map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &first))
	assert.Equal(t, "first", first["message"])
	assert.Equal(t, "stop", first["event"])
}

func TestFileOrNop_UnwritableDirectory(t *testing.T) {
	t.Parallel()

	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	logger, closeFn := FileOrNop(filepath.Join(blocker, "logs"), true)
	defer closeFn()
	assert.NotPanics(t, func() { logger.Info().Msg("dropped") })
}

func TestConsole_RespectsLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := Console(&buf, false)
	logger.Debug().Msg("hidden")
	logger.Warn().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
