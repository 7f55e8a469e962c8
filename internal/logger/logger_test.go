package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pool.log")

	log, err := New(Config{Level: "debug", Format: "json", OutputFile: path})
	require.NoError(t, err)

	log.Debug("evicted page", zap.Int32("page", 4))
	require.NoError(t, log.Sync())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(raw, &entry))
	require.Equal(t, "evicted page", entry["msg"])
	require.Equal(t, "DEBUG", entry["level"])
	require.Equal(t, "novapool", entry["service"])
	require.EqualValues(t, 4, entry["page"])
}

func TestNew_LevelFilter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pool.log")

	log, err := New(Config{Level: "bogus", OutputFile: path, Service: "cli"})
	require.NoError(t, err)
	require.False(t, log.Core().Enabled(zap.DebugLevel))
	require.True(t, log.Core().Enabled(zap.InfoLevel))

	log.Debug("dropped")
	require.NoError(t, log.Sync())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Empty(t, raw)
}

func TestNew_BadPath(t *testing.T) {
	_, err := New(Config{OutputFile: filepath.Join(t.TempDir(), "missing", "pool.log")})
	require.Error(t, err)
}
