package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuannm99/novapool/internal/bufferpool"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "novapool.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	require.Equal(t, "novapool.bin", cfg.PageFile)
	require.Equal(t, 16, cfg.Frames)
	require.Equal(t, bufferpool.StrategyLRU, cfg.PoolStrategy())
	require.Equal(t, bufferpool.DefaultLRUK, cfg.LRUK)
	require.Equal(t, "info", cfg.Log.Level)
	require.False(t, cfg.Metrics.Enabled)
}

func TestLoadConfig_File(t *testing.T) {
	path := writeConfig(t, `
page_file: /tmp/pages.bin
frames: 3
strategy: fifo
log:
  level: debug
  format: json
metrics:
  enabled: true
  addr: "127.0.0.1:9999"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	require.Equal(t, "/tmp/pages.bin", cfg.PageFile)
	require.Equal(t, 3, cfg.Frames)
	require.Equal(t, bufferpool.StrategyFIFO, cfg.PoolStrategy())
	require.Equal(t, "debug", cfg.LoggerConfig().Level)
	require.Equal(t, "json", cfg.LoggerConfig().Format)
	require.True(t, cfg.TelemetryConfig().Enabled)
	require.Equal(t, "127.0.0.1:9999", cfg.TelemetryConfig().Addr)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("NOVAPOOL_FRAMES", "7")
	t.Setenv("NOVAPOOL_STRATEGY", "clock")
	t.Setenv("NOVAPOOL_LOG_LEVEL", "warn")

	cfg, err := LoadConfig(writeConfig(t, "frames: 3\n"))
	require.NoError(t, err)

	require.Equal(t, 7, cfg.Frames)
	require.Equal(t, bufferpool.StrategyClock, cfg.PoolStrategy())
	require.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadConfig_Invalid(t *testing.T) {
	cases := map[string]string{
		"zero frames":      "frames: 0\n",
		"unknown strategy": "strategy: random\n",
		"bad lru_k":        "strategy: lru_k\nlru_k: 0\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, body))
			require.ErrorIs(t, err, ErrInvalidConfig)
		})
	}

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
