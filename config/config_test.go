package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	c, err := LoadFrom(map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, Config{LogLevel: "info", MaxPasses: 50}, c)

	l, err := c.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, l)
}

func TestOverrides(t *testing.T) {
	c, err := LoadFrom(map[string]string{
		"CIRCUIT_SAVE_DIR":     "/tmp/saves",
		"CIRCUIT_LEVELS":       "pack.yaml",
		"CIRCUIT_LOG_LEVEL":    "debug",
		"CIRCUIT_METRICS_ADDR": ":9100",
		"CIRCUIT_MAX_PASSES":   "7",
	})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/saves", c.SaveDir)
	assert.Equal(t, "pack.yaml", c.Levels)
	assert.Equal(t, ":9100", c.MetricsAddr)
	assert.Equal(t, 7, c.MaxPasses)

	l, err := c.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, l)
}

func TestInvalid(t *testing.T) {
	for _, vars := range []map[string]string{
		{"CIRCUIT_MAX_PASSES": "many"},
		{"CIRCUIT_MAX_PASSES": "0"},
		{"CIRCUIT_LOG_LEVEL": "loud"},
	} {
		_, err := LoadFrom(vars)
		assert.Error(t, err, "%v", vars)
	}
}
