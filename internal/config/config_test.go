package config

import (
	"testing"

	"rateorder/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "GIN_MODE", "LOG_LEVEL", "DATA_FILE", "SHEET_NAME",
		"TIME_COLUMN", "CONCENTRATION_COLUMN", "MAX_POINTS", "PARALLEL_FIT", "PROFILING_ENABLED", "PROFILING_PORT"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.GinMode)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, "Sheet1", cfg.Data.Sheet)
	assert.Equal(t, "time", cfg.Data.TimeColumn)
	assert.Equal(t, "concentration", cfg.Data.ConcentrationColumn)
	assert.Equal(t, 10000, cfg.Data.MaxPoints)
	assert.False(t, cfg.Analysis.ParallelFit)
	assert.False(t, cfg.Profiling.Enabled)
	assert.Equal(t, "6060", cfg.Profiling.Port)
	assert.Equal(t, ":8080", cfg.Address())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("GIN_MODE", "release")
	t.Setenv("TIME_COLUMN", "t_s")
	t.Setenv("CONCENTRATION_COLUMN", "conc_M")
	t.Setenv("PARALLEL_FIT", "true")
	t.Setenv("MAX_POINTS", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Address())
	assert.Equal(t, "release", cfg.Server.GinMode)
	assert.Equal(t, "t_s", cfg.Data.TimeColumn)
	assert.Equal(t, "conc_M", cfg.Data.ConcentrationColumn)
	assert.True(t, cfg.Analysis.ParallelFit)
	assert.Equal(t, 10000, cfg.Data.MaxPoints)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad port", map[string]string{"PORT": "http"}},
		{"bad gin mode", map[string]string{"GIN_MODE": "verbose"}},
		{"same columns", map[string]string{"TIME_COLUMN": "x", "CONCENTRATION_COLUMN": "x"}},
		{"too few points", map[string]string{"MAX_POINTS": "1"}},
		{"profiling on server port", map[string]string{"PROFILING_ENABLED": "true", "PROFILING_PORT": "8080", "PORT": "8080"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
		})
	}
}
