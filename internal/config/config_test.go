package config

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultValues(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.False(t, cfg.Headless)
	assert.Equal(t, 60, cfg.Hz)
	assert.Equal(t, uint64(0), cfg.Ticks)
	assert.Equal(t, 1, cfg.Scale)
	assert.Equal(t, "Calculator", cfg.Title)
	assert.Equal(t, 256, cfg.StepBudget)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("SPARKCALC_HEADLESS", "true")
	t.Setenv("SPARKCALC_HZ", "120")
	t.Setenv("SPARKCALC_KEYS", "1+1=")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.True(t, cfg.Headless)
	assert.Equal(t, 120, cfg.Hz)
	assert.Equal(t, "1+1=", cfg.Keys)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("SPARKCALC_HZ", "120")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load([]string{"-headless", "-hz", "30", "-ticks", "100", "-log-level", "debug", "-scale", "2"})
	require.NoError(t, err)

	assert.True(t, cfg.Headless)
	assert.Equal(t, 30, cfg.Hz)
	assert.Equal(t, uint64(100), cfg.Ticks)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 2, cfg.Scale)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		args    []string
		wantErr string
	}{
		{name: "zero hz", args: []string{"-hz", "0"}, wantErr: "hz must be positive, got 0"},
		{name: "negative scale", args: []string{"-scale", "-1"}, wantErr: "scale must be positive, got -1"},
		{name: "zero budget", env: map[string]string{"SPARKCALC_STEP_BUDGET": "0"}, wantErr: "step budget must be positive, got 0"},
		{name: "bad level", args: []string{"-log-level", "trace"}, wantErr: `unknown log level "trace"`},
		{name: "bad format", env: map[string]string{"LOG_FORMAT": "xml"}, wantErr: `unknown log format "xml"`},
		{name: "keys without headless", args: []string{"-keys", "1"}, wantErr: "keys requires headless mode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(tt.args)
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestLoad_BadEnvValue(t *testing.T) {
	t.Setenv("SPARKCALC_HZ", "fast")

	_, err := Load(nil)
	assert.ErrorContains(t, err, "failed to load environment variables")
}

func TestLoad_Help(t *testing.T) {
	_, err := Load([]string{"-h"})
	assert.ErrorIs(t, err, flag.ErrHelp)
}
