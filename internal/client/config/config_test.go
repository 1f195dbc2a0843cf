package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	os.Args = append([]string{"samcli"}, args...)
	t.Cleanup(func() { os.Args = orig })
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://samproject.seekerhut.com:8081", c.APIBase)
	assert.Equal(t, 15*time.Second, c.RequestTimeout)
	assert.Equal(t, "sam_session.db", c.SessionDBPath)
	assert.Equal(t, 4, c.PreloadParallelism)
	assert.Equal(t, "info", c.LogLevel)
	assert.False(t, c.S3Enabled())
}

func TestLoadConfig_FallsBackToDefaultBase(t *testing.T) {
	withArgs(t)
	t.Setenv("SAM_API_BASE", "")
	require.NoError(t, os.Unsetenv("SAM_API_BASE"))

	cfg := LoadConfig()
	require.NotNil(t, cfg)
	assert.Equal(t, DefaultAPIBase, cfg.APIBase)
}

func TestLoadConfig_EnvOverridesDefaults(t *testing.T) {
	withArgs(t)
	t.Setenv("SAM_API_BASE", "http://localhost:8081/")
	t.Setenv("SAM_REQUEST_TIMEOUT", "3s")
	t.Setenv("SAM_PRELOAD_PARALLELISM", "8")
	t.Setenv("SAM_S3_ENDPOINT", "http://minio:9000")

	cfg := LoadConfig()

	assert.Equal(t, "http://localhost:8081", cfg.APIBase)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 8, cfg.PreloadParallelism)
	assert.True(t, cfg.S3Enabled())
}

func TestLoadConfig_FlagsOverrideJsonAndEnv(t *testing.T) {
	path := writeTempJSON(t, "", "", map[string]any{
		"api_base":        "http://from-json",
		"request_timeout": "20s",
		"log_level":       "warn",
	})
	t.Setenv("SAM_API_BASE", "http://from-env")
	withArgs(t, "-c", path, "-a", "http://from-flag", "-p", "2")

	cfg := LoadConfig()

	assert.Equal(t, "http://from-flag", cfg.APIBase)
	assert.Equal(t, 20*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 2, cfg.PreloadParallelism)
}

func TestParseEnv_Malformed_Panics(t *testing.T) {
	t.Setenv("SAM_PRELOAD_PARALLELISM", "many")
	cfg := &Config{}
	require.Panics(t, func() { parseEnv(cfg) })
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"-a", "http://127.0.0.1:8081", "-t", "7", "-d", "/tmp/s.db", "-p", "3", "-l", "debug"},
			expected: &Config{
				APIBase:            "http://127.0.0.1:8081",
				RequestTimeout:     7 * time.Second,
				SessionDBPath:      "/tmp/s.db",
				PreloadParallelism: 3,
				LogLevel:           "debug",
			},
		},
		{
			name:     "unrelated flags ignored",
			args:     []string{"-x", "1", "-t", "2"},
			expected: &Config{RequestTimeout: 2 * time.Second},
		},
		{name: "bad timeout", args: []string{"-t", "abc"}, expectPanic: true},
		{name: "bad parallelism", args: []string{"-p", "x"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withArgs(t, tt.args...)
			cfg := &Config{}

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(cfg) })
				return
			}
			require.NotPanics(t, func() { parseFlags(cfg) })
			assert.Empty(t, cmp.Diff(tt.expected, cfg))
		})
	}
}

func TestNormalize(t *testing.T) {
	cfg := &Config{APIBase: " http://h:1/// ", PreloadParallelism: 0}
	cfg.normalize()

	assert.Equal(t, "http://h:1", cfg.APIBase)
	assert.Equal(t, 1, cfg.PreloadParallelism)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
}
