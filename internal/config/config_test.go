package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()

	for _, k := range []string{
		"PORT", "CURL_MAPPER_LISTEN", "CURL_MAPPER_DOCS_DIR", "CURL_MAPPER_WATCH",
		"CURL_MAPPER_DEBOUNCE_MS", "CURL_MAPPER_CACHE_SIZE", "CURL_MAPPER_SUGGEST_LIMIT", "CURL_MAPPER_COLOR",
	} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "curl-mapper.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, ":8080", cfg.Server.Listen)
	assert.Equal(t, 200*time.Millisecond, cfg.Debounce())
	assert.Equal(t, 15*time.Second, cfg.ReadTimeout())
	assert.Equal(t, 15*time.Second, cfg.WriteTimeout())
	assert.Equal(t, 256, cfg.Companion.CacheSize)
	assert.Equal(t, 5, cfg.Suggest.Limit)
	assert.Equal(t, ColorAuto, cfg.Output.Color)
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, `
server:
  listen: ":9000"
companion:
  dir: ./docs
  watch: true
  debounce_ms: 50
suggest:
  limit: 3
  min_score: 0.4
output:
  color: never
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Listen)
	assert.Equal(t, "./docs", cfg.Companion.Dir)
	assert.True(t, cfg.Companion.Watch)
	assert.Equal(t, 50*time.Millisecond, cfg.Debounce())
	assert.Equal(t, 256, cfg.Companion.CacheSize)
	assert.Equal(t, 3, cfg.Suggest.Limit)
	assert.InDelta(t, 0.4, cfg.Suggest.MinScore, 1e-9)
	assert.Equal(t, ColorNever, cfg.Output.Color)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, "server:\n  listen: \":9000\"\n")

	t.Setenv("CURL_MAPPER_DOCS_DIR", "/srv/docs")
	t.Setenv("CURL_MAPPER_WATCH", "true")
	t.Setenv("CURL_MAPPER_DEBOUNCE_MS", "75")
	t.Setenv("CURL_MAPPER_SUGGEST_LIMIT", "not-a-number")
	t.Setenv("CURL_MAPPER_COLOR", "ALWAYS")
	t.Setenv("PORT", "7000")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.Server.Listen)
	assert.Equal(t, "/srv/docs", cfg.Companion.Dir)
	assert.True(t, cfg.Companion.Watch)
	assert.Equal(t, 75, cfg.Companion.DebounceMs)
	assert.Equal(t, 5, cfg.Suggest.Limit)
	assert.Equal(t, ColorAlways, cfg.Output.Color)

	t.Setenv("CURL_MAPPER_LISTEN", "127.0.0.1:1234")

	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:1234", cfg.Server.Listen)
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	// The default path may be absent.
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Listen)
}

func TestLoad_Invalid(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		name    string
		content string
	}{
		{name: "bad yaml", content: "server: ["},
		{name: "bad color", content: "output:\n  color: rainbow\n"},
		{name: "bad score", content: "suggest:\n  min_score: 2\n"},
		{name: "watch without dir", content: "companion:\n  watch: true\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
		})
	}
}
