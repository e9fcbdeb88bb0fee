package mcpserver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// clearOASMERGEEnv clears all OASMERGE_* env vars to isolate tests from the ambient environment.
func clearOASMERGEEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"OASMERGE_CACHE_ENABLED", "OASMERGE_CACHE_MAX_SIZE",
		"OASMERGE_CACHE_FILE_TTL", "OASMERGE_CACHE_CONTENT_TTL",
		"OASMERGE_CACHE_SWEEP_INTERVAL",
		"OASMERGE_MAX_INLINE_SIZE", "OASMERGE_MAX_SOURCES",
		"OASMERGE_TITLE", "OASMERGE_VERSION", "OASMERGE_SERVERS",
		"OASMERGE_SCHEMA_CONFLICT", "OASMERGE_VALIDATE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearOASMERGEEnv(t)

	c := loadConfig()

	assert.True(t, c.CacheEnabled)
	assert.Equal(t, 10, c.CacheMaxSize)
	assert.Equal(t, 15*time.Minute, c.CacheFileTTL)
	assert.Equal(t, 15*time.Minute, c.CacheContentTTL)
	assert.Equal(t, 60*time.Second, c.CacheSweepInterval)
	assert.Equal(t, int64(10*1024*1024), c.MaxInlineSize)
	assert.Equal(t, 50, c.MaxSources)
	assert.Empty(t, c.Title)
	assert.Empty(t, c.Version)
	assert.Empty(t, c.Servers)
	assert.Empty(t, c.SchemaConflict)
	assert.False(t, c.Validate)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	clearOASMERGEEnv(t)
	t.Setenv("OASMERGE_CACHE_ENABLED", "false")
	t.Setenv("OASMERGE_CACHE_MAX_SIZE", "50")
	t.Setenv("OASMERGE_CACHE_FILE_TTL", "30m")
	t.Setenv("OASMERGE_CACHE_CONTENT_TTL", "10m")
	t.Setenv("OASMERGE_CACHE_SWEEP_INTERVAL", "30s")
	t.Setenv("OASMERGE_MAX_INLINE_SIZE", "5242880")
	t.Setenv("OASMERGE_MAX_SOURCES", "5")
	t.Setenv("OASMERGE_TITLE", "Platform API")
	t.Setenv("OASMERGE_VERSION", "2.0.0")
	t.Setenv("OASMERGE_SERVERS", "https://a.example.com, ,https://b.example.com")
	t.Setenv("OASMERGE_SCHEMA_CONFLICT", "first-wins")
	t.Setenv("OASMERGE_VALIDATE", "true")

	c := loadConfig()

	assert.False(t, c.CacheEnabled)
	assert.Equal(t, 50, c.CacheMaxSize)
	assert.Equal(t, 30*time.Minute, c.CacheFileTTL)
	assert.Equal(t, 10*time.Minute, c.CacheContentTTL)
	assert.Equal(t, 30*time.Second, c.CacheSweepInterval)
	assert.Equal(t, int64(5242880), c.MaxInlineSize)
	assert.Equal(t, 5, c.MaxSources)
	assert.Equal(t, "Platform API", c.Title)
	assert.Equal(t, "2.0.0", c.Version)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, c.Servers)
	assert.Equal(t, "first-wins", c.SchemaConflict)
	assert.True(t, c.Validate)
}

func TestLoadConfig_InvalidValuesFallBack(t *testing.T) {
	clearOASMERGEEnv(t)
	t.Setenv("OASMERGE_CACHE_ENABLED", "maybe")
	t.Setenv("OASMERGE_CACHE_MAX_SIZE", "-1")
	t.Setenv("OASMERGE_CACHE_FILE_TTL", "soon")
	t.Setenv("OASMERGE_SCHEMA_CONFLICT", "last-wins")

	c := loadConfig()

	assert.True(t, c.CacheEnabled)
	assert.Equal(t, 10, c.CacheMaxSize)
	assert.Equal(t, 15*time.Minute, c.CacheFileTTL)
	assert.Empty(t, c.SchemaConflict)
}
