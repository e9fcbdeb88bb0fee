package mcpserver

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasmerge/oaserrors"
)

const minimalContent = `openapi: "3.0.0"
info:
  title: Test
  version: "1.0"
paths: {}
`

func TestSpecInput_ResolveFile(t *testing.T) {
	specCache.reset()
	result, err := specInput{File: "../../testdata/svc1.yaml"}.resolve(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, "3.0.3", result.Version)
	assert.Equal(t, "svc1", result.SourceName)
}

func TestSpecInput_ResolveContent(t *testing.T) {
	specCache.reset()
	result, err := specInput{Content: minimalContent}.resolve(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, "3.0.0", result.Version)
}

func TestSpecInput_ResolveErrors(t *testing.T) {
	specCache.reset()
	tests := []struct {
		name    string
		input   specInput
		wantErr string
	}{
		{"none provided", specInput{}, "exactly one of file or content must be provided"},
		{"both provided", specInput{File: "foo.yaml", Content: "bar"}, "got both"},
		{"file not found", specInput{File: "/nonexistent/path.yaml"}, "failed to read file"},
		{"not openapi 3", specInput{Content: "swagger: '2.0'\n"}, "parse error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.input.resolve(context.Background(), false)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestSpecInput_ResolveValidation(t *testing.T) {
	specCache.reset()
	invalid := `openapi: 3.0.3
info: {title: bad, version: '1'}
paths:
  /things/{id}:
    get:
      responses:
        '200': {description: ok}
`
	_, err := specInput{Content: invalid}.resolve(context.Background(), true)
	assert.ErrorIs(t, err, oaserrors.ErrValidation)

	_, err = specInput{Content: invalid}.resolve(context.Background(), false)
	assert.NoError(t, err)
}

func TestSpecInput_InlineSizeLimit(t *testing.T) {
	old := cfg.MaxInlineSize
	cfg.MaxInlineSize = 10
	t.Cleanup(func() { cfg.MaxInlineSize = old })

	_, err := specInput{Content: minimalContent}.resolve(context.Background(), false)
	assert.ErrorContains(t, err, "OASMERGE_MAX_INLINE_SIZE")
}

func TestSpecCache_HitOnSameFile(t *testing.T) {
	specCache.reset()
	input := specInput{File: "../../testdata/svc2.yaml"}

	result1, err := input.resolve(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 1, specCache.size())

	result2, err := input.resolve(context.Background(), false)
	require.NoError(t, err)
	assert.Same(t, result1, result2, "expected same pointer from cache hit")

	_, err = input.resolve(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, 2, specCache.size(), "validated parses are cached separately")
}

func TestSpecCache_MissOnModifiedFile(t *testing.T) {
	specCache.reset()
	path := filepath.Join(t.TempDir(), "spec.yaml")
	require.NoError(t, os.WriteFile(path, []byte(minimalContent), 0o600))

	input := specInput{File: path}
	result1, err := input.resolve(context.Background(), false)
	require.NoError(t, err)

	later := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, later, later))

	result2, err := input.resolve(context.Background(), false)
	require.NoError(t, err)
	assert.NotSame(t, result1, result2)
}

func TestSpecCache_EvictsOldest(t *testing.T) {
	c := &specCacheStore{entries: make(map[string]*cacheEntry), maxSize: 2}
	c.putWithTTL("a", nil, time.Minute)
	time.Sleep(time.Millisecond)
	c.putWithTTL("b", nil, time.Minute)
	time.Sleep(time.Millisecond)
	c.putWithTTL("c", nil, time.Minute)

	assert.Equal(t, 2, c.size())
	_, hasA := c.entries["a"]
	assert.False(t, hasA)
}

func TestSpecCache_Sweep(t *testing.T) {
	c := &specCacheStore{entries: make(map[string]*cacheEntry), maxSize: 5}
	c.putWithTTL("expired", nil, time.Nanosecond)
	c.putWithTTL("fresh", nil, time.Hour)
	time.Sleep(time.Millisecond)

	c.sweep()
	assert.Equal(t, 1, c.size())
}

func TestSpecCache_SweeperStopsWithContext(t *testing.T) {
	c := &specCacheStore{entries: make(map[string]*cacheEntry), maxSize: 5}
	ctx, cancel := context.WithCancel(context.Background())
	c.startSweeper(ctx, time.Millisecond)
	assert.True(t, c.sweeperStarted.Load())

	cancel()
	assert.Eventually(t, func() bool { return !c.sweeperStarted.Load() }, time.Second, time.Millisecond)
}
