package artifact

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meschsystems/jyro/ast"
	"github.com/meschsystems/jyro/parse"
)

func mustParse(t *testing.T, src string) ast.Block {
	t.Helper()
	block, err := parse.Parse(src)
	require.NoError(t, err)
	return block
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	src := `return data.name`
	block := mustParse(t, src)

	data, err := Encode(src, block)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, src, got.Source)
	require.Equal(t, len(block), len(got.Body))
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode([]byte("not an artifact"))
	require.Error(t, err)
}

func TestKeyIsStableAndContentAddressed(t *testing.T) {
	require.Equal(t, Key("return 1"), Key("return 1"))
	require.NotEqual(t, Key("return 1"), Key("return 2"))
}

func TestCacheGetMissThenPutThenHit(t *testing.T) {
	cache, err := OpenCache(InMemoryCacheConfig(), nil)
	require.NoError(t, err)
	defer cache.Close()

	ctx := context.Background()
	key := Key("return 1")

	_, ok, err := cache.Get(ctx, key)
	require.NoError(t, err)
	require.False(t, ok)

	block := mustParse(t, "return 1")
	data, err := Encode("return 1", block)
	require.NoError(t, err)
	require.NoError(t, cache.Put(ctx, key, data))

	got, ok, err := cache.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)

	decoded, err := Decode(got)
	require.NoError(t, err)
	require.Equal(t, "return 1", decoded.Source)
}

func TestCachePersistsAcrossReopen(t *testing.T) {
	dir, err := tempDir("artifact-cache-test-")
	require.NoError(t, err)
	defer cleanupDir(dir)

	cfg := DefaultCacheConfig(dir)
	cfg.GCInterval = 0

	cache, err := OpenCache(cfg, nil)
	require.NoError(t, err)

	ctx := context.Background()
	block := mustParse(t, "return 2")
	data, err := Encode("return 2", block)
	require.NoError(t, err)
	require.NoError(t, cache.Put(ctx, "k", data))
	require.NoError(t, cache.Close())

	cache2, err := OpenCache(cfg, nil)
	require.NoError(t, err)
	defer cache2.Close()

	got, ok, err := cache2.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)

	decoded, err := Decode(got)
	require.NoError(t, err)
	require.Equal(t, "return 2", decoded.Source)
}

func TestOpenCacheRequiresPathWhenNotInMemory(t *testing.T) {
	_, err := OpenCache(CacheConfig{}, nil)
	require.Error(t, err)
}

func TestGCRunnerValidation(t *testing.T) {
	_, err := newGCRunner(nil, 0, 0.5, nil)
	require.Error(t, err)
}
