package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-refinance/config"
)

func setupRedisCache(t *testing.T, ttl time.Duration) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	cache := NewRedisCache(config.RedisConfig{Address: mr.Addr(), TTL: ttl})
	t.Cleanup(func() { _ = cache.Close() })
	return cache, mr
}

func TestRedisCache_SetGet(t *testing.T) {
	cache, mr := setupRedisCache(t, 0)

	require.NoError(t, cache.Ping(context.Background()))
	require.NoError(t, cache.Set("10000|12|900", "0.012043456781"))

	val, ok := cache.Get("10000|12|900")
	assert.True(t, ok)
	assert.Equal(t, "0.012043456781", val)
	assert.True(t, mr.Exists("refinance:rate:10000|12|900"))
}

func TestRedisCache_Miss(t *testing.T) {
	cache, _ := setupRedisCache(t, 0)

	_, ok := cache.Get("missing")
	assert.False(t, ok)
}

func TestRedisCache_TTL(t *testing.T) {
	cache, mr := setupRedisCache(t, time.Hour)

	require.NoError(t, cache.Set("k", "v"))
	assert.Equal(t, time.Hour, mr.TTL("refinance:rate:k"))

	mr.FastForward(2 * time.Hour)
	_, ok := cache.Get("k")
	assert.False(t, ok)
}

func TestRedisCache_Unreachable(t *testing.T) {
	cache, mr := setupRedisCache(t, 0)
	mr.Close()

	assert.Error(t, cache.Ping(context.Background()))
	assert.Error(t, cache.Set("k", "v"))
	_, ok := cache.Get("k")
	assert.False(t, ok)
}

func TestMemoryCache(t *testing.T) {
	cache := NewMemoryCache()

	_, ok := cache.Get("k")
	assert.False(t, ok)

	require.NoError(t, cache.Set("k", "v"))
	require.NoError(t, cache.Set("k", "w"))
	val, ok := cache.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "w", val)
	assert.Equal(t, 1, cache.Len())
}
