package cache

import (
	"context"
	"cvrp-route-service/internal/domain"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisCache(t *testing.T, ttl time.Duration) (*RedisSolutionCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisSolutionCache(client, ttl), mr
}

func TestRedisSolutionCacheMiss(t *testing.T) {
	c, _ := newTestRedisCache(t, 0)

	_, ok, err := c.Get(context.Background(), "cvrp:solution:missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisSolutionCacheKeepsBest(t *testing.T) {
	c, _ := newTestRedisCache(t, 0)
	ctx := context.Background()
	key := "cvrp:solution:abc"

	require.NoError(t, c.Put(ctx, key, domain.Solution{Genes: []int{3, 1, 2}, Score: 40}))
	require.NoError(t, c.Put(ctx, key, domain.Solution{Genes: []int{2, 1, 3}, Score: 55}))

	got, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []int{3, 1, 2}, got.Genes)
	assert.Equal(t, int64(40), got.Score)

	require.NoError(t, c.Put(ctx, key, domain.Solution{Genes: []int{1, 2, 3}, Score: 31}))
	got, _, err = c.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, got.Genes)
	assert.Equal(t, int64(31), got.Score)
}

func TestRedisSolutionCacheTTL(t *testing.T) {
	c, mr := newTestRedisCache(t, time.Minute)
	ctx := context.Background()
	key := "cvrp:solution:ttl"

	require.NoError(t, c.Put(ctx, key, domain.Solution{Genes: []int{1}, Score: 2}))
	assert.Equal(t, time.Minute, mr.TTL(key))

	mr.FastForward(2 * time.Minute)
	_, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisSolutionCacheCorruptEntry(t *testing.T) {
	c, mr := newTestRedisCache(t, 0)
	mr.HSet("cvrp:solution:bad", "score", "12", "genes", "not-json")

	_, _, err := c.Get(context.Background(), "cvrp:solution:bad")
	require.Error(t, err)
}

func TestRedisSolutionCacheRejectsEmptyKey(t *testing.T) {
	c, _ := newTestRedisCache(t, 0)
	require.Error(t, c.Put(context.Background(), " ", domain.Solution{}))
}
