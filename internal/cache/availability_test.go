package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRedisCache(t *testing.T) (*AvailabilityCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return NewAvailabilityCache(rdb, time.Minute, zap.NewNop()), mr
}

func TestAvailabilityCache_HitAndMiss(t *testing.T) {
	c, mr := newRedisCache(t)
	ctx := context.Background()

	_, gen, ok := c.Dates(ctx, "2026-10-16||rolling")
	require.False(t, ok)
	assert.Equal(t, int64(0), gen)

	c.StoreDates(ctx, "2026-10-16||rolling", gen, []string{"2026-10-19", "2026-10-20"})

	dates, gen, ok := c.Dates(ctx, "2026-10-16||rolling")
	require.True(t, ok)
	assert.Equal(t, int64(0), gen)
	assert.Equal(t, []string{"2026-10-19", "2026-10-20"}, dates)

	_, _, ok = c.Dates(ctx, "2026-10-16|Процедура 1|rolling")
	assert.False(t, ok)

	mr.FastForward(2 * time.Minute)
	_, _, ok = c.Dates(ctx, "2026-10-16||rolling")
	assert.False(t, ok, "entries expire with the ttl")
}

func TestAvailabilityCache_InvalidateBumpsGeneration(t *testing.T) {
	c, mr := newRedisCache(t)
	ctx := context.Background()

	_, gen, _ := c.Dates(ctx, "k")
	c.StoreDates(ctx, "k", gen, []string{"2026-10-21"})

	c.Invalidate(ctx)

	_, next, ok := c.Dates(ctx, "k")
	assert.False(t, ok)
	assert.Equal(t, gen+1, next)

	raw, err := mr.Get(genKey)
	require.NoError(t, err)
	assert.Equal(t, "1", raw)
}

func TestAvailabilityCache_StoreAfterInvalidateIsNotServed(t *testing.T) {
	c, _ := newRedisCache(t)
	ctx := context.Background()

	// the scan starts, then a mutation lands before it stores its result
	_, gen, ok := c.Dates(ctx, "k")
	require.False(t, ok)

	c.Invalidate(ctx)
	c.StoreDates(ctx, "k", gen, []string{"2026-10-21"})

	dates, _, ok := c.Dates(ctx, "k")
	assert.False(t, ok)
	assert.Nil(t, dates)
}

func TestAvailabilityCache_UnreachableRedis(t *testing.T) {
	c, mr := newRedisCache(t)
	ctx := context.Background()

	mr.Close()

	_, gen, ok := c.Dates(ctx, "k")
	assert.False(t, ok)
	assert.Equal(t, int64(-1), gen)

	c.StoreDates(ctx, "k", gen, []string{"2026-10-21"})
	c.Invalidate(ctx)
}

func TestAvailabilityCache_DisabledWithoutRedis(t *testing.T) {
	c := NewAvailabilityCache(nil, 0, zap.NewNop())
	ctx := context.Background()

	c.StoreDates(ctx, "k", 0, []string{"2026-10-16"})
	c.Invalidate(ctx)

	_, _, ok := c.Dates(ctx, "k")
	assert.False(t, ok)
}

func TestAvailabilityCache_NilReceiver(t *testing.T) {
	var c *AvailabilityCache
	_, _, ok := c.Dates(context.Background(), "k")
	assert.False(t, ok)
}

func TestConnect(t *testing.T) {
	rdb, err := Connect(context.Background(), "", "", 0)
	assert.NoError(t, err)
	assert.Nil(t, rdb)

	mr := miniredis.RunT(t)
	rdb, err = Connect(context.Background(), mr.Addr(), "", 0)
	require.NoError(t, err)
	require.NotNil(t, rdb)
	_ = rdb.Close()
}
