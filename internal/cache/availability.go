package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	genKey     = "availability:gen"
	datesKeyFm = "availability:v%d:%s"
)

// AvailabilityCache memoizes lookahead scans. Every mutation bumps a
// generation counter so stale entries are never read again; old keys expire
// through their TTL. A nil redis client disables the cache.
type AvailabilityCache struct {
	rdb *redis.Client
	ttl time.Duration
	log *zap.Logger
}

func NewAvailabilityCache(rdb *redis.Client, ttl time.Duration, log *zap.Logger) *AvailabilityCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &AvailabilityCache{rdb: rdb, ttl: ttl, log: log}
}

// Connect dials redis and checks it answers. An empty addr returns nil.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	if addr == "" {
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

func (c *AvailabilityCache) enabled() bool {
	return c != nil && c.rdb != nil
}

func (c *AvailabilityCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.rdb.Get(ctx, genKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// Dates returns cached dates (YYYY-MM-DD) for key together with the
// generation it looked under. Pass that generation to StoreDates so a result
// computed across an invalidation is filed under the retired generation.
// A negative generation means the counter could not be read.
func (c *AvailabilityCache) Dates(ctx context.Context, key string) ([]string, int64, bool) {
	if !c.enabled() {
		return nil, -1, false
	}

	gen, err := c.generation(ctx)
	if err != nil {
		c.log.Warn("availability cache: read generation", zap.Error(err))
		return nil, -1, false
	}

	raw, err := c.rdb.Get(ctx, fmt.Sprintf(datesKeyFm, gen, key)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("availability cache: get", zap.String("key", key), zap.Error(err))
		}
		return nil, gen, false
	}

	var dates []string
	if err := json.Unmarshal(raw, &dates); err != nil {
		c.log.Warn("availability cache: decode", zap.String("key", key), zap.Error(err))
		return nil, gen, false
	}
	return dates, gen, true
}

// StoreDates files dates under gen, the generation returned by Dates before
// the scan started.
func (c *AvailabilityCache) StoreDates(ctx context.Context, key string, gen int64, dates []string) {
	if !c.enabled() || gen < 0 {
		return
	}

	raw, err := json.Marshal(dates)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, fmt.Sprintf(datesKeyFm, gen, key), raw, c.ttl).Err(); err != nil {
		c.log.Warn("availability cache: set", zap.String("key", key), zap.Error(err))
	}
}

func (c *AvailabilityCache) Invalidate(ctx context.Context) {
	if !c.enabled() {
		return
	}
	if err := c.rdb.Incr(ctx, genKey).Err(); err != nil {
		c.log.Error("availability cache: invalidate", zap.Error(err))
	}
}
