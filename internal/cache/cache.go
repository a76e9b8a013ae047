package cache

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// ViewCache holds rendered admin aggregates in Redis, keyed by view
// path. Mutations invalidate the affected path. The cache is an
// optimization only: on any Redis failure callers fall through to the
// database, so correctness never depends on it.
type ViewCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// New connects to Redis. An empty addr disables caching (every method
// becomes a no-op miss).
func New(addr string) *ViewCache {
	if addr == "" {
		return &ViewCache{}
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Printf("WARNING: Redis unavailable (%v), view cache disabled", err)
		return &ViewCache{}
	}
	log.Println("Redis view cache connected")
	return &ViewCache{rdb: rdb, ttl: 60 * time.Second}
}

// Get returns the cached payload for a view path, if present.
func (c *ViewCache) Get(ctx context.Context, viewPath string) ([]byte, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	data, err := c.rdb.Get(ctx, key(viewPath)).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set stores a rendered payload for a view path.
func (c *ViewCache) Set(ctx context.Context, viewPath string, payload []byte) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Set(ctx, key(viewPath), payload, c.ttl).Err(); err != nil {
		log.Printf("WARNING: cache set for %s failed: %v", viewPath, err)
	}
}

// Invalidate drops the cached payload for a view path. Called by every
// mutation that changes what the view would render.
func (c *ViewCache) Invalidate(ctx context.Context, viewPath string) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, key(viewPath)).Err(); err != nil {
		log.Printf("WARNING: cache invalidation for %s failed: %v", viewPath, err)
	}
}

func key(viewPath string) string { return "view:" + viewPath }
