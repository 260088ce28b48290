package config

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// DashboardCacheKey holds the cached overview payload. Writes to deals,
// tasks and contacts invalidate it so the dashboard never relies on
// timer-based expiry alone.
const DashboardCacheKey = "dashboard:overview"

const DashboardCacheTTL = 5 * time.Minute

// Cache is nil when REDIS_URL is unset; callers treat that as a miss.
var Cache *CacheClient

type CacheClient struct {
	Redis *redis.Client
}

func ConnectCache() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		log.Println("REDIS_URL not set, dashboard caching disabled")
		return
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("Invalid REDIS_URL, dashboard caching disabled: %v", err)
		return
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis unreachable, dashboard caching disabled: %v", err)
		return
	}

	log.Println("Redis connected")
	Cache = &CacheClient{Redis: client}
}

func (c *CacheClient) Close() error {
	return c.Redis.Close()
}

// Get returns the cached value and whether it was present.
func (c *CacheClient) Get(ctx context.Context, key string) (string, bool) {
	if c == nil {
		return "", false
	}
	val, err := c.Redis.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

// Set stores a value with expiration. Failures are logged and swallowed,
// caching is never allowed to fail a read.
func (c *CacheClient) Set(ctx context.Context, key, value string, ttl time.Duration) {
	if c == nil {
		return
	}
	if err := c.Redis.Set(ctx, key, value, ttl).Err(); err != nil {
		log.Printf("cache set failed for %s: %v", key, err)
	}
}

// Invalidate drops keys after a successful write.
func (c *CacheClient) Invalidate(ctx context.Context, keys ...string) {
	if c == nil {
		return
	}
	if err := c.Redis.Del(ctx, keys...).Err(); err != nil {
		log.Printf("cache invalidation failed: %v", err)
	}
}

// InvalidateDashboard is the write-path hook used by the entity handlers.
func InvalidateDashboard(ctx context.Context) {
	Cache.Invalidate(ctx, DashboardCacheKey)
}
