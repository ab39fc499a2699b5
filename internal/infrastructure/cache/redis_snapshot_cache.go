package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/retailboard/backend/internal/application/analytics"
)

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// RedisSnapshotCache implements analytics.SnapshotCache using Redis.
// Snapshots are stored as JSON under the analytics:{brand}:{year}:{month}
// key with a TTL; invalidation scans for every brand's key of a period.
type RedisSnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSnapshotCache connects to Redis and returns a snapshot cache.
func NewRedisSnapshotCache(cfg RedisConfig, ttl time.Duration) (*RedisSnapshotCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisSnapshotCache{client: client, ttl: ttl}, nil
}

// NewRedisSnapshotCacheWithClient wraps an existing Redis client.
// This is useful for testing or when sharing a client across components.
func NewRedisSnapshotCacheWithClient(client *redis.Client, ttl time.Duration) *RedisSnapshotCache {
	return &RedisSnapshotCache{client: client, ttl: ttl}
}

// Get returns the cached snapshot for a key, reporting whether it exists.
func (c *RedisSnapshotCache) Get(ctx context.Context, key string) (*analytics.StoreAggregation, bool, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snapshot analytics.StoreAggregation
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		// A corrupt entry is treated as a miss so the caller recomputes.
		return nil, false, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &snapshot, true, nil
}

// Set stores a snapshot under the given key with the configured TTL.
func (c *RedisSnapshotCache) Set(ctx context.Context, key string, snapshot *analytics.StoreAggregation) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

// InvalidatePeriod removes the period's snapshots for every brand.
func (c *RedisSnapshotCache) InvalidatePeriod(ctx context.Context, year, month int) error {
	return c.deleteByPattern(ctx, fmt.Sprintf("analytics:*:%d:%d", year, month))
}

// InvalidateAll removes every stored snapshot.
func (c *RedisSnapshotCache) InvalidateAll(ctx context.Context) error {
	return c.deleteByPattern(ctx, "analytics:*")
}

func (c *RedisSnapshotCache) deleteByPattern(ctx context.Context, pattern string) error {
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan snapshot keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete snapshot keys: %w", err)
	}
	return nil
}

// Close closes the Redis client.
func (c *RedisSnapshotCache) Close() error {
	return c.client.Close()
}

// Ensure RedisSnapshotCache implements analytics.SnapshotCache
var _ analytics.SnapshotCache = (*RedisSnapshotCache)(nil)
