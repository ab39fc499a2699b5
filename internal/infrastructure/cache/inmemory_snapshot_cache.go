package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/retailboard/backend/internal/application/analytics"
)

// snapshotEntry holds one cached aggregation with its expiry. A zero
// expiresAt means the entry never expires, matching Redis's zero-TTL
// behavior.
type snapshotEntry struct {
	payload   []byte
	expiresAt time.Time
}

// InMemorySnapshotCache implements analytics.SnapshotCache with a map.
// Entries are stored as JSON so that Get hands out fresh copies, the same
// aliasing contract the Redis implementation gives. Suitable for
// single-instance deployments and testing.
type InMemorySnapshotCache struct {
	mu      sync.RWMutex
	entries map[string]snapshotEntry
	ttl     time.Duration
}

// NewInMemorySnapshotCache creates a new in-memory snapshot cache. A
// non-positive ttl disables expiry.
func NewInMemorySnapshotCache(ttl time.Duration) *InMemorySnapshotCache {
	return &InMemorySnapshotCache{
		entries: make(map[string]snapshotEntry),
		ttl:     ttl,
	}
}

// Get returns the cached snapshot for a key, reporting whether it exists.
func (c *InMemorySnapshotCache) Get(ctx context.Context, key string) (*analytics.StoreAggregation, bool, error) {
	c.mu.RLock()
	e, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists {
		return nil, false, nil
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		return nil, false, nil
	}

	var snapshot analytics.StoreAggregation
	if err := json.Unmarshal(e.payload, &snapshot); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached snapshot: %w", err)
	}
	return &snapshot, true, nil
}

// Set stores a snapshot under the given key with the configured TTL.
func (c *InMemorySnapshotCache) Set(ctx context.Context, key string, snapshot *analytics.StoreAggregation) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	var expiresAt time.Time
	if c.ttl > 0 {
		expiresAt = time.Now().Add(c.ttl)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = snapshotEntry{
		payload:   payload,
		expiresAt: expiresAt,
	}
	return nil
}

// InvalidatePeriod removes the period's snapshots for every brand.
func (c *InMemorySnapshotCache) InvalidatePeriod(ctx context.Context, year, month int) error {
	suffix := ":" + strconv.Itoa(year) + ":" + strconv.Itoa(month)

	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.entries {
		if strings.HasPrefix(key, "analytics:") && strings.HasSuffix(key, suffix) {
			delete(c.entries, key)
		}
	}
	return nil
}

// InvalidateAll removes every stored snapshot.
func (c *InMemorySnapshotCache) InvalidateAll(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]snapshotEntry)
	return nil
}

// Size returns the number of entries in the cache (for testing/monitoring)
func (c *InMemorySnapshotCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Ensure InMemorySnapshotCache implements analytics.SnapshotCache
var _ analytics.SnapshotCache = (*InMemorySnapshotCache)(nil)
