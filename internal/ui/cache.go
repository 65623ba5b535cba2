package ui

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultFreshness is how long a cached query result is served without
// re-fetching.
const DefaultFreshness = 5 * time.Minute

// QueryCache maps a query key to its latest successful result. Concurrent
// requests for the same key are deduplicated, a failed fetch is retried once,
// and mutations invalidate dependent keys by prefix so the next read
// re-fetches.
type QueryCache struct {
	freshness time.Duration
	clock     func() time.Time

	mu         sync.Mutex
	entries    map[string]cacheEntry
	generation map[string]uint64

	group singleflight.Group
}

type cacheEntry struct {
	value     interface{}
	fetchedAt time.Time
}

func NewQueryCache() *QueryCache {
	return &QueryCache{
		freshness:  DefaultFreshness,
		clock:      time.Now,
		entries:    make(map[string]cacheEntry),
		generation: make(map[string]uint64),
	}
}

// Key builds a cache key from hierarchical parts, e.g.
// Key("learning-paths", studentID). Invalidation matches on key prefix.
func Key(parts ...string) string {
	return strings.Join(parts, "/")
}

// Get returns the cached value for key if it is still fresh, otherwise runs
// fetch (deduplicated across callers, one retry on failure) and caches the
// result. Results from fetches that straddle an invalidation are returned to
// the caller but not cached.
func (c *QueryCache) Get(ctx context.Context, key string, fetch func(ctx context.Context) (interface{}, error)) (interface{}, error) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok && c.clock().Sub(e.fetchedAt) < c.freshness {
		c.mu.Unlock()
		return e.value, nil
	}
	gen := c.generation[key]
	c.generation[key] = gen // register the key so Invalidate can see in-flight fetches
	c.mu.Unlock()

	value, err, _ := c.group.Do(key, func() (interface{}, error) {
		v, err := fetch(ctx)
		if err != nil {
			v, err = fetch(ctx)
		}
		return v, err
	})
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.generation[key] == gen {
		c.entries[key] = cacheEntry{value: value, fetchedAt: c.clock()}
	}
	c.mu.Unlock()
	return value, nil
}

// Invalidate drops every entry whose key starts with prefix. In-flight
// fetches for dropped keys will not repopulate the cache.
func (c *QueryCache) Invalidate(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
	for key := range c.generation {
		if strings.HasPrefix(key, prefix) {
			c.generation[key]++
		}
	}
}

// Fetch is a typed convenience wrapper around QueryCache.Get.
func Fetch[T any](ctx context.Context, c *QueryCache, key string, fetch func(ctx context.Context) (T, error)) (T, error) {
	value, err := c.Get(ctx, key, func(ctx context.Context) (interface{}, error) {
		return fetch(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return value.(T), nil
}
