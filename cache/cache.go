package cache

import (
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Cache is a generic in-memory cache of values produced by a user-defined compute function.
// It is safe for concurrent use; concurrent misses on the same key compute once.
type Cache[K comparable, V any] struct {
	mu      sync.Mutex
	options options[K, V]
	records map[K]V
	hits    uint64
	misses  uint64

	group singleflight.Group
}

// New creates a new cache with the provided options.
func New[K comparable, V any](options ...Option[K, V]) *Cache[K, V] {
	opts := applyOptions[K, V](options...)
	return &Cache[K, V]{
		options: opts,
		records: make(map[K]V),
	}
}

// GetOrCompute returns the cached value for key, computing and storing it on a miss.
// Errors are returned to every waiter and are not cached.
func (c *Cache[K, V]) GetOrCompute(key K) (V, error) {
	if v, ok := c.lookup(key, true); ok {
		return v, nil
	}

	res, err, _ := c.group.Do(fmt.Sprintf("%#v", key), func() (any, error) {
		// a caller that missed may arrive just after the previous flight stored the value.
		if v, ok := c.lookup(key, false); ok {
			return v, nil
		}
		c.mu.Lock()
		c.misses++
		c.mu.Unlock()

		v, err := c.options.computeFunc(key)
		if err != nil {
			c.options.logger.Debug().Err(err).Any("key", key).Msg("failed to compute cache entry")
			return v, err
		}
		c.store(key, v)
		return v, nil
	})
	v, _ := res.(V)
	return v, err
}

func (c *Cache[K, V]) lookup(key K, countHit bool) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.records[key]
	if ok && countHit {
		c.hits++
	}
	return v, ok
}

func (c *Cache[K, V]) store(key K, v V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.options.maxEntries > 0 && len(c.records) >= c.options.maxEntries {
		// the cache only ever holds a handful of reference values, dropping everything is fine.
		c.options.logger.Debug().Int("entries", len(c.records)).Msg("cache full, clearing")
		clear(c.records)
	}
	c.records[key] = v
}

// Stats returns the number of hits and misses so far.
func (c *Cache[K, V]) Stats() (hits, misses uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
