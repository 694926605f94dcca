package keyedcache

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

// FetchFunc loads the value of a missing key.
type FetchFunc[V any] func(ctx context.Context) (V, error)

// Cache memoizes values per key for the lifetime of the session.
// No TTL and no eviction: Reset is the only invalidation.
type Cache[K comparable, V any] struct {
	mu         sync.RWMutex
	items      map[K]V
	generation uint64
	group      singleflight.Group
}

// New creates an empty cache.
func New[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{items: make(map[K]V)}
}

// Get returns a cached value without fetching.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	value, ok := c.items[key]
	return value, ok
}

// Set stores a value under the key, replacing any previous one.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = value
}

// GetOrFetch returns the cached value or runs fetch exactly once for the key.
// Concurrent misses on the same key share one fetch. Failures are not cached.
func (c *Cache[K, V]) GetOrFetch(ctx context.Context, key K, fetch FetchFunc[V]) (V, error) {
	if value, ok := c.Get(key); ok {
		return value, nil
	}

	c.mu.RLock()
	generation := c.generation
	c.mu.RUnlock()

	// The flight outlives the caller that started it.
	flightCtx := context.WithoutCancel(ctx)

	ch := c.group.DoChan(flightKey(key), func() (any, error) {
		// Someone may have filled the key while we waited for the flight.
		if value, ok := c.Get(key); ok {
			return value, nil
		}

		value, err := fetch(flightCtx)
		if err != nil {
			return value, err
		}

		c.mu.Lock()
		// Drop results fetched before a reset.
		if c.generation == generation {
			c.items[key] = value
		}
		c.mu.Unlock()

		return value, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			var zero V
			return zero, res.Err
		}
		value, _ := res.Val.(V)
		return value, nil
	case <-ctx.Done():
		var zero V
		return zero, ctx.Err()
	}
}

// Delete removes a single key.
func (c *Cache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
}

// Len returns the number of cached keys.
func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.items)
}

// Keys returns the cached keys in no particular order.
func (c *Cache[K, V]) Keys() []K {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]K, 0, len(c.items))
	for key := range c.items {
		keys = append(keys, key)
	}
	return keys
}

// Snapshot copies every cached entry.
func (c *Cache[K, V]) Snapshot() map[K]V {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[K]V, len(c.items))
	for key, value := range c.items {
		out[key] = value
	}
	return out
}

// Reset clears every key. In-flight fetches started before it won't repopulate.
func (c *Cache[K, V]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[K]V)
	c.generation++
}

// singleflight keys are strings, %#v keeps compound keys distinct.
func flightKey[K comparable](key K) string {
	return fmt.Sprintf("%#v", key)
}
