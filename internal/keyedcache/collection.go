package keyedcache

import (
	"sync"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Collection is a flat, insertion ordered view de-duplicated by identity.
// Adding an item that already exists replaces it in place.
type Collection[ID comparable, V any] struct {
	mu       sync.RWMutex
	items    *orderedmap.OrderedMap[ID, V]
	identity func(V) ID
}

// NewCollection creates an empty collection keyed by identity.
func NewCollection[ID comparable, V any](identity func(V) ID) *Collection[ID, V] {
	return &Collection[ID, V]{
		items:    orderedmap.New[ID, V](),
		identity: identity,
	}
}

// Upsert adds or replaces items.
func (c *Collection[ID, V]) Upsert(items ...V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, item := range items {
		c.items.Set(c.identity(item), item)
	}
}

// Replace swaps the whole content for the given items.
func (c *Collection[ID, V]) Replace(items []V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = orderedmap.New[ID, V]()
	for _, item := range items {
		c.items.Set(c.identity(item), item)
	}
}

// Get returns the item with the given identity.
func (c *Collection[ID, V]) Get(id ID) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.items.Get(id)
}

// Values returns the items in insertion order.
func (c *Collection[ID, V]) Values() []V {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]V, 0, c.items.Len())
	for pair := c.items.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// Len returns the number of distinct items.
func (c *Collection[ID, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.items.Len()
}

// Reset removes every item.
func (c *Collection[ID, V]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = orderedmap.New[ID, V]()
}
