// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache provides a small keyed cache with optional per-entry
// expiry and insertion-order trimming. Each client owns its own Cache
// instance, injected at construction, so there is no shared module state.
package cache

import (
	"sync"
	"time"
)

// Cache maps string keys to values of type V. A zero TTL means entries
// never expire; a positive TTL expires entries lazily on the next Get.
//
// There is deliberately no single-flight de-duplication: two concurrent
// misses for the same key both compute and both store. Entries for a given
// key are idempotent upstream responses, so the later write is benign.
type Cache[V any] struct {
	mu    sync.Mutex
	ttl   time.Duration
	items map[string]entry[V]
	order []string // keys in insertion order, for Trim

	hits   int64
	misses int64

	// now is swapped by tests to control expiry.
	now func() time.Time
}

type entry[V any] struct {
	value    V
	storedAt time.Time
}

// New creates a cache with the given TTL. ttl <= 0 disables expiry.
func New[V any](ttl time.Duration) *Cache[V] {
	return &Cache[V]{
		ttl:   ttl,
		items: make(map[string]entry[V]),
		now:   time.Now,
	}
}

// Get returns the cached value for key. An entry past its TTL is evicted
// and reported as a miss.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	if c.ttl > 0 && c.now().Sub(e.storedAt) >= c.ttl {
		c.deleteLocked(key)
		c.misses++
		var zero V
		return zero, false
	}
	c.hits++
	return e.value, true
}

// Put stores value under key, overwriting any existing entry. An
// overwritten key keeps its original position in insertion order.
func (c *Cache[V]) Put(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.items[key]; !exists {
		c.order = append(c.order, key)
	}
	c.items[key] = entry[V]{value: value, storedAt: c.now()}
}

// Len returns the number of live entries. Expired entries that have not
// been touched since expiry still count; eviction is lazy.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Trim evicts oldest-inserted entries until at most maxSize remain.
// It is never invoked automatically; callers bound growth explicitly.
func (c *Cache[V]) Trim(maxSize int) {
	if maxSize < 0 {
		maxSize = 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	for len(c.items) > maxSize && len(c.order) > 0 {
		oldest := c.order[0]
		c.deleteLocked(oldest)
	}
}

// Stats reports cumulative hit and miss counts.
func (c *Cache[V]) Stats() (hits, misses int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

func (c *Cache[V]) deleteLocked(key string) {
	delete(c.items, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}
