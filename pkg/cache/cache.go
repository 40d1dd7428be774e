// Package cache provides a small keyed TTL cache. It fronts lookups whose
// source changes rarely, such as the default category set.
package cache

import (
	"sync"
	"time"
)

type entry[T any] struct {
	data      T
	expiresAt time.Time
}

// Cache is a thread-safe map with per-entry expiry. Entries are dropped
// lazily on read and via CleanExpired; there is no size bound, callers are
// expected to use a small fixed key space.
type Cache[T any] struct {
	mu    sync.Mutex
	ttl   time.Duration
	items map[string]entry[T]
}

// New creates a cache whose entries live for ttl after each Set.
func New[T any](ttl time.Duration) *Cache[T] {
	return &Cache[T]{
		ttl:   ttl,
		items: make(map[string]entry[T]),
	}
}

// Get returns the cached value for key if present and unexpired.
func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	it, ok := c.items[key]
	if !ok {
		return zero, false
	}
	if time.Now().After(it.expiresAt) {
		delete(c.items, key)
		return zero, false
	}
	return it.data, true
}

// Set stores data under key, resetting its TTL.
func (c *Cache[T]) Set(key string, data T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = entry[T]{data: data, expiresAt: time.Now().Add(c.ttl)}
}

// Delete removes key, if present.
func (c *Cache[T]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// CleanExpired removes all expired entries and returns how many were dropped.
func (c *Cache[T]) CleanExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	n := 0
	for k, it := range c.items {
		if now.After(it.expiresAt) {
			delete(c.items, k)
			n++
		}
	}
	return n
}
