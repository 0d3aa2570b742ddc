// Ludolog - Board Game Session Tracking and Adaptive Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludolog

// Package cache provides the read-side entity cache for the scoring path.
//
// Scoring passes are read-only and may run concurrently; the cache keeps
// hot entities (buckets, the recent-session singleton, frequent players)
// out of the storage layer. Values are cached as their serialized bytes so
// concurrent readers can never share a mutable entity.
package cache

import (
	"sync"
	"time"
)

// entry is a node of the doubly-linked LRU list.
type entry struct {
	key       string
	value     []byte
	prev      *entry
	next      *entry
	expiresAt time.Time
}

// EntityCache is a thread-safe LRU cache with TTL support. It provides
// O(1) Get, Add, Remove, and eviction via a doubly-linked list plus a
// hashmap.
type EntityCache struct {
	mu sync.Mutex

	capacity int
	ttl      time.Duration

	items map[string]*entry

	// head.next is the most recently used, tail.prev the least.
	head *entry
	tail *entry

	hits   int64
	misses int64
}

// NewEntityCache creates a cache with the given capacity and TTL.
// Non-positive values fall back to defaults.
func NewEntityCache(capacity int, ttl time.Duration) *EntityCache {
	if capacity <= 0 {
		capacity = 4096
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	c := &EntityCache{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[string]*entry, capacity),
		head:     &entry{},
		tail:     &entry{},
	}
	c.head.next = c.tail
	c.tail.prev = c.head
	return c
}

// Get returns the cached bytes for key, or false when absent or expired.
// The returned slice is a copy; callers may unmarshal in place.
func (c *EntityCache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok {
		c.misses++
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		c.remove(e)
		c.misses++
		return nil, false
	}

	c.moveToFront(e)
	c.hits++

	out := make([]byte, len(e.value))
	copy(out, e.value)
	return out, true
}

// Add stores value under key, evicting the least recently used entry when
// at capacity. The value is copied.
func (c *EntityCache) Add(key string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)

	if e, ok := c.items[key]; ok {
		e.value = stored
		e.expiresAt = time.Now().Add(c.ttl)
		c.moveToFront(e)
		return
	}

	if len(c.items) >= c.capacity {
		c.remove(c.tail.prev)
	}

	e := &entry{key: key, value: stored, expiresAt: time.Now().Add(c.ttl)}
	c.items[key] = e
	c.insertFront(e)
}

// Remove drops a key. Used to invalidate entities a training transaction
// rewrote.
func (c *EntityCache) Remove(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.items[key]; ok {
		c.remove(e)
	}
}

// Purge drops everything. Called after a model reset.
func (c *EntityCache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*entry, c.capacity)
	c.head.next = c.tail
	c.tail.prev = c.head
}

// Len returns the number of cached entries.
func (c *EntityCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Stats returns hit and miss counts.
func (c *EntityCache) Stats() (hits, misses int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// remove unlinks an entry. Caller holds the lock.
func (c *EntityCache) remove(e *entry) {
	e.prev.next = e.next
	e.next.prev = e.prev
	delete(c.items, e.key)
}

// insertFront links an entry as most recently used. Caller holds the lock.
func (c *EntityCache) insertFront(e *entry) {
	e.next = c.head.next
	e.prev = c.head
	c.head.next.prev = e
	c.head.next = e
}

// moveToFront marks an entry most recently used. Caller holds the lock.
func (c *EntityCache) moveToFront(e *entry) {
	e.prev.next = e.next
	e.next.prev = e.prev
	c.insertFront(e)
}
