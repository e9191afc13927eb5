// Package cache provides a TTL response cache keyed by a fingerprint of the
// operation and its arguments. Entries expire individually and a janitor
// goroutine evicts them; callers must not use it for user-scoped responses.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"
)

const defaultJanitorInterval = time.Minute

type entry struct {
	value     any
	expiresAt time.Time
}

// Cache is a concurrency-safe in-memory TTL cache.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
	stop    chan struct{}
	stopped sync.Once
}

// New creates a cache and starts its eviction janitor.
func New() *Cache {
	c := &Cache{
		entries: make(map[string]entry),
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	go c.janitor(defaultJanitorInterval)
	return c
}

// Key builds a cache key from an operation name and its arguments. Hashing
// keeps keys bounded regardless of argument size.
func Key(operation string, args ...string) string {
	sum := sha256.Sum256([]byte(operation + "\x00" + strings.Join(args, "\x00")))
	return operation + ":" + hex.EncodeToString(sum[:])
}

// Get returns the cached value for key, if present and unexpired.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || c.now().After(e.expiresAt) {
		return nil, false
	}
	return e.value, true
}

// Set stores value under key with the given TTL.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = entry{value: value, expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()
}

// Delete removes the entry stored under key, if any. Mutation paths call it
// so a cached response never outlives the data it was derived from.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Len reports the number of stored entries, expired or not.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Close stops the janitor goroutine.
func (c *Cache) Close() {
	c.stopped.Do(func() { close(c.stop) })
}

func (c *Cache) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.evictExpired()
		case <-c.stop:
			return
		}
	}
}

func (c *Cache) evictExpired() {
	now := c.now()
	c.mu.Lock()
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
		}
	}
	c.mu.Unlock()
}
