// Package cache is a small in-process TTL cache used for the public sizes
// endpoint (60s contract). Stateless handlers plus a single process make a
// shared map sufficient; there is no external cache in this deployment.
package cache

import (
	"sync"
	"time"
)

type item struct {
	value   any
	expires int64
}

type Cache struct {
	mu    sync.RWMutex
	items map[string]item
	ttl   time.Duration
}

func New(defaultTTL time.Duration) *Cache {
	c := &Cache{items: make(map[string]item), ttl: defaultTTL}
	go c.sweep()
	return c
}

func (c *Cache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = item{value: value, expires: time.Now().Add(c.ttl).UnixNano()}
}

func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	it, ok := c.items[key]
	if !ok || time.Now().UnixNano() > it.expires {
		return nil, false
	}
	return it.value, true
}

func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

func (c *Cache) sweep() {
	t := time.NewTicker(5 * time.Minute)
	defer t.Stop()
	for range t.C {
		now := time.Now().UnixNano()
		c.mu.Lock()
		for k, it := range c.items {
			if now > it.expires {
				delete(c.items, k)
			}
		}
		c.mu.Unlock()
	}
}
