package cache

import (
	"sync"
	"time"
)

type item struct {
	value      any
	expiration int64
}

// Cache is a small TTL cache used to memoize storefront snapshots per tenant.
// Entries are invalidated explicitly on admin writes, so staleness is bounded
// by the TTL only for out-of-band DB edits. Call Stop when the cache is no
// longer needed; it releases the background cleanup goroutine.
type Cache struct {
	items map[string]item
	mu    sync.RWMutex
	ttl   time.Duration
	done  chan struct{}
}

func New(defaultTTL time.Duration) *Cache {
	c := &Cache{items: make(map[string]item), ttl: defaultTTL, done: make(chan struct{})}
	go c.cleanupExpired()
	return c
}

func (c *Cache) Set(key string, value any, ttl ...time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	duration := c.ttl
	if len(ttl) > 0 {
		duration = ttl[0]
	}
	c.items[key] = item{value: value, expiration: time.Now().Add(duration).UnixNano()}
}

func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	it, found := c.items[key]
	if !found || time.Now().UnixNano() > it.expiration {
		return nil, false
	}
	return it.value, true
}

func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// Stop ends the cleanup goroutine. Call at most once.
func (c *Cache) Stop() { close(c.done) }

func (c *Cache) cleanupExpired() {
	t := time.NewTicker(5 * time.Minute)
	defer t.Stop()
	for {
		select {
		case <-c.done:
			return
		case <-t.C:
			now := time.Now().UnixNano()
			c.mu.Lock()
			for k, it := range c.items {
				if now > it.expiration {
					delete(c.items, k)
				}
			}
			c.mu.Unlock()
		}
	}
}
