// Package cache provides an in-memory LRU cache with TTL support, used to
// memoize parsed source documents between requests.
package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// Config configures a Cache instance.
type Config struct {
	DefaultTTL      time.Duration // Default TTL for entries (default: 5 minutes)
	CleanupInterval time.Duration // Interval for expired entry cleanup (default: 1 minute)
	MaxItems        int           // Maximum number of entries (default: 1000)
	OnEviction      func(key string, value any)
}

// Cache is an in-memory key/value cache with LRU eviction and TTL expiry.
// It is safe for concurrent use.
type Cache struct {
	config Config

	mu    sync.Mutex
	items map[string]*entry
	order *list.List // doubly linked list for LRU ordering

	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

type entry struct {
	key       string
	value     any
	expiresAt time.Time
	element   *list.Element
}

// New creates a new cache and starts its background cleanup loop.
func New(config Config) *Cache {
	if config.DefaultTTL <= 0 {
		config.DefaultTTL = 5 * time.Minute
	}
	if config.CleanupInterval <= 0 {
		config.CleanupInterval = time.Minute
	}
	if config.MaxItems <= 0 {
		config.MaxItems = 1000
	}

	c := &Cache{
		config: config,
		items:  make(map[string]*entry),
		order:  list.New(),
		done:   make(chan struct{}),
	}

	c.wg.Add(1)
	go c.cleanupLoop()

	return c
}

// Get retrieves a value from the cache.
func (c *Cache) Get(_ context.Context, key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		c.removeEntry(e)
		return nil, false
	}

	c.order.MoveToFront(e.element)
	return e.value, true
}

// Set stores a value with the default TTL.
func (c *Cache) Set(ctx context.Context, key string, value any) {
	c.SetWithTTL(ctx, key, value, c.config.DefaultTTL)
}

// SetWithTTL stores a value with a custom TTL.
func (c *Cache) SetWithTTL(_ context.Context, key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.config.DefaultTTL
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.items[key]; ok {
		e.value = value
		e.expiresAt = time.Now().Add(ttl)
		c.order.MoveToFront(e.element)
		return
	}

	for len(c.items) >= c.config.MaxItems {
		c.evictOldest()
	}

	e := &entry{
		key:       key,
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
	e.element = c.order.PushFront(e)
	c.items[key] = e
}

// Delete removes a value from the cache.
func (c *Cache) Delete(_ context.Context, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.items[key]; ok {
		c.removeEntry(e)
	}
}

// Clear removes all entries from the cache.
func (c *Cache) Clear(_ context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.config.OnEviction != nil {
		for key, e := range c.items {
			c.config.OnEviction(key, e.value)
		}
	}
	c.items = make(map[string]*entry)
	c.order.Init()
}

// Size returns the number of entries in the cache.
func (c *Cache) Size() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return int64(len(c.items))
}

// Close stops the background cleanup goroutine.
func (c *Cache) Close() error {
	c.stopOnce.Do(func() {
		close(c.done)
	})
	c.wg.Wait()
	return nil
}

// cleanupLoop periodically removes expired entries.
func (c *Cache) cleanupLoop() {
	defer c.wg.Done()

	ticker := time.NewTicker(c.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.cleanupExpired()
		}
	}
}

func (c *Cache) cleanupExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for _, e := range c.items {
		if now.After(e.expiresAt) {
			c.removeEntry(e)
		}
	}
}

// evictOldest removes the least recently used entry.
// Must be called with the lock held.
func (c *Cache) evictOldest() {
	oldest := c.order.Back()
	if oldest == nil {
		return
	}
	c.removeEntry(oldest.Value.(*entry))
}

// removeEntry removes an entry from the cache.
// Must be called with the lock held.
func (c *Cache) removeEntry(e *entry) {
	delete(c.items, e.key)
	c.order.Remove(e.element)
	if c.config.OnEviction != nil {
		c.config.OnEviction(e.key, e.value)
	}
}
