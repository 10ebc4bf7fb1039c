package weather

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/akozhamseitov/weather-api/internal/weather/types"
)

// MemoryCache implements Cache with a mutex-guarded map plus an LRU list.
// Entries expire after a fixed TTL and the least recently used entry is
// evicted once capacity is exceeded, so memory stays bounded.
type MemoryCache struct {
	mu       sync.Mutex
	entries  map[string]*list.Element
	order    *list.List // front = most recently used
	capacity int
	ttl      time.Duration
	now      func() time.Time
}

type memoryEntry struct {
	city      string
	value     types.Weather
	expiresAt time.Time
}

// NewMemoryCache creates a bounded in-process cache. Capacity must be
// positive.
func NewMemoryCache(capacity int, ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		entries:  make(map[string]*list.Element, capacity),
		order:    list.New(),
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get returns the cached record for city if present and not expired.
// Expired entries are removed on access.
func (c *MemoryCache) Get(_ context.Context, city string) (types.Weather, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[city]
	if !ok {
		return types.Weather{}, false
	}
	entry := el.Value.(*memoryEntry)
	if c.now().After(entry.expiresAt) {
		c.removeLocked(el)
		return types.Weather{}, false
	}
	c.order.MoveToFront(el)
	return entry.value, true
}

// Set stores the record for city, overwriting any stale entry and resetting
// its TTL. The oldest entry is evicted when the cache is full.
func (c *MemoryCache) Set(_ context.Context, city string, w types.Weather) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.now().Add(c.ttl)
	if el, ok := c.entries[city]; ok {
		entry := el.Value.(*memoryEntry)
		entry.value = w
		entry.expiresAt = expiresAt
		c.order.MoveToFront(el)
		return
	}

	el := c.order.PushFront(&memoryEntry{city: city, value: w, expiresAt: expiresAt})
	c.entries[city] = el

	if c.order.Len() > c.capacity {
		c.removeLocked(c.order.Back())
	}
}

// Len reports the current number of entries, expired or not.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func (c *MemoryCache) removeLocked(el *list.Element) {
	if el == nil {
		return
	}
	entry := el.Value.(*memoryEntry)
	delete(c.entries, entry.city)
	c.order.Remove(el)
}
