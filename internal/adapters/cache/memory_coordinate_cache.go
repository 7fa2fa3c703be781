package cache

import (
	"context"
	"order-ranking-service/internal/domain"
	"sync"
	"time"
)

type memoryEntry struct {
	coords   domain.Coordinates
	storedAt time.Time
}

// MemoryCoordinateCache is an in-process address -> coordinates cache.
//
// Entries older than the TTL are treated as absent on read (lazy expiry) and
// physically removed by Sweep. The cache is safe for concurrent use; reads
// take a shared lock so concurrent hits do not serialize.
type MemoryCoordinateCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryCoordinateCache creates a cache with the given TTL.
// now may be nil, in which case time.Now is used.
func NewMemoryCoordinateCache(ttl time.Duration, now func() time.Time) *MemoryCoordinateCache {
	if now == nil {
		now = time.Now
	}
	return &MemoryCoordinateCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     now,
	}
}

func (c *MemoryCoordinateCache) Get(_ context.Context, address string) (domain.Coordinates, bool, error) {
	c.mu.RLock()
	e, ok := c.entries[address]
	c.mu.RUnlock()

	if !ok || c.expired(e) {
		return domain.Coordinates{}, false, nil
	}
	return e.coords, true, nil
}

func (c *MemoryCoordinateCache) Set(_ context.Context, address string, coords domain.Coordinates) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[address] = memoryEntry{coords: coords, storedAt: c.now()}
	return nil
}

// Sweep removes expired entries and returns how many were dropped.
func (c *MemoryCoordinateCache) Sweep(_ context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for addr, e := range c.entries {
		if c.expired(e) {
			delete(c.entries, addr)
			removed++
		}
	}
	return removed, nil
}

// Len reports the number of stored entries, expired ones included.
func (c *MemoryCoordinateCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *MemoryCoordinateCache) expired(e memoryEntry) bool {
	return c.now().Sub(e.storedAt) > c.ttl
}
