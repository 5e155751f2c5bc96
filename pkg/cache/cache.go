package cache

import (
	"sync"
	"time"
)

// Entry holds a cached value together with its insertion time.
type Entry struct {
	Value    interface{}
	StoredAt time.Time
}

// Cache is a TTL key/value store with lazy eviction. Expired entries are
// removed on read, there is no background sweep and no capacity bound.
// Safe for concurrent use; the read/evict pair is atomic per call.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]Entry

	// Overridable for tests
	now func() time.Time
}

// New creates a cache whose entries expire once their age reaches ttl.
func New(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]Entry),
		now:     time.Now,
	}
}

// Set stores value under key with the current timestamp, overwriting any
// prior entry unconditionally.
func (c *Cache) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = Entry{
		Value:    value,
		StoredAt: c.now(),
	}
}

// Get returns the stored value if present and younger than the TTL.
// A stale entry is deleted and reported as absent.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}

	if c.now().Sub(entry.StoredAt) >= c.ttl {
		delete(c.entries, key)
		return nil, false
	}

	return entry.Value, true
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]Entry)
}

// Len reports the number of entries currently held, including entries
// that have expired but not yet been read.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}
