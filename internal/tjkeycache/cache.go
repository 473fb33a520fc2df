// Package tjkeycache is the decoder's bounded intern table for short
// object keys (spec §4.4). Grounded on arloliu-mebo's internal/hash
// package, which hashes byte keys with xxhash64 to turn them into cheap
// lookup IDs before touching its own time-series caches; turbojson reuses
// the same hash for the same reason — a fast, well-distributed key
// before a map probe.
package tjkeycache

import (
	"sync"

	"github.com/cespare/xxhash/v2"
)

const (
	// MaxKeyLen bounds which keys are eligible for interning; longer
	// keys bypass the cache (spec §4.4).
	MaxKeyLen = 64

	// capacity bounds the table's entry count. Eviction is
	// size-triggered, not LRU-precise (spec §4.4 only requires bounded
	// growth, not recency ordering).
	capacity = 4096
)

type entry struct {
	hash uint64
	len  int
	str  string
}

// Cache is a bounded, concurrency-safe intern table.
type Cache struct {
	mu      sync.RWMutex
	entries map[uint64]entry
}

// New returns an empty Cache.
func New() *Cache {
	return &Cache{entries: make(map[uint64]entry, capacity)}
}

// shared is the process-wide default cache used by the decoder unless a
// per-call cache is supplied (spec §5 permits either discipline).
var shared = New()

// Shared returns the process-wide default cache.
func Shared() *Cache { return shared }

// Intern returns an interned string for key, copying key into a fresh
// string only on a cache miss. Keys longer than MaxKeyLen bypass the
// cache entirely, per spec §4.4.
func (c *Cache) Intern(key []byte) string {
	if len(key) == 0 {
		return ""
	}
	if len(key) > MaxKeyLen {
		return string(key)
	}

	h := xxhash.Sum64(key)

	c.mu.RLock()
	if e, ok := c.entries[h]; ok && e.len == len(key) {
		s := e.str
		c.mu.RUnlock()
		return s
	}
	c.mu.RUnlock()

	s := string(key)
	c.mu.Lock()
	if len(c.entries) >= capacity {
		// Size-triggered eviction: drop the whole table rather than
		// track recency, which keeps the hot path lock-cheap and still
		// satisfies the bounded-growth property under an adversarial
		// stream of thousands of distinct keys (spec §8).
		c.entries = make(map[uint64]entry, capacity)
	}
	c.entries[h] = entry{hash: h, len: len(key), str: s}
	c.mu.Unlock()
	return s
}

// Len reports the current entry count. Test-only.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
