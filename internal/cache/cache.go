package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"
)

// Entry is a cached response payload with its content validator. Entries
// are never mutated in place; a recomputation replaces the entry wholesale.
type Entry struct {
	Key       string
	Payload   []byte
	Validator string // hex sha256 of the payload
	CreatedAt time.Time
	ExpiresAt time.Time
}

// MaxAge returns the whole seconds remaining until expiry, for use as a
// Cache-Control max-age hint. Never negative.
func (e *Entry) MaxAge(now time.Time) int {
	secs := int(e.ExpiresAt.Sub(now).Seconds())
	if secs < 0 {
		return 0
	}
	return secs
}

// Cache is a thread-safe in-memory response cache with per-entry TTL.
// Store reloads do not clear it; the store generation baked into every
// key makes stale entries unreachable until their TTL evicts them.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*Entry
}

// New creates an empty cache and starts a background sweep that drops
// expired entries so abandoned keys do not accumulate.
func New() *Cache {
	c := &Cache{entries: make(map[string]*Entry)}
	go c.sweep()
	return c
}

func (c *Cache) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		c.mu.Lock()
		for key, e := range c.entries {
			if now.After(e.ExpiresAt) {
				delete(c.entries, key)
			}
		}
		c.mu.Unlock()
	}
}

// GetOrCompute returns the cached entry for key if it is still fresh.
// Otherwise it invokes compute, stores the resulting payload with a newly
// computed validator, and returns the fresh entry. The second return value
// reports whether this was a hit.
func (c *Cache) GetOrCompute(key string, ttl time.Duration, compute func() ([]byte, error)) (*Entry, bool, error) {
	now := time.Now()

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if ok && now.Before(entry.ExpiresAt) {
		return entry, true, nil
	}

	payload, err := compute()
	if err != nil {
		return nil, false, err
	}

	sum := sha256.Sum256(payload)
	fresh := &Entry{
		Key:       key,
		Payload:   payload,
		Validator: hex.EncodeToString(sum[:]),
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	c.mu.Lock()
	c.entries[key] = fresh
	c.mu.Unlock()
	return fresh, false, nil
}

// Len returns the number of entries currently held, expired or not.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
