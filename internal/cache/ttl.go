package cache

import (
	"sync"
	"time"

	"StockDashboard/internal/model"
)

type ttlEntry struct {
	table    model.Table
	storedAt time.Time
}

// TTL expires entries ttl after they were stored. Expired entries are
// invisible to Get immediately and are reclaimed by Sweep.
type TTL struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]ttlEntry
}

func NewTTL(ttl time.Duration, now func() time.Time) *TTL {
	return &TTL{ttl: ttl, now: now, entries: make(map[string]ttlEntry)}
}

func (c *TTL) Get(key string) (model.Table, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return model.Table{}, false
	}
	if c.expired(e, c.now()) {
		delete(c.entries, key)
		return model.Table{}, false
	}
	return e.table, true
}

func (c *TTL) Add(key string, t model.Table) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = ttlEntry{table: t, storedAt: c.now()}
}

func (c *TTL) Sweep(now time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	for k, e := range c.entries {
		if c.expired(e, now) {
			delete(c.entries, k)
			removed++
		}
	}
	return removed
}

func (c *TTL) expired(e ttlEntry, now time.Time) bool {
	return now.Sub(e.storedAt) >= c.ttl
}

func (c *TTL) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *TTL) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]ttlEntry)
}

func (c *TTL) Policy() string { return PolicyTTL }
