package cache

import (
	"sync"
	"time"

	"StockDashboard/internal/model"
)

// Unbounded retains every entry for the process lifetime. Entries are never
// refreshed, so long-running processes keep serving the first fetch of a key.
type Unbounded struct {
	mu      sync.RWMutex
	entries map[string]model.Table
}

func NewUnbounded() *Unbounded {
	return &Unbounded{entries: make(map[string]model.Table)}
}

func (u *Unbounded) Get(key string) (model.Table, bool) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	t, ok := u.entries[key]
	return t, ok
}

func (u *Unbounded) Add(key string, t model.Table) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.entries[key] = t
}

func (u *Unbounded) Sweep(time.Time) int { return 0 }

func (u *Unbounded) Len() int {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return len(u.entries)
}

func (u *Unbounded) Purge() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.entries = make(map[string]model.Table)
}

func (u *Unbounded) Policy() string { return PolicyUnbounded }
