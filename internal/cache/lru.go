package cache

import (
	"fmt"
	"time"

	"StockDashboard/internal/model"

	lru "github.com/hashicorp/golang-lru/v2"
)

// LRU keeps at most MaxEntries tables, evicting the least recently used.
type LRU struct {
	entries *lru.Cache[string, model.Table]
}

func NewLRU(maxEntries int) (*LRU, error) {
	if maxEntries <= 0 {
		return nil, fmt.Errorf("lru policy needs max_entries > 0, got %d", maxEntries)
	}
	c, err := lru.New[string, model.Table](maxEntries)
	if err != nil {
		return nil, fmt.Errorf("create lru: %w", err)
	}
	return &LRU{entries: c}, nil
}

func (l *LRU) Get(key string) (model.Table, bool) { return l.entries.Get(key) }

func (l *LRU) Add(key string, t model.Table) { l.entries.Add(key, t) }

func (l *LRU) Sweep(time.Time) int { return 0 }

func (l *LRU) Len() int { return l.entries.Len() }

func (l *LRU) Purge() { l.entries.Purge() }

func (l *LRU) Policy() string { return PolicyLRU }
