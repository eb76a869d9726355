// Package cache holds memoized observation tables keyed by query.
package cache

import (
	"fmt"
	"time"

	"StockDashboard/internal/model"
)

// Store is an eviction policy over memoized tables. Implementations must be
// safe for concurrent use.
type Store interface {
	Get(key string) (model.Table, bool)
	Add(key string, t model.Table)
	// Sweep drops entries that expired before now and reports how many were removed.
	Sweep(now time.Time) int
	Len() int
	Purge()
	Policy() string
}

const (
	PolicyUnbounded = "unbounded"
	PolicyLRU       = "lru"
	PolicyTTL       = "ttl"
)

// Options selects and sizes an eviction policy.
type Options struct {
	Policy     string
	MaxEntries int
	TTL        time.Duration
}

// New builds the Store for opts.Policy.
func New(opts Options) (Store, error) {
	switch opts.Policy {
	case "", PolicyUnbounded:
		return NewUnbounded(), nil
	case PolicyLRU:
		return NewLRU(opts.MaxEntries)
	case PolicyTTL:
		if opts.TTL <= 0 {
			return nil, fmt.Errorf("ttl policy needs a positive ttl, got %v", opts.TTL)
		}
		return NewTTL(opts.TTL, time.Now), nil
	default:
		return nil, fmt.Errorf("unknown cache policy %q", opts.Policy)
	}
}
