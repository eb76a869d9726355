// Package loader memoizes market data lookups in front of a collector.Fetcher.
package loader

import (
	"context"
	"log"
	"time"

	"StockDashboard/internal/cache"
	"StockDashboard/internal/collector"
	"StockDashboard/internal/model"

	"golang.org/x/sync/singleflight"
)

// DefaultTimeout bounds a single provider call when none is configured.
const DefaultTimeout = 10 * time.Second

// Loader fetches tables through a cache. Concurrent loads of the same query
// share one in-flight provider call.
type Loader struct {
	fetcher collector.Fetcher
	store   cache.Store
	timeout time.Duration
	group   singleflight.Group
}

// New creates a Loader. A non-positive timeout selects DefaultTimeout.
func New(fetcher collector.Fetcher, store cache.Store, timeout time.Duration) *Loader {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Loader{fetcher: fetcher, store: store, timeout: timeout}
}

// Store exposes the underlying cache for sweeping and stats.
func (l *Loader) Store() cache.Store { return l.store }

// FetcherName reports the configured provider.
func (l *Loader) FetcherName() string { return l.fetcher.Name() }

// Load returns the table for q. Empty tables are memoized like any other
// result; failures are not, so the next call asks the provider again.
func (l *Loader) Load(ctx context.Context, q model.Query) Result {
	key := q.Key()
	if t, ok := l.store.Get(key); ok {
		return resultFor(q, t, true)
	}

	ch := l.group.DoChan(key, func() (interface{}, error) {
		if t, ok := l.store.Get(key); ok {
			return t, nil
		}
		// The shared call must not die with whichever caller started it.
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), l.timeout)
		defer cancel()

		start := time.Now()
		t, err := l.fetcher.Fetch(fetchCtx, q)
		if err != nil {
			log.Printf("[WARN] fetch %s via %s failed after %v: %v", key, l.fetcher.Name(), time.Since(start), err)
			return nil, err
		}
		l.store.Add(key, t)
		log.Printf("[INFO] fetched %s via %s: %d rows in %v", key, l.fetcher.Name(), t.Len(), time.Since(start))
		return t, nil
	})

	select {
	case <-ctx.Done():
		// The caller's own deadline or cancellation, not the fetch limit.
		return Result{Status: StatusFailed, Query: q, Err: newFetchError(q, ctx.Err(), 0)}
	case res := <-ch:
		if res.Err != nil {
			return Result{Status: StatusFailed, Query: q, Err: newFetchError(q, res.Err, l.timeout)}
		}
		return resultFor(q, res.Val.(model.Table), false)
	}
}

func resultFor(q model.Query, t model.Table, cached bool) Result {
	if t.Empty() {
		return Result{Status: StatusEmpty, Query: q, Table: t, Cached: cached}
	}
	return Result{Status: StatusLoaded, Query: q, Table: t, Cached: cached}
}
