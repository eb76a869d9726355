package loader

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"StockDashboard/internal/cache"
	"StockDashboard/internal/collector"
	"StockDashboard/internal/model"
)

var aapl = model.Query{Symbol: "AAPL", Period: model.Period1d, Interval: model.Interval1m}

func TestLoad_MemoizesIdenticalQueries(t *testing.T) {
	f := &collector.MockFetcher{Price: 150, Rows: 200}
	l := New(f, cache.NewUnbounded(), time.Second)

	first := l.Load(context.Background(), aapl)
	second := l.Load(context.Background(), aapl)

	if first.Status != StatusLoaded || second.Status != StatusLoaded {
		t.Fatalf("unexpected statuses %v / %v", first.Status, second.Status)
	}
	if f.Calls() != 1 {
		t.Fatalf("provider called %d times, want 1", f.Calls())
	}
	if first.Cached || !second.Cached {
		t.Errorf("cached flags = %v/%v, want false/true", first.Cached, second.Cached)
	}
	if !reflect.DeepEqual(first.Table, second.Table) {
		t.Error("memoized table differs from the first fetch")
	}
}

func TestLoad_DistinctKeysFetchSeparately(t *testing.T) {
	f := &collector.MockFetcher{Price: 150, Rows: 5}
	l := New(f, cache.NewUnbounded(), time.Second)

	l.Load(context.Background(), aapl)
	l.Load(context.Background(), model.Query{Symbol: "aapl", Period: model.Period1d, Interval: model.Interval1m})
	l.Load(context.Background(), model.Query{Symbol: "AAPL", Period: model.Period5d, Interval: model.Interval1m})

	if f.Calls() != 3 {
		t.Fatalf("provider called %d times, want 3", f.Calls())
	}
}

func TestLoad_EmptyTableIsMemoized(t *testing.T) {
	empty := model.Table{}
	f := &collector.MockFetcher{Table: &empty}
	l := New(f, cache.NewUnbounded(), time.Second)

	q := model.Query{Symbol: "BADTICKER", Period: model.Period1d, Interval: model.Interval1m}
	if r := l.Load(context.Background(), q); r.Status != StatusEmpty || r.Err != nil {
		t.Fatalf("expected empty result, got %v (%v)", r.Status, r.Err)
	}
	if r := l.Load(context.Background(), q); r.Status != StatusEmpty || !r.Cached {
		t.Fatalf("expected cached empty result, got %v cached=%v", r.Status, r.Cached)
	}
	if f.Calls() != 1 {
		t.Errorf("provider called %d times, want 1", f.Calls())
	}
}

func TestLoad_FailureIsNotMemoized(t *testing.T) {
	f := &collector.MockFetcher{Err: errors.New("dial tcp: connection refused")}
	l := New(f, cache.NewUnbounded(), time.Second)

	r := l.Load(context.Background(), aapl)
	if r.Status != StatusFailed || r.Err == nil {
		t.Fatalf("expected failure, got %v", r.Status)
	}
	if r.Err.Timeout {
		t.Error("connection refused is not a timeout")
	}
	if !strings.Contains(r.Err.Error(), "connection refused") {
		t.Errorf("error should carry the cause, got %q", r.Err.Error())
	}

	l.Load(context.Background(), aapl)
	if f.Calls() != 2 {
		t.Errorf("provider called %d times, want 2", f.Calls())
	}
	if l.Store().Len() != 0 {
		t.Errorf("failure must not be cached, store has %d entries", l.Store().Len())
	}
}

func TestLoad_TimeoutIsDistinct(t *testing.T) {
	f := &collector.MockFetcher{Price: 100, Rows: 3, Delay: time.Second}
	l := New(f, cache.NewUnbounded(), 20*time.Millisecond)

	r := l.Load(context.Background(), aapl)
	if r.Status != StatusFailed {
		t.Fatalf("expected failure, got %v", r.Status)
	}
	if !r.Err.Timeout {
		t.Fatalf("expected timeout flag, got %v", r.Err)
	}
	if !errors.Is(r.Err, context.DeadlineExceeded) {
		t.Error("timeout should unwrap to context.DeadlineExceeded")
	}
	if !strings.HasPrefix(r.Err.Error(), "request timed out after 20ms") {
		t.Errorf("unexpected message %q", r.Err.Error())
	}
}

func TestLoad_CallerDeadlineDoesNotReportFetchLimit(t *testing.T) {
	f := &collector.MockFetcher{Price: 100, Rows: 3, Delay: time.Second}
	l := New(f, cache.NewUnbounded(), 10*time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	r := l.Load(ctx, aapl)
	if r.Status != StatusFailed {
		t.Fatalf("expected failure, got %v", r.Status)
	}
	if !r.Err.Timeout {
		t.Fatalf("expected timeout flag, got %v", r.Err)
	}
	if msg := r.Err.Error(); strings.Contains(msg, "10s") || !strings.HasPrefix(msg, "request timed out: ") {
		t.Errorf("unexpected message %q", msg)
	}
}

func TestLoad_ConcurrentIdenticalQueriesShareOneFetch(t *testing.T) {
	f := &collector.MockFetcher{Price: 100, Rows: 30, Delay: 50 * time.Millisecond}
	l := New(f, cache.NewUnbounded(), time.Second)

	const n = 16
	var wg sync.WaitGroup
	results := make([]Result, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = l.Load(context.Background(), aapl)
		}(i)
	}
	wg.Wait()

	if f.Calls() != 1 {
		t.Fatalf("provider called %d times, want 1", f.Calls())
	}
	for i, r := range results {
		if r.Status != StatusLoaded || r.Table.Len() != 30 {
			t.Errorf("result %d: status %v, rows %d", i, r.Status, r.Table.Len())
		}
	}
}

func TestLoad_CallerCancellationDoesNotPoisonSharedFetch(t *testing.T) {
	f := &collector.MockFetcher{Price: 100, Rows: 10, Delay: 50 * time.Millisecond}
	l := New(f, cache.NewUnbounded(), time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if r := l.Load(ctx, aapl); r.Status != StatusFailed {
		t.Fatalf("cancelled caller should see a failure, got %v", r.Status)
	}

	r := l.Load(context.Background(), aapl)
	if r.Status != StatusLoaded {
		t.Fatalf("second caller should get data, got %v (%v)", r.Status, r.Err)
	}
	if f.Calls() != 1 {
		t.Errorf("provider called %d times, want 1", f.Calls())
	}
}

func TestLoad_LRUPolicyRefetchesEvicted(t *testing.T) {
	f := &collector.MockFetcher{Price: 100, Rows: 3}
	store, err := cache.NewLRU(1)
	if err != nil {
		t.Fatalf("NewLRU: %v", err)
	}
	l := New(f, store, time.Second)

	other := model.Query{Symbol: "MSFT", Period: model.Period1d, Interval: model.Interval1m}
	l.Load(context.Background(), aapl)
	l.Load(context.Background(), other)
	l.Load(context.Background(), aapl)

	if f.Calls() != 3 {
		t.Errorf("provider called %d times, want 3", f.Calls())
	}
}

func TestStatus_String(t *testing.T) {
	if StatusLoaded.String() != "LOADED" || StatusEmpty.String() != "EMPTY" || StatusFailed.String() != "FAILED" {
		t.Error("unexpected status names")
	}
}
