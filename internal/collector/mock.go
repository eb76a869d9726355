package collector

import (
	"context"
	"sync/atomic"
	"time"

	"StockDashboard/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price float64
	Rows  int
	Table *model.Table
	Err   error
	Delay time.Duration

	calls atomic.Int64
}

func (m *MockFetcher) Name() string { return "mock" }

// Calls reports how many times Fetch has been invoked.
func (m *MockFetcher) Calls() int64 { return m.calls.Load() }

func (m *MockFetcher) Fetch(ctx context.Context, q model.Query) (model.Table, error) {
	m.calls.Add(1)
	if m.Delay > 0 {
		select {
		case <-ctx.Done():
			return model.Table{}, ctx.Err()
		case <-time.After(m.Delay):
		}
	}
	if m.Err != nil {
		return model.Table{}, m.Err
	}
	if m.Table != nil {
		return *m.Table, nil
	}
	return GenerateMockTable(m.Price, m.Rows, q.Interval), nil
}

// GenerateMockTable builds count ascending bars spaced by interval around basePrice.
func GenerateMockTable(basePrice float64, count int, interval model.Interval) model.Table {
	step := intervalDuration(interval)
	end := time.Now().Truncate(step)
	rows := make([]model.Observation, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		rows[i] = model.Observation{
			Time:   end.Add(-time.Duration(count-1-i) * step),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return model.NewTable(rows)
}

func intervalDuration(i model.Interval) time.Duration {
	switch i {
	case model.Interval1m:
		return time.Minute
	case model.Interval5m:
		return 5 * time.Minute
	case model.Interval15m:
		return 15 * time.Minute
	case model.Interval30m:
		return 30 * time.Minute
	case model.Interval1h:
		return time.Hour
	default:
		return 24 * time.Hour
	}
}
