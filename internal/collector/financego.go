package collector

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"StockDashboard/internal/model"

	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
)

// FinanceGoFetcher implements Fetcher with the piquette/finance-go chart client.
// The client has no context support, so calls run in a goroutine and are
// abandoned when ctx is done. Client bounds how long an abandoned call lives.
type FinanceGoFetcher struct {
	Client *http.Client
	now    func() time.Time
}

// NewFinanceGoFetcher installs an HTTP client with the given proxy and
// timeout as finance-go's package-level client. It must run before the
// first finance-go call, which caches its backends.
func NewFinanceGoFetcher(proxyURL string, timeout time.Duration) (*FinanceGoFetcher, error) {
	client := &http.Client{Timeout: timeout}
	if proxyURL != "" {
		u, err := url.Parse(proxyURL)
		if err != nil {
			return nil, fmt.Errorf("parse proxy url: %w", err)
		}
		client.Transport = &http.Transport{Proxy: http.ProxyURL(u)}
	}
	finance.SetHTTPClient(client)
	return &FinanceGoFetcher{Client: client, now: time.Now}, nil
}

func (f *FinanceGoFetcher) Name() string { return "finance-go" }

type fetchOutcome struct {
	table model.Table
	err   error
}

func (f *FinanceGoFetcher) Fetch(ctx context.Context, q model.Query) (model.Table, error) {
	end := f.now()
	start := periodStart(end, q.Period)

	done := make(chan fetchOutcome, 1)
	go func() {
		t, err := f.fetch(q, start, end)
		done <- fetchOutcome{table: t, err: err}
	}()

	select {
	case <-ctx.Done():
		return model.Table{}, fmt.Errorf("finance-go fetch: %w", ctx.Err())
	case out := <-done:
		return out.table, out.err
	}
}

func (f *FinanceGoFetcher) fetch(q model.Query, start, end time.Time) (model.Table, error) {
	params := &chart.Params{
		Symbol:   q.Symbol,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.Interval(q.Interval),
	}
	iter := chart.Get(params)

	var rows []model.Observation
	for iter.Next() {
		bar := iter.Bar()
		o, _ := bar.Open.Float64()
		h, _ := bar.High.Float64()
		l, _ := bar.Low.Float64()
		c, _ := bar.Close.Float64()
		rows = append(rows, model.Observation{
			Time:   time.Unix(int64(bar.Timestamp), 0).UTC(),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: toVolume(float64(bar.Volume)),
		})
	}
	if err := iter.Err(); err != nil {
		if isNotFound(err) {
			return model.Table{}, nil
		}
		return model.Table{}, fmt.Errorf("finance-go fetch: %w", err)
	}
	return normalize(rows), nil
}

func isNotFound(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "Not Found") || strings.Contains(msg, "No data found")
}

// periodStart converts a lookback period into the start of the fetch window.
func periodStart(end time.Time, p model.Period) time.Time {
	switch p {
	case model.Period1d:
		return end.AddDate(0, 0, -1)
	case model.Period5d:
		return end.AddDate(0, 0, -5)
	case model.Period1mo:
		return end.AddDate(0, -1, 0)
	case model.Period3mo:
		return end.AddDate(0, -3, 0)
	case model.Period6mo:
		return end.AddDate(0, -6, 0)
	case model.Period1y:
		return end.AddDate(-1, 0, 0)
	case model.Period5y:
		return end.AddDate(-5, 0, 0)
	default:
		return end.AddDate(0, 0, -1)
	}
}
