package collector

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"StockDashboard/internal/model"

	"github.com/go-resty/resty/v2"
)

// RESTFetcher implements Fetcher against a generic JSON bars endpoint:
//
//	GET {base}/api/v1/bars?symbol=AAPL&period=1d&interval=1m
//
// answering with an array of bars. 404 means the symbol is unknown.
type RESTFetcher struct {
	BaseURL string
	APIKey  string
	Client  *resty.Client
}

// NewRESTFetcher creates a new fetcher with optional proxy support.
func NewRESTFetcher(baseURL, apiKey, proxyURL string, timeout time.Duration) *RESTFetcher {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	if apiKey != "" {
		client.SetAuthToken(apiKey)
	}
	if proxyURL != "" {
		client.SetProxy(proxyURL)
	}
	return &RESTFetcher{BaseURL: baseURL, APIKey: apiKey, Client: client}
}

func (f *RESTFetcher) Name() string { return "rest" }

// restBar is the expected JSON shape from the bars endpoint.
type restBar struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}

func (f *RESTFetcher) Fetch(ctx context.Context, q model.Query) (model.Table, error) {
	var bars []restBar
	resp, err := f.Client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"symbol":   q.Symbol,
			"period":   string(q.Period),
			"interval": string(q.Interval),
		}).
		SetResult(&bars).
		Get("/api/v1/bars")
	if err != nil {
		return model.Table{}, fmt.Errorf("fetch bars: %w", err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return model.Table{}, nil
	}
	if resp.IsError() {
		return model.Table{}, fmt.Errorf("fetch bars: status %d, body: %s", resp.StatusCode(), resp.String())
	}

	rows := make([]model.Observation, len(bars))
	for i, b := range bars {
		rows[i] = model.Observation{
			Time:   time.Unix(b.Timestamp, 0).UTC(),
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: toVolume(b.Volume),
		}
	}
	return normalize(rows), nil
}
