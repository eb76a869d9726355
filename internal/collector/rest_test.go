package collector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"StockDashboard/internal/model"
)

func TestRESTFetcher_Fetch(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		if r.URL.Query().Get("symbol") == "NOPE" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"timestamp":1710250320,"open":2,"high":3,"low":1,"close":2.5,"volume":20},
			{"timestamp":1710250260,"open":1,"high":2,"low":0.5,"close":1.5,"volume":10},
			{"timestamp":1710250320,"open":2,"high":3,"low":1,"close":2.75,"volume":25}
		]`))
	}))
	defer srv.Close()

	f := NewRESTFetcher(srv.URL, "secret", "", 5*time.Second)
	tbl, err := f.Fetch(context.Background(), model.Query{Symbol: "AAPL", Period: model.Period1d, Interval: model.Interval1m})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if auth != "Bearer secret" {
		t.Errorf("expected bearer token, got %q", auth)
	}
	if tbl.Len() != 2 {
		t.Fatalf("expected duplicate timestamp collapsed to 2 rows, got %d", tbl.Len())
	}
	if last, _ := tbl.Last(); last.Close != 2.75 {
		t.Errorf("expected the last duplicate to win, got close %v", last.Close)
	}

	empty, err := f.Fetch(context.Background(), model.Query{Symbol: "NOPE", Period: model.Period1d, Interval: model.Interval1m})
	if err != nil || !empty.Empty() {
		t.Fatalf("expected empty table for 404, got %d rows, err %v", empty.Len(), err)
	}
}
