// Package dashboard wires the input collector, data loader and presenter
// into one pipeline run per trigger.
package dashboard

import (
	"context"
	"log"
	"time"

	"StockDashboard/internal/input"
	"StockDashboard/internal/loader"
	"StockDashboard/internal/model"
	"StockDashboard/internal/presenter"
	"StockDashboard/internal/recorder"
)

// Dashboard runs Input Collector -> Data Loader -> Presenter.
type Dashboard struct {
	Input    input.Collector
	Loader   *loader.Loader
	Recorder recorder.Recorder
}

// New creates a Dashboard. A nil recorder disables the run journal.
func New(in input.Collector, l *loader.Loader, rec recorder.Recorder) *Dashboard {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Dashboard{Input: in, Loader: l, Recorder: rec}
}

// Page is one rendered dashboard: the input controls and the view.
type Page struct {
	Controls []input.Control `json:"controls"`
	View     presenter.View  `json:"view"`
}

// Run collects the raw inputs and renders the page for them.
func (d *Dashboard) Run(ctx context.Context, symbol, period, interval string) Page {
	q := d.Input.Collect(symbol, period, interval)
	return Page{Controls: input.Controls(q), View: d.RunQuery(ctx, q)}
}

// Load returns the raw load result for q, journaling the run.
func (d *Dashboard) Load(ctx context.Context, q model.Query) loader.Result {
	start := time.Now()
	res := d.Loader.Load(ctx, q)
	d.record(q, res, time.Since(start))
	return res
}

// RunQuery loads q and renders it.
func (d *Dashboard) RunQuery(ctx context.Context, q model.Query) presenter.View {
	return presenter.Render(d.Load(ctx, q), q.Symbol)
}

func (d *Dashboard) record(q model.Query, res loader.Result, elapsed time.Duration) {
	evt := &recorder.RunEvent{
		Symbol:   q.Symbol,
		Period:   string(q.Period),
		Interval: string(q.Interval),
		Provider: d.Loader.FetcherName(),
		Status:   res.Status.String(),
		Rows:     res.Table.Len(),
		Cached:   res.Cached,
		Duration: elapsed,
	}
	if res.Err != nil {
		evt.Error = res.Err.Error()
		evt.Timeout = res.Err.Timeout
	}
	if err := d.Recorder.RecordRun(evt); err != nil {
		log.Printf("[ERROR] record run: %v", err)
	}
}
