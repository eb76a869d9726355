// Package presenter turns a load result into display values: a chart
// specification, headline metrics and the most recent rows.
package presenter

import (
	"errors"
	"fmt"

	"StockDashboard/internal/calculator"
	"StockDashboard/internal/loader"
	"StockDashboard/internal/model"
)

// TailRows is the number of most recent rows shown in the data table.
const TailRows = 20

// MsgNoData is shown when the provider returned no rows.
const MsgNoData = "No data found. Please check the stock symbol."

const msgInsufficientHistory = "Change needs at least two observations; only the latest values are shown."

// Direction of a metric delta.
type Direction int

const (
	Flat Direction = iota
	Up
	Down
)

// Metric is one labelled scalar with an optional delta.
type Metric struct {
	Label     string    `json:"label"`
	Value     string    `json:"value"`
	Delta     string    `json:"delta,omitempty"`
	Direction Direction `json:"direction"`
}

// DataTable is the tail slice shown under the chart, oldest row first.
type DataTable struct {
	Columns []string            `json:"columns"`
	Rows    [][]string          `json:"rows"`
	Raw     []model.Observation `json:"raw"`
}

// View is everything the UI layer needs for one pipeline run. When Error is
// set, Chart, Metrics and Table are empty.
type View struct {
	Query   model.Query           `json:"query"`
	Title   string                `json:"title"`
	Error   string                `json:"error,omitempty"`
	Notice  string                `json:"notice,omitempty"`
	Chart   *ChartSpec            `json:"chart,omitempty"`
	Metrics []Metric              `json:"metrics,omitempty"`
	Summary *model.DisplayMetrics `json:"summary,omitempty"`
	Table   *DataTable            `json:"table,omitempty"`
	Cached  bool                  `json:"cached"`
}

// Failed reports whether the view carries only an error message.
func (v View) Failed() bool { return v.Error != "" }

// Render builds the view for a load result. symbol is the value the user
// typed; it is upper-cased for display only.
func Render(r loader.Result, symbol string) View {
	q := r.Query
	q.Symbol = symbol
	v := View{
		Query:  r.Query,
		Title:  fmt.Sprintf("%s Stock Price", q.DisplaySymbol()),
		Cached: r.Cached,
	}

	switch r.Status {
	case loader.StatusEmpty:
		v.Error = MsgNoData
		return v
	case loader.StatusFailed:
		v.Error = failureMessage(r.Err)
		return v
	case loader.StatusLoaded:
		if r.Table.Empty() {
			v.Error = MsgNoData
			return v
		}
	default:
		v.Error = fmt.Sprintf("Error occurred: unexpected load status %v", r.Status)
		return v
	}

	v.Chart = closeChart(r.Table)
	v.Table = tailTable(r.Table, r.Query.Interval)

	m, err := calculator.ComputeMetrics(r.Table)
	switch {
	case errors.Is(err, calculator.ErrInsufficientHistory):
		last, _ := r.Table.Last()
		v.Notice = msgInsufficientHistory
		v.Metrics = []Metric{
			{Label: "Latest Price", Value: FormatPrice(last.Close)},
			{Label: "Volume", Value: FormatVolume(last.Volume)},
		}
	case err != nil:
		v.Notice = err.Error()
	default:
		v.Summary = &m
		v.Metrics = metricsFor(m)
	}
	return v
}

func failureMessage(err *loader.FetchError) string {
	if err == nil {
		return "Error occurred: unknown failure"
	}
	return "Error occurred: " + err.Error()
}

func metricsFor(m model.DisplayMetrics) []Metric {
	change := Metric{Label: "Change", Value: FormatPrice(m.Delta), Delta: FormatPercent(m.PercentDelta)}
	if m.PreviousClose == 0 {
		change.Delta = notAvailable
	}
	switch {
	case m.Delta > 0:
		change.Direction = Up
	case m.Delta < 0:
		change.Direction = Down
	}
	return []Metric{
		{Label: "Latest Price", Value: FormatPrice(m.LatestClose)},
		change,
		{Label: "Volume", Value: FormatVolume(m.LatestVolume)},
	}
}

const (
	layoutIntraday = "2006-01-02 15:04:05-07:00"
	layoutDaily    = "2006-01-02"
)

// IndexColumn returns the header and time layout of the row index:
// "Datetime" with offset for intraday bars, "Date" for daily bars.
func IndexColumn(interval model.Interval) (name, layout string) {
	if interval.Intraday() {
		return "Datetime", layoutIntraday
	}
	return "Date", layoutDaily
}

// Columns returns the full table header for interval.
func Columns(interval model.Interval) []string {
	index, _ := IndexColumn(interval)
	return []string{index, "Open", "High", "Low", "Close", "Volume"}
}

func tailTable(t model.Table, interval model.Interval) *DataTable {
	_, layout := IndexColumn(interval)
	tail := t.Tail(TailRows)
	raw := make([]model.Observation, len(tail))
	copy(raw, tail)

	rows := make([][]string, len(raw))
	for i, o := range raw {
		rows[i] = []string{
			o.Time.Format(layout),
			fixed2(o.Open),
			fixed2(o.High),
			fixed2(o.Low),
			fixed2(o.Close),
			FormatVolume(o.Volume),
		}
	}
	return &DataTable{
		Columns: Columns(interval),
		Rows:    rows,
		Raw:     raw,
	}
}
