// Package input collects the three dashboard inputs into a model.Query.
package input

import "StockDashboard/internal/model"

// Defaults applied when an input is missing or not one of the listed choices.
const (
	DefaultSymbol   = "AAPL"
	DefaultPeriod   = model.Period1d
	DefaultInterval = model.Interval1m
)

// Control kinds understood by the UI layer.
const (
	KindText   = "text"
	KindSelect = "select"
)

// Control declares one input widget and its current value.
type Control struct {
	Name    string   `json:"name"`
	Label   string   `json:"label"`
	Kind    string   `json:"kind"`
	Value   string   `json:"value"`
	Options []string `json:"options,omitempty"`
}

// Collector holds the defaults used to complete partial input.
type Collector struct {
	Symbol   string
	Period   model.Period
	Interval model.Interval
}

// NewCollector returns a Collector with the given defaults, falling back to
// the package defaults for anything empty or unlisted.
func NewCollector(symbol string, period model.Period, interval model.Interval) Collector {
	c := Collector{Symbol: DefaultSymbol, Period: DefaultPeriod, Interval: DefaultInterval}
	return Collector{
		Symbol:   c.symbol(symbol),
		Period:   c.period(string(period)),
		Interval: c.interval(string(interval)),
	}
}

// Collect turns raw input values into a Query. It never fails: an empty
// symbol or an unlisted period/interval selects the default. The symbol is
// otherwise kept exactly as typed.
func (c Collector) Collect(symbol, period, interval string) model.Query {
	return model.Query{
		Symbol:   c.symbol(symbol),
		Period:   c.period(period),
		Interval: c.interval(interval),
	}
}

func (c Collector) symbol(s string) string {
	if s == "" {
		return c.Symbol
	}
	return s
}

func (c Collector) period(s string) model.Period {
	if p := model.Period(s); p.Valid() {
		return p
	}
	return c.Period
}

func (c Collector) interval(s string) model.Interval {
	if i := model.Interval(s); i.Valid() {
		return i
	}
	return c.Interval
}

// Controls declares the sidebar widgets for q.
func Controls(q model.Query) []Control {
	periods := make([]string, len(model.Periods))
	for i, p := range model.Periods {
		periods[i] = string(p)
	}
	intervals := make([]string, len(model.Intervals))
	for i, v := range model.Intervals {
		intervals[i] = string(v)
	}
	return []Control{
		{Name: "symbol", Label: "Enter Stock Symbol", Kind: KindText, Value: q.Symbol},
		{Name: "period", Label: "Select Time Period", Kind: KindSelect, Value: string(q.Period), Options: periods},
		{Name: "interval", Label: "Select Interval", Kind: KindSelect, Value: string(q.Interval), Options: intervals},
	}
}
