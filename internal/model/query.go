package model

import "strings"

// Period is the lookback window requested from the data provider.
type Period string

const (
	Period1d  Period = "1d"
	Period5d  Period = "5d"
	Period1mo Period = "1mo"
	Period3mo Period = "3mo"
	Period6mo Period = "6mo"
	Period1y  Period = "1y"
	Period5y  Period = "5y"
)

// Interval is the sampling interval of the returned observations.
type Interval string

const (
	Interval1m  Interval = "1m"
	Interval5m  Interval = "5m"
	Interval15m Interval = "15m"
	Interval30m Interval = "30m"
	Interval1h  Interval = "1h"
	Interval1d  Interval = "1d"
)

// Periods lists the selectable periods in display order.
var Periods = []Period{Period1d, Period5d, Period1mo, Period3mo, Period6mo, Period1y, Period5y}

// Intervals lists the selectable intervals in display order.
var Intervals = []Interval{Interval1m, Interval5m, Interval15m, Interval30m, Interval1h, Interval1d}

func (p Period) Valid() bool {
	for _, v := range Periods {
		if v == p {
			return true
		}
	}
	return false
}

func (i Interval) Valid() bool {
	for _, v := range Intervals {
		if v == i {
			return true
		}
	}
	return false
}

// Intraday reports whether the interval samples within a trading day.
func (i Interval) Intraday() bool {
	return i != Interval1d
}

// Query fully identifies one data lookup.
type Query struct {
	Symbol   string   `json:"symbol"`
	Period   Period   `json:"period"`
	Interval Interval `json:"interval"`
}

// Key is the memoization key. The symbol is used as typed; case folding is
// a display concern only.
func (q Query) Key() string {
	return q.Symbol + "|" + string(q.Period) + "|" + string(q.Interval)
}

// DisplaySymbol is the symbol as shown to the user.
func (q Query) DisplaySymbol() string {
	return strings.ToUpper(q.Symbol)
}
