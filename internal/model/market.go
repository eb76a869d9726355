package model

import "time"

// Observation is a single time-indexed price/volume row.
type Observation struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume uint64    `json:"volume"`
}

// Table holds observations sorted ascending by Time with unique timestamps.
// An empty table means the provider had no data for the query.
type Table struct {
	Rows []Observation `json:"rows"`
}

// NewTable wraps rows that are already ordered.
func NewTable(rows []Observation) Table {
	return Table{Rows: rows}
}

func (t Table) Len() int { return len(t.Rows) }

func (t Table) Empty() bool { return len(t.Rows) == 0 }

// Last returns the most recent observation. ok is false for an empty table.
func (t Table) Last() (Observation, bool) {
	if len(t.Rows) == 0 {
		return Observation{}, false
	}
	return t.Rows[len(t.Rows)-1], true
}

// Tail returns the last n rows in stored order. The returned slice shares
// the table's backing array and must not be modified.
func (t Table) Tail(n int) []Observation {
	if n <= 0 {
		return nil
	}
	if n >= len(t.Rows) {
		return t.Rows
	}
	return t.Rows[len(t.Rows)-n:]
}

// Closes extracts the close column.
func (t Table) Closes() []float64 {
	closes := make([]float64, len(t.Rows))
	for i, r := range t.Rows {
		closes[i] = r.Close
	}
	return closes
}

// Times extracts the timestamp index.
func (t Table) Times() []time.Time {
	times := make([]time.Time, len(t.Rows))
	for i, r := range t.Rows {
		times[i] = r.Time
	}
	return times
}
