package recorder

import "time"

// RunEvent describes one pipeline run. It carries lookup metadata only,
// never the fetched observations.
type RunEvent struct {
	ID       string
	At       time.Time
	Symbol   string
	Period   string
	Interval string
	Provider string
	Status   string // "LOADED", "EMPTY" or "FAILED"
	Rows     int
	Cached   bool
	Timeout  bool
	Duration time.Duration
	Error    string
}

// RunStats aggregates recorded runs.
type RunStats struct {
	Total    int
	Loaded   int
	Empty    int
	Failed   int
	CacheHit int
}

// Recorder journals pipeline runs for later inspection.
type Recorder interface {
	RecordRun(evt *RunEvent) error
	Stats() (RunStats, error)
	Close() error
}
