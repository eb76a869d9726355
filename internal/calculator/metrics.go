package calculator

import (
	"errors"

	"StockDashboard/internal/model"
)

// ErrInsufficientHistory is returned when fewer than two observations are
// available to compute a change.
var ErrInsufficientHistory = errors.New("at least two observations are required to compute a change")

// ComputeMetrics derives the latest close, change and volume from the last two rows.
func ComputeMetrics(t model.Table) (model.DisplayMetrics, error) {
	n := t.Len()
	if n < 2 {
		return model.DisplayMetrics{}, ErrInsufficientHistory
	}
	latest := t.Rows[n-1]
	previous := t.Rows[n-2]

	m := model.DisplayMetrics{
		LatestClose:   latest.Close,
		PreviousClose: previous.Close,
		Delta:         latest.Close - previous.Close,
		LatestVolume:  latest.Volume,
	}
	if previous.Close != 0 {
		m.PercentDelta = m.Delta / previous.Close * 100
	}
	return m, nil
}
