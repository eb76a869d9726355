package model

// DisplayMetrics are derived from the last two observations of a table.
type DisplayMetrics struct {
	LatestClose   float64 `json:"latest_close"`
	PreviousClose float64 `json:"previous_close"`
	Delta         float64 `json:"delta"`
	PercentDelta  float64 `json:"percent_delta"` // zero when PreviousClose is zero
	LatestVolume  uint64  `json:"latest_volume"`
}
