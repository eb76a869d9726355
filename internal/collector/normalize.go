package collector

import (
	"sort"

	"StockDashboard/internal/model"
)

// normalize sorts rows ascending by time and drops duplicate timestamps,
// keeping the last row received for each.
func normalize(rows []model.Observation) model.Table {
	if len(rows) == 0 {
		return model.Table{}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Time.Before(rows[j].Time) })

	out := rows[:0]
	for _, r := range rows {
		if n := len(out); n > 0 && out[n-1].Time.Equal(r.Time) {
			out[n-1] = r
			continue
		}
		out = append(out, r)
	}
	return model.NewTable(out)
}

func toVolume(v float64) uint64 {
	if v <= 0 {
		return 0
	}
	return uint64(v)
}
