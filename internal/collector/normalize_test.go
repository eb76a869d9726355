package collector

import (
	"testing"
	"time"

	"StockDashboard/internal/model"
)

func TestNormalize(t *testing.T) {
	base := time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC)
	rows := []model.Observation{
		{Time: base.Add(2 * time.Minute), Close: 3},
		{Time: base, Close: 1},
		{Time: base.Add(time.Minute), Close: 2},
		{Time: base, Close: 1.5},
	}
	tbl := normalize(rows)
	if tbl.Len() != 3 {
		t.Fatalf("expected 3 unique rows, got %d", tbl.Len())
	}
	if tbl.Rows[0].Close != 1.5 {
		t.Errorf("expected later duplicate to replace earlier, got %v", tbl.Rows[0].Close)
	}
	for i := 1; i < tbl.Len(); i++ {
		if !tbl.Rows[i-1].Time.Before(tbl.Rows[i].Time) {
			t.Fatalf("rows not strictly ascending at %d", i)
		}
	}
	if !normalize(nil).Empty() {
		t.Error("expected empty table for no rows")
	}
}

func TestGenerateMockTable(t *testing.T) {
	tbl := GenerateMockTable(150, 200, model.Interval1m)
	if tbl.Len() != 200 {
		t.Fatalf("expected 200 rows, got %d", tbl.Len())
	}
	for i := 1; i < tbl.Len(); i++ {
		if tbl.Rows[i].Time.Sub(tbl.Rows[i-1].Time) != time.Minute {
			t.Fatalf("unexpected spacing at %d", i)
		}
	}
}
