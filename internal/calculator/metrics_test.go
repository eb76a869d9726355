package calculator

import (
	"errors"
	"math"
	"testing"
	"time"

	"StockDashboard/internal/model"
)

func tableOf(closes ...float64) model.Table {
	start := time.Date(2024, 3, 1, 14, 30, 0, 0, time.UTC)
	rows := make([]model.Observation, len(closes))
	for i, c := range closes {
		rows[i] = model.Observation{
			Time:   start.Add(time.Duration(i) * time.Minute),
			Open:   c,
			High:   c,
			Low:    c,
			Close:  c,
			Volume: uint64(1000 * (i + 1)),
		}
	}
	return model.NewTable(rows)
}

func TestComputeMetrics_LastTwoRows(t *testing.T) {
	m, err := ComputeMetrics(tableOf(120, 148.50, 150.00))
	if err != nil {
		t.Fatalf("ComputeMetrics: %v", err)
	}
	if m.LatestClose != 150.00 || m.PreviousClose != 148.50 {
		t.Fatalf("unexpected closes: %+v", m)
	}
	if m.Delta != 150.00-148.50 {
		t.Errorf("delta = %v, want exact difference", m.Delta)
	}
	want := (150.00 - 148.50) / 148.50 * 100
	if math.Abs(m.PercentDelta-want) > 1e-9 {
		t.Errorf("percent delta = %v, want %v", m.PercentDelta, want)
	}
	if m.LatestVolume != 3000 {
		t.Errorf("latest volume = %d, want 3000", m.LatestVolume)
	}
}

func TestComputeMetrics_Negative(t *testing.T) {
	m, err := ComputeMetrics(tableOf(100, 95))
	if err != nil {
		t.Fatalf("ComputeMetrics: %v", err)
	}
	if m.Delta != -5 {
		t.Errorf("delta = %v, want -5", m.Delta)
	}
	if math.Abs(m.PercentDelta+5) > 1e-9 {
		t.Errorf("percent delta = %v, want -5", m.PercentDelta)
	}
}

func TestComputeMetrics_InsufficientHistory(t *testing.T) {
	for _, tbl := range []model.Table{{}, tableOf(42)} {
		if _, err := ComputeMetrics(tbl); !errors.Is(err, ErrInsufficientHistory) {
			t.Errorf("rows=%d: expected ErrInsufficientHistory, got %v", tbl.Len(), err)
		}
	}
}

func TestComputeMetrics_ZeroPreviousClose(t *testing.T) {
	m, err := ComputeMetrics(tableOf(0, 3))
	if err != nil {
		t.Fatalf("ComputeMetrics: %v", err)
	}
	if m.PercentDelta != 0 {
		t.Errorf("percent delta = %v, want 0 for zero previous close", m.PercentDelta)
	}
}
