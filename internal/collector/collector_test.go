package collector

import (
	"testing"
	"time"
)

func TestTimeframeStep(t *testing.T) {
	tests := []struct {
		timeframe string
		step      time.Duration
		ok        bool
	}{
		{"1h", time.Hour, true},
		{"1d", 24 * time.Hour, true},
		{"1w", 7 * 24 * time.Hour, true},
		{"1wk", 7 * 24 * time.Hour, true},
		{"5m", 0, false},
	}
	for _, tt := range tests {
		step, ok := TimeframeStep(tt.timeframe)
		if ok != tt.ok || step != tt.step {
			t.Errorf("TimeframeStep(%q) = %v, %v; want %v, %v", tt.timeframe, step, ok, tt.step, tt.ok)
		}
	}
}

func TestMockFetcher_Deterministic(t *testing.T) {
	m := &MockFetcher{}
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 90)

	first, err := m.FetchBars("AAPL", "1d", start, end)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	second, err := m.FetchBars("AAPL", "1d", start, end)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(first) != 91 {
		t.Fatalf("expected 91 daily bars, got %d", len(first))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("index %d: mock bars must be deterministic", i)
		}
	}
	for i := 1; i < len(first); i++ {
		if !first[i].Time.After(first[i-1].Time) {
			t.Fatalf("index %d: timestamps must strictly increase", i)
		}
	}
}
