package collector

import (
	"math"
	"time"

	"github.com/aravindkannappan/Market-Trend-Analyzer/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	BasePrice float64
	Bars      []model.Bar
}

func (m *MockFetcher) Name() string { return "mock" }

// FetchBars returns the configured bars, or a deterministic generated series
// spanning [start, end] at the timeframe's nominal spacing.
func (m *MockFetcher) FetchBars(_, timeframe string, start, end time.Time) ([]model.Bar, error) {
	if m.Bars != nil {
		return m.Bars, nil
	}
	step, ok := TimeframeStep(timeframe)
	if !ok {
		step = 24 * time.Hour
	}
	base := m.BasePrice
	if base == 0 {
		base = 100
	}
	var bars []model.Bar
	for i, t := 0, start; !t.After(end); i, t = i+1, t.Add(step) {
		p := base * (1 + 0.02*math.Sin(float64(i)/7))
		bars = append(bars, model.Bar{
			Time:   t,
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		})
	}
	return bars, nil
}
