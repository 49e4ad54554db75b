package series

import (
	"fmt"
	"math"

	"github.com/aravindkannappan/Market-Trend-Analyzer/internal/model"
)

// InvalidSeriesError reports a malformed input bar series.
// Index is the offending bar, or -1 when the series as a whole is at fault.
type InvalidSeriesError struct {
	Index  int
	Reason string
}

func (e *InvalidSeriesError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid bar series: %s", e.Reason)
	}
	return fmt.Sprintf("invalid bar series: bar %d: %s", e.Index, e.Reason)
}

// Series is a validated sequence of bars with strictly increasing timestamps.
// It is immutable after construction.
type Series struct {
	bars []model.Bar
}

// New validates raw bars and returns an immutable Series handle.
// Validation fails if the series is empty, timestamps are duplicated or out of
// order, any OHLC range invariant is violated, or any field is non-finite or
// negative. Gaps between timestamps are tolerated (market closures).
func New(bars []model.Bar) (*Series, error) {
	if len(bars) == 0 {
		return nil, &InvalidSeriesError{Index: -1, Reason: "series is empty"}
	}
	for i, b := range bars {
		if err := checkBar(i, b); err != nil {
			return nil, err
		}
		if i == 0 {
			continue
		}
		if b.Time.Equal(bars[i-1].Time) {
			return nil, &InvalidSeriesError{Index: i, Reason: "duplicate timestamp"}
		}
		if b.Time.Before(bars[i-1].Time) {
			return nil, &InvalidSeriesError{Index: i, Reason: "timestamps not strictly increasing"}
		}
	}
	owned := make([]model.Bar, len(bars))
	copy(owned, bars)
	return &Series{bars: owned}, nil
}

func checkBar(i int, b model.Bar) error {
	fields := []struct {
		name  string
		value float64
	}{
		{"open", b.Open},
		{"high", b.High},
		{"low", b.Low},
		{"close", b.Close},
		{"volume", b.Volume},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return &InvalidSeriesError{Index: i, Reason: fmt.Sprintf("%s is not finite", f.name)}
		}
		if f.value < 0 {
			return &InvalidSeriesError{Index: i, Reason: fmt.Sprintf("%s is negative", f.name)}
		}
	}
	if b.Low > math.Min(b.Open, b.Close) {
		return &InvalidSeriesError{Index: i, Reason: "low above open/close"}
	}
	if b.High < math.Max(b.Open, b.Close) {
		return &InvalidSeriesError{Index: i, Reason: "high below open/close"}
	}
	return nil
}

// Len returns the number of bars.
func (s *Series) Len() int { return len(s.bars) }

// Bars returns the validated bars in order. The returned slice must not be modified.
func (s *Series) Bars() []model.Bar { return s.bars }

// Closes extracts the close prices, aligned by index with the bars.
func (s *Series) Closes() []float64 {
	closes := make([]float64, len(s.bars))
	for i, b := range s.bars {
		closes[i] = b.Close
	}
	return closes
}
