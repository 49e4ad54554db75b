// Package analysis runs the full bar-to-trend pipeline: parallel indicator
// computation, per-bar trend classification and the row-aligned table join.
package analysis

import (
	"fmt"
	"sync"

	"github.com/aravindkannappan/Market-Trend-Analyzer/internal/indicator"
	"github.com/aravindkannappan/Market-Trend-Analyzer/internal/model"
	"github.com/aravindkannappan/Market-Trend-Analyzer/internal/series"
	"github.com/aravindkannappan/Market-Trend-Analyzer/internal/trend"
)

// Indicator windows used throughout the pipeline.
const (
	SMAShortWindow = 20
	SMALongWindow  = 50
	EMAWindow      = 20
	RSIPeriod      = 14
	MACDFast       = 12
	MACDSlow       = 26
	MACDSignal     = 9
)

// MisalignedSeriesError signals an internal defect: an indicator series whose
// length differs from the bar series it was computed from. It is never retried.
type MisalignedSeriesError struct {
	Name string
	Want int
	Got  int
}

func (e *MisalignedSeriesError) Error() string {
	return fmt.Sprintf("misaligned series %q: want length %d, got %d", e.Name, e.Want, e.Got)
}

// Result carries the joined table plus the raw indicator series for consumers
// that render individual panels.
type Result struct {
	Rows   []model.AnalysisRow
	SMA20  []float64
	SMA50  []float64
	EMA20  []float64
	RSI14  []float64
	MACD   *indicator.MACDResult
	Trends []model.TrendLabel
}

// Run computes all indicators over the series, classifies each bar and joins
// everything into row-aligned analysis rows. The indicator transforms are
// independent pure functions over the same immutable input, so they fan out
// onto goroutines and the classifier waits for all of them.
func Run(s *series.Series) (*Result, error) {
	closes := s.Closes()

	var (
		wg    sync.WaitGroup
		sma20 []float64
		sma50 []float64
		ema20 []float64
		rsi14 []float64
		macd  *indicator.MACDResult
		errs  [5]error
	)
	wg.Add(5)
	go func() { defer wg.Done(); sma20, errs[0] = indicator.SMA(closes, SMAShortWindow) }()
	go func() { defer wg.Done(); sma50, errs[1] = indicator.SMA(closes, SMALongWindow) }()
	go func() { defer wg.Done(); ema20, errs[2] = indicator.EMA(closes, EMAWindow) }()
	go func() { defer wg.Done(); rsi14, errs[3] = indicator.RSI(closes, RSIPeriod) }()
	go func() { defer wg.Done(); macd, errs[4] = indicator.MACD(closes, MACDFast, MACDSlow, MACDSignal) }()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("compute indicators: %w", err)
		}
	}

	n := s.Len()
	aligned := []struct {
		name string
		vals []float64
	}{
		{"sma20", sma20},
		{"sma50", sma50},
		{"ema20", ema20},
		{"rsi14", rsi14},
		{"macd", macd.Line},
		{"macd_signal", macd.Signal},
		{"macd_hist", macd.Histogram},
	}
	for _, a := range aligned {
		if len(a.vals) != n {
			return nil, &MisalignedSeriesError{Name: a.name, Want: n, Got: len(a.vals)}
		}
	}

	labels := trend.Classify(sma20, sma50, rsi14)

	rows := make([]model.AnalysisRow, n)
	for i, b := range s.Bars() {
		rows[i] = model.AnalysisRow{
			Bar:       b,
			SMA20:     sma20[i],
			SMA50:     sma50[i],
			EMA20:     ema20[i],
			RSI14:     rsi14[i],
			MACD:      macd.Line[i],
			Signal:    macd.Signal[i],
			Histogram: macd.Histogram[i],
			Trend:     labels[i],
		}
	}

	return &Result{
		Rows:   rows,
		SMA20:  sma20,
		SMA50:  sma50,
		EMA20:  ema20,
		RSI14:  rsi14,
		MACD:   macd,
		Trends: labels,
	}, nil
}
