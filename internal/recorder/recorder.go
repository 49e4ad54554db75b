package recorder

import (
	"time"

	"github.com/aravindkannappan/Market-Trend-Analyzer/internal/model"
)

// RunSummary describes one completed analysis run.
type RunSummary struct {
	ID        string
	Symbol    string
	Market    string
	Timeframe string
	Bars      int
	Bullish   int
	Bearish   int
	Neutral   int
	CreatedAt time.Time
}

// Summarize builds a RunSummary by tallying the trend labels in the table.
func Summarize(id, symbol, market, timeframe string, rows []model.AnalysisRow) *RunSummary {
	sum := &RunSummary{
		ID:        id,
		Symbol:    symbol,
		Market:    market,
		Timeframe: timeframe,
		Bars:      len(rows),
		CreatedAt: time.Now().UTC(),
	}
	for _, r := range rows {
		switch r.Trend {
		case model.TrendBullish:
			sum.Bullish++
		case model.TrendBearish:
			sum.Bearish++
		default:
			sum.Neutral++
		}
	}
	return sum
}

// Recorder persists an analysis table.
type Recorder interface {
	RecordRun(sum *RunSummary, rows []model.AnalysisRow) error
	Close() error
}
