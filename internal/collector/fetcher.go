package collector

import (
	"time"

	"github.com/aravindkannappan/Market-Trend-Analyzer/internal/model"
)

// Fetcher defines the interface for retrieving historical market data.
type Fetcher interface {
	FetchBars(symbol, timeframe string, start, end time.Time) ([]model.Bar, error)
	Name() string
}

// TimeframeStep returns the nominal bar spacing for a supported timeframe.
func TimeframeStep(timeframe string) (time.Duration, bool) {
	switch timeframe {
	case "1h":
		return time.Hour, true
	case "1d":
		return 24 * time.Hour, true
	case "1w", "1wk":
		return 7 * 24 * time.Hour, true
	default:
		return 0, false
	}
}
