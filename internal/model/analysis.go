package model

// TrendLabel classifies the market direction at a single bar.
type TrendLabel string

const (
	TrendBullish TrendLabel = "Bullish"
	TrendBearish TrendLabel = "Bearish"
	TrendNeutral TrendLabel = "Neutral"
)

// AnalysisRow joins one bar with its indicator values and trend label.
// Indicator fields are NaN inside their warm-up prefix.
type AnalysisRow struct {
	Bar       Bar
	SMA20     float64
	SMA50     float64
	EMA20     float64
	RSI14     float64
	MACD      float64
	Signal    float64
	Histogram float64
	Trend     TrendLabel
}
