// Package trend classifies each bar into Bullish, Bearish or Neutral from the
// SMA crossover state with RSI confirmation overrides.
package trend

import (
	"math"

	"github.com/aravindkannappan/Market-Trend-Analyzer/internal/model"
)

// RSI thresholds for the confirmation overrides.
const (
	Overbought = 70.0
	Oversold   = 30.0
)

// At labels a single index. The rule set, in precedence order:
// either SMA undefined or the SMAs exactly equal gives Neutral; RSI at or past
// a threshold overrides the crossover bias (>= 70 Bearish, <= 30 Bullish);
// otherwise SMA20 above SMA50 is Bullish, below is Bearish. An undefined RSI
// leaves the crossover bias in force.
func At(sma20, sma50, rsi float64) model.TrendLabel {
	if math.IsNaN(sma20) || math.IsNaN(sma50) {
		return model.TrendNeutral
	}
	if sma20 == sma50 {
		return model.TrendNeutral
	}
	if !math.IsNaN(rsi) {
		if rsi >= Overbought {
			return model.TrendBearish
		}
		if rsi <= Oversold {
			return model.TrendBullish
		}
	}
	if sma20 > sma50 {
		return model.TrendBullish
	}
	return model.TrendBearish
}

// Classify labels every bar index. Classification at i depends only on the
// values at i, never on earlier labels.
func Classify(sma20, sma50, rsi14 []float64) []model.TrendLabel {
	labels := make([]model.TrendLabel, len(sma20))
	for i := range labels {
		labels[i] = At(sma20[i], sma50[i], rsi14[i])
	}
	return labels
}
