package indicator

import "errors"

// MACDResult holds the three MACD output series, each aligned with the input.
type MACDResult struct {
	Line      []float64
	Signal    []float64
	Histogram []float64
}

// MACD computes the MACD line as EMA(fast) - EMA(slow), the signal line as an
// EMA(signal) over the MACD line itself, and their histogram difference.
// The line is defined from slow-1 onward; the signal and histogram need a
// further signal-1 bars of warm-up on top of that.
func MACD(closes []float64, fast, slow, signal int) (*MACDResult, error) {
	if fast <= 0 || slow <= 0 || signal <= 0 {
		return nil, errors.New("macd windows must be positive")
	}
	if fast >= slow {
		return nil, errors.New("fast window must be shorter than slow window")
	}

	emaFast, err := EMA(closes, fast)
	if err != nil {
		return nil, err
	}
	emaSlow, err := EMA(closes, slow)
	if err != nil {
		return nil, err
	}

	n := len(closes)
	line := undefinedSeries(n)
	for i := slow - 1; i < n; i++ {
		line[i] = emaFast[i] - emaSlow[i]
	}

	// The signal line smooths the defined portion of the MACD line as a
	// series in its own right, with its own EMA warm-up.
	sig := undefinedSeries(n)
	if n >= slow {
		smoothed, err := EMA(line[slow-1:], signal)
		if err != nil {
			return nil, err
		}
		copy(sig[slow-1:], smoothed)
	}

	hist := undefinedSeries(n)
	for i := 0; i < n; i++ {
		if Defined(line[i]) && Defined(sig[i]) {
			hist[i] = line[i] - sig[i]
		}
	}
	return &MACDResult{Line: line, Signal: sig, Histogram: hist}, nil
}
