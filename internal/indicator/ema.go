package indicator

import "errors"

// EMA computes the exponential moving average with smoothing 2/(window+1).
// The value at window-1 is seeded with the simple average of the first window
// closes; later values follow the standard recurrence. Output is undefined for
// indices below window-1.
func EMA(closes []float64, window int) ([]float64, error) {
	if window <= 0 {
		return nil, errors.New("window must be positive")
	}
	out := undefinedSeries(len(closes))
	if len(closes) < window {
		return out, nil
	}
	seed := 0.0
	for i := 0; i < window; i++ {
		seed += closes[i]
	}
	out[window-1] = seed / float64(window)

	alpha := 2.0 / float64(window+1)
	for i := window; i < len(closes); i++ {
		out[i] = closes[i]*alpha + out[i-1]*(1-alpha)
	}
	return out, nil
}
