package indicator

import "errors"

// SMA computes the simple moving average of closes over a trailing window.
// Output is undefined for indices below window-1.
func SMA(closes []float64, window int) ([]float64, error) {
	if window <= 0 {
		return nil, errors.New("window must be positive")
	}
	out := undefinedSeries(len(closes))
	sum := 0.0
	for i, c := range closes {
		sum += c
		if i >= window {
			sum -= closes[i-window]
		}
		if i >= window-1 {
			out[i] = sum / float64(window)
		}
	}
	return out, nil
}
