// Package indicator computes technical indicators over a full close-price
// series. Every transform returns a series aligned 1:1 with its input; indices
// inside the warm-up prefix hold NaN and are reported undefined by Defined.
package indicator

import "math"

// Defined reports whether a series value lies outside the warm-up prefix.
func Defined(v float64) bool { return !math.IsNaN(v) }

// undefinedSeries allocates an all-NaN output series of the given length.
func undefinedSeries(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}
