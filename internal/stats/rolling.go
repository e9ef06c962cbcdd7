// Package stats computes the smoothed trend series and summary statistics of
// a reconciled sensor batch.
package stats

// DefaultWindow is the nominal rolling-average window, in readings.
const DefaultWindow = 5

// RollingMean computes a simple moving average with a minimum window of one:
// out[i] averages values[max(0, i-window+1) .. i]. The output has the same
// length as the input with no leading gap values.
func RollingMean(values []float64, window int) []float64 {
	if window < 1 {
		window = 1
	}

	out := make([]float64, len(values))
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		n := i + 1
		if n > window {
			n = window
		}
		out[i] = sum / float64(n)
	}
	return out
}
