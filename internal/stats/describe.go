package stats

import (
	"math"
	"sort"

	"github.com/plantsense/plantsense-cli/internal/models"
)

// Describe computes descriptive statistics over one channel: count, mean,
// sample standard deviation (n-1 denominator, NaN below two readings), min,
// quartiles with linear interpolation, max.
func Describe(values []float64) models.ChannelStats {
	n := len(values)
	if n == 0 {
		nan := models.Stat(math.NaN())
		return models.ChannelStats{Mean: nan, Std: nan, Min: nan, P25: nan, P50: nan, P75: nan, Max: nan}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	return models.ChannelStats{
		Count: n,
		Mean:  models.Stat(Mean(values)),
		Std:   models.Stat(SampleStd(values)),
		Min:   models.Stat(sorted[0]),
		P25:   models.Stat(percentileSorted(sorted, 0.25)),
		P50:   models.Stat(percentileSorted(sorted, 0.50)),
		P75:   models.Stat(percentileSorted(sorted, 0.75)),
		Max:   models.Stat(sorted[n-1]),
	}
}

// Mean returns the arithmetic mean.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// SampleStd returns the sample standard deviation (n-1 denominator). It is
// NaN for fewer than two values.
func SampleStd(values []float64) float64 {
	return math.Sqrt(SampleVariance(values))
}

// SampleVariance returns the sample variance (n-1 denominator). It is NaN
// for fewer than two values.
func SampleVariance(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return math.NaN()
	}
	mean := Mean(values)
	sum := 0.0
	for _, v := range values {
		d := v - mean
		sum += d * d
	}
	return sum / float64(n-1)
}

// percentileSorted interpolates linearly between the two nearest ranks of an
// already-sorted slice.
func percentileSorted(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	pos := p * float64(n-1)
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))
	if lower == upper {
		return sorted[lower]
	}
	frac := pos - float64(lower)
	return sorted[lower] + frac*(sorted[upper]-sorted[lower])
}
