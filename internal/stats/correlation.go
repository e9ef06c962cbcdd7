package stats

import (
	"math"

	"github.com/plantsense/plantsense-cli/internal/models"
)

// Pearson returns the Pearson correlation coefficient between two series of
// equal length. A zero-variance series yields NaN, not an error.
func Pearson(x, y []float64) float64 {
	n := len(x)
	if n != len(y) || n < 2 {
		return math.NaN()
	}

	meanX, meanY := Mean(x), Mean(y)
	var cov, varX, varY float64
	for i := range x {
		dx := x[i] - meanX
		dy := y[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return math.NaN()
	}
	return cov / math.Sqrt(varX*varY)
}

// CorrelationMatrix assembles the pairwise Pearson matrix over the named
// channels. The matrix is symmetric; the diagonal is exactly 1.0 except for
// constant channels, whose cells (diagonal included) are NaN.
func CorrelationMatrix(channels []string, series map[string][]float64) models.CorrelationMatrix {
	n := len(channels)
	values := make([][]models.Stat, n)
	for i := range values {
		values[i] = make([]models.Stat, n)
	}

	for i := 0; i < n; i++ {
		xi := series[channels[i]]
		degenerate := SampleVariance(xi) == 0 || len(xi) < 2
		for j := i; j < n; j++ {
			var r float64
			switch {
			case i == j && !degenerate:
				r = 1.0
			case i == j:
				r = math.NaN()
			default:
				r = Pearson(xi, series[channels[j]])
			}
			values[i][j] = models.Stat(r)
			values[j][i] = models.Stat(r)
		}
	}

	return models.CorrelationMatrix{Channels: channels, Values: values}
}
