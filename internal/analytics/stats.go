package analytics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.Mean(xs, nil)
}

// stdDev is the population standard deviation
func stdDev(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.PopStdDev(xs, nil)
}

func sortedCopy(xs []float64) []float64 {
	out := make([]float64, len(xs))
	copy(out, xs)
	sort.Float64s(out)
	return out
}

func median(xs []float64) float64 {
	return percentile(xs, 0.5)
}

// percentile interpolates linearly between closest ranks at p*(n-1), p in [0, 1].
// stat.Quantile only offers the empirical and CDF-interpolated (R type 4) estimators,
// which do not average the middle pair of an even-sized sample.
func percentile(xs []float64, p float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	s := sortedCopy(xs)
	pos := p * float64(len(s)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return s[lo]
	}
	return s[lo] + (pos-float64(lo))*(s[hi]-s[lo])
}

// linearFit returns the ordinary least squares line through (i, ys[i])
func linearFit(ys []float64) (slope, intercept float64) {
	switch len(ys) {
	case 0:
		return 0, 0
	case 1:
		return 0, ys[0]
	}
	xs := make([]float64, len(ys))
	for i := range xs {
		xs[i] = float64(i)
	}
	intercept, slope = stat.LinearRegression(xs, ys, nil, false)
	return slope, intercept
}
