package analytics

import (
	"math"

	"github.com/shopspring/decimal"
)

func round(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

func round2(v float64) float64 { return round(v, 2) }

func round1(v float64) float64 { return round(v, 1) }

// safeDiv returns fallback when the denominator is zero
func safeDiv(num, den, fallback float64) float64 {
	if den == 0 {
		return fallback
	}
	return num / den
}

var (
	maxInt64 = decimal.NewFromInt(math.MaxInt64)
	minInt64 = decimal.NewFromInt(math.MinInt64)
)

// wholeUnits truncates a money amount toward zero; NaN counts as zero
func wholeUnits(v float64) decimal.Decimal {
	switch {
	case math.IsNaN(v):
		return decimal.Zero
	case math.IsInf(v, 1):
		return maxInt64
	case math.IsInf(v, -1):
		return minInt64
	}
	return decimal.NewFromFloat(v).Truncate(0)
}

// toInt64 saturates at the int64 range
func toInt64(d decimal.Decimal) int64 {
	switch {
	case d.GreaterThan(maxInt64):
		return math.MaxInt64
	case d.LessThan(minInt64):
		return math.MinInt64
	}
	return d.IntPart()
}

// truncMoney reports a money amount as whole units
func truncMoney(v float64) int64 {
	return toInt64(wholeUnits(v))
}
