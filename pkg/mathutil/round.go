// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"
	"strconv"
)

// significantDigits is the number of digits kept when pre-rounding a scaled
// value, which absorbs binary representation error such as 1.005*100 = 100.49999...
const significantDigits = 15

// exactIntegerLimit is the magnitude from which a scaled value has no
// fractional digits left that pre-rounding would keep.
const exactIntegerLimit = 1e15

// RoundTo rounds val to the given number of decimal places, half away from zero.
// A negative precision rounds to tens, hundreds and so on.
func RoundTo(val float64, precision int) float64 {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return val
	}
	if precision < 0 {
		factor := math.Pow10(-precision)
		// -math.MinInt overflows back to a negative exponent, giving 0.
		if math.IsInf(factor, 0) || factor == 0 {
			return math.Copysign(0, val)
		}
		rounded := math.Round(preRound(val / factor))
		if rounded == 0 {
			return math.Copysign(0, val)
		}
		result := rounded * factor
		if math.IsInf(result, 0) {
			return val
		}
		return result
	}
	factor := math.Pow10(precision)
	scaled := val * factor
	if math.IsInf(scaled, 0) || math.Abs(scaled) >= exactIntegerLimit {
		return val
	}
	return math.Round(preRound(scaled)) / factor
}

func preRound(val float64) float64 {
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(val, 'g', significantDigits, 64), 64)
	if err != nil {
		return val
	}
	return rounded
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}
