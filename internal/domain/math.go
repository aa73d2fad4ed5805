package domain

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// SafeParse parses a string into a decimal, returning zero for invalid or empty input.
func SafeParse(value string) decimal.Decimal {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// SafeFloat parses a string into a finite float64, returning zero for invalid input.
func SafeFloat(value string) float64 {
	return Finite(SafeParse(value).InexactFloat64())
}

// Finite maps NaN and infinities to zero.
func Finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// NonNegative clamps negative and non-finite amounts to zero.
func NonNegative(f float64) float64 {
	f = Finite(f)
	if f < 0 {
		return 0
	}
	return f
}

// Round rounds half away from zero to the given number of decimal places.
func Round(f float64, places int32) float64 {
	return decimal.NewFromFloat(Finite(f)).Round(places).InexactFloat64()
}

// Percent returns part as a percentage of total, or zero when total is not positive.
func Percent(part, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return Finite(part / total * 100)
}

// Clamp bounds f to [lo, hi].
func Clamp(f, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, Finite(f)))
}
