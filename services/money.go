package services

import (
	"math"

	"github.com/shopspring/decimal"
)

func toDecimal(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}

// RoundCents rounds an amount to 2 decimal places, halves away from zero.
// NaN and infinities become 0.
func RoundCents(v float64) float64 {
	return toDecimal(v).Round(2).InexactFloat64()
}

// applyRate multiplies v by rate and rounds the product to cents.
func applyRate(v, rate float64) float64 {
	return toDecimal(v).Mul(toDecimal(rate)).Round(2).InexactFloat64()
}

// SumCents adds amounts exactly and rounds the result to cents.
func SumCents(values ...float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(toDecimal(v))
	}
	return total.Round(2).InexactFloat64()
}

// nonNegative clamps v at zero.
func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
