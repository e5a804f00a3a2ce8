package pricing

import "github.com/shopspring/decimal"

// StellarDecimals is the fixed-point precision of Stellar token amounts.
const StellarDecimals = 7

// FromStroops converts a 7-decimal fixed point amount to token units.
func FromStroops(v int64) float64 {
	return decimal.New(v, -StellarDecimals).InexactFloat64()
}

// ToStroops converts token units to stroops, rounding half away from zero.
func ToStroops(v float64) int64 {
	return decimal.NewFromFloat(v).Shift(StellarDecimals).Round(0).IntPart()
}

// USDValue prices amount at price, rounded to StellarDecimals places.
// A non-positive price yields 0.
func USDValue(amount, price float64) float64 {
	if price <= 0 {
		return 0
	}
	return decimal.NewFromFloat(amount).
		Mul(decimal.NewFromFloat(price)).
		Round(StellarDecimals).
		InexactFloat64()
}
