package num

import (
	"github.com/shopspring/decimal"
)

// Decimal is an exact fixed-point number, used everywhere a price is held.
// Prices are never floats: equality is exact and comparisons are total, which
// makes a Decimal usable as an ordered collection key.
type Decimal = decimal.Decimal

var dzero = decimal.Zero

func DecimalZero() Decimal {
	return dzero
}

func DecimalFromInt64(i int64) Decimal {
	return decimal.NewFromInt(i)
}

func DecimalFromFloat(f float64) Decimal {
	return decimal.NewFromFloat(f)
}

func DecimalFromString(s string) (Decimal, error) {
	return decimal.NewFromString(s)
}

func MustDecimalFromString(s string) Decimal {
	d, err := DecimalFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// MaxV returns the largest of the two uint64 values.
func MaxV(a, b uint64) uint64 {
	if a >= b {
		return a
	}
	return b
}

// MinV returns the smallest of the two uint64 values.
func MinV(a, b uint64) uint64 {
	if a <= b {
		return a
	}
	return b
}
