package processor

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// amountScale is the number of fractional digits carried by an Amount.
const amountScale = 4

// Amount is a fixed-point monetary value counted in 1/10,000th units.
// Parsing rounds decimal text to 4 fractional digits once; after that all
// arithmetic is exact integer arithmetic, immune to floating-point drift.
type Amount int64

// ParseAmount parses decimal text into an Amount.
//
// Text with more than 4 fractional digits is rounded half away from zero
// (the behavior of decimal.Round), so "1.23455" parses to 1.2346.
// Malformed text fails with ErrParse; values outside the fixed-point range
// fail with ErrAmountOverflow.
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty amount", ErrParse)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: amount %q", ErrParse, s)
	}
	units := d.Shift(amountScale).Round(0).BigInt()
	if !units.IsInt64() {
		return 0, fmt.Errorf("%w: amount %q", ErrAmountOverflow, s)
	}
	return Amount(units.Int64()), nil
}

// Add returns a+b, or ErrAmountOverflow when the sum leaves the int64
// range. The result never wraps or clamps.
func (a Amount) Add(b Amount) (Amount, error) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, fmt.Errorf("%w: %s + %s", ErrAmountOverflow, a, b)
	}
	return sum, nil
}

// Sub returns a-b, or ErrAmountOverflow when the difference leaves the
// int64 range.
func (a Amount) Sub(b Amount) (Amount, error) {
	diff := a - b
	if (b > 0 && diff > a) || (b < 0 && diff < a) {
		return 0, fmt.Errorf("%w: %s - %s", ErrAmountOverflow, a, b)
	}
	return diff, nil
}

func (a Amount) IsZero() bool     { return a == 0 }
func (a Amount) IsPositive() bool { return a > 0 }
func (a Amount) IsNegative() bool { return a < 0 }

// String renders the amount with exactly 4 digits after the decimal point,
// sign preserved, no thousands separators.
func (a Amount) String() string {
	return decimal.New(int64(a), -amountScale).StringFixed(amountScale)
}
