package domain

import (
	"strings"

	financeErrors "github.com/sebuszqo/FinanceTracker/internal/finance/errors"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Exponent window for amounts. Anything above 10^13 major units is over
// maxAmountCents whatever the coefficient, and rescaling a decimal with an
// exponent far outside this window allocates a power of ten of that size.
const (
	minAmountExponent = -18
	maxAmountExponent = 13
)

// ParseAmount parses a user supplied decimal amount such as "12.34".
// Exponent forms are accepted only inside the amount exponent window.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, financeErrors.ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil || !exponentInRange(d) {
		return decimal.Zero, financeErrors.ErrInvalidAmount
	}
	return d, nil
}

func exponentInRange(d decimal.Decimal) bool {
	exp := d.Exponent()
	return exp >= minAmountExponent && exp <= maxAmountExponent
}

// AmountToCents converts a positive major-unit amount to integer cents,
// rounding half away from zero: 12.345 -> 1235, 12.344 -> 1234.
// Amounts that do not survive rounding as at least one cent are rejected.
func AmountToCents(amount decimal.Decimal) (int64, error) {
	if !amount.IsPositive() || !exponentInRange(amount) {
		return 0, financeErrors.ErrInvalidAmount
	}
	cents := amount.Mul(hundred).Round(0)
	if !cents.IsPositive() || !cents.IsInteger() {
		return 0, financeErrors.ErrInvalidAmount
	}
	if cents.GreaterThan(decimal.NewFromInt(maxAmountCents)) {
		return 0, financeErrors.ErrInvalidAmount
	}
	return cents.IntPart(), nil
}

const maxAmountCents = 1<<53 - 1

// CentsToAmount converts cents to major units.
func CentsToAmount(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Div(hundred)
}

// CentsToFloat is CentsToAmount for JSON payloads and chart data.
func CentsToFloat(cents int64) float64 {
	f, _ := CentsToAmount(cents).Float64()
	return f
}

// FormatCents renders cents as a decimal with exactly two fraction digits.
func FormatCents(cents int64) string {
	return CentsToAmount(cents).StringFixed(2)
}
