// Package money holds the rounding and formatting rules for ledger amounts.
package money

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// ReportDigits is the number of fractional digits used whenever a balance
// leaves the ledger (reports, journals).
const ReportDigits int32 = 4

var ErrEmptyAmount = errors.New("empty amount")

// Round returns v rounded half up to the given number of fractional digits.
// Ties move away from zero.
func Round(v decimal.Decimal, digits int32) decimal.Decimal {
	return v.Round(digits)
}

// RoundFloat is Round for float64 values.
func RoundFloat(f float64, digits int32) float64 {
	p := math.Pow(10, float64(digits))
	return math.Round(f*p) / p
}

// Format renders v at ReportDigits precision, always with ReportDigits
// fractional digits: 1.5 -> "1.5000".
func Format(v decimal.Decimal) string {
	return Round(v, ReportDigits).StringFixed(ReportDigits)
}

// Parse reads a decimal literal, ignoring surrounding whitespace.
func Parse(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrEmptyAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return d, nil
}
