// Package money provides fixed-point currency arithmetic for bill amounts.
//
// All stored amounts have exactly two fractional digits (paise). Intermediate
// computation (ratios, per-head divisions) keeps decimal's full division
// precision; Round2 is applied only when producing a participant-facing
// amount.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Zero is the zero amount.
var Zero = decimal.Zero

// Round2 rounds to two decimal places, half away from zero. This matches
// display rounding for currency; bankers rounding is not used.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// FromFloat converts a float amount (e.g. decoded from JSON) to a decimal
// rounded to two places.
func FromFloat(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f).Round(2)
}

// FromString parses a decimal amount string.
func FromString(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing amount %q: %w", s, err)
	}

	return d.Round(2), nil
}

// Paise returns the amount in minor currency units, as payment gateways
// expect.
func Paise(d decimal.Decimal) int64 {
	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// FromPaise converts minor currency units back to a decimal amount.
func FromPaise(p int64) decimal.Decimal {
	return decimal.NewFromInt(p).Div(decimal.NewFromInt(100))
}

var inrPrinter = message.NewPrinter(language.MustParse("en-IN"))

// FormatINR renders an amount with the rupee sign and Indian digit grouping,
// e.g. "₹1,23,456.78".
func FormatINR(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()

	return inrPrinter.Sprintf("₹%v", number.Decimal(f,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}
