package recon

import (
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// decOrZero parses a decimal string, treating blank and non-numeric input as
// zero. Computation never fails on bad input; the validation gate still
// rejects such rows at submit time.
func decOrZero(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// fixed2 renders a value rounded to two decimal places, half away from zero.
func fixed2(d decimal.Decimal) string {
	return d.Round(2).StringFixed(2)
}

// fixed4 renders a value at four decimal places for the update wire payload.
func fixed4(d decimal.Decimal) string {
	return d.Round(4).StringFixed(4)
}
