// Package currencyutils handles rupiah amount parsing and formatting.
// All ledger amounts are whole rupiah; fractional parts from notification
// text are truncated, never rounded.
package currencyutils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseRupiah converts an Indonesian-formatted amount string to a whole-rupiah
// decimal. The convention is "." as thousands separator and "," as decimal
// separator, so "1.250.000" parses to 1250000 and "50,00" parses to 50.
// Unparsable or empty input yields zero.
func ParseRupiah(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "Rp")
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")

	dec, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return dec.Truncate(0)
}

// FormatRupiah renders an amount as "Rp 1.250.000" for reports.
func FormatRupiah(amount decimal.Decimal) string {
	neg := amount.IsNegative()
	digits := amount.Abs().Truncate(0).String()

	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)

	out := "Rp " + strings.Join(groups, ".")
	if neg {
		out = "-" + out
	}
	return out
}

// IsPositive reports whether the amount is a valid transaction amount
// (strictly greater than zero).
func IsPositive(amount decimal.Decimal) bool {
	return amount.IsPositive()
}
