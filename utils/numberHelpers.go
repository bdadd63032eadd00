package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount reads a form-originated money value. Partially filled forms
// send empty or garbage strings; those become zero, never an error.
func ParseAmount(s *string) decimal.Decimal {
	if s == nil {
		return decimal.Zero
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return decimal.Zero
	}
	// tolerate comma decimal separators from the forms
	trimmed = strings.ReplaceAll(trimmed, ",", ".")
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Money rounds to the 2-decimal money scale used across the ledger.
func Money(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
