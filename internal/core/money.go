// Money parsing and formatting.
//
// Amounts are decimals end to end; sign encodes direction (expenses
// negative, income positive).
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a form value to a decimal. A comma decimal separator
// is normalized to a dot before parsing.
//
// Examples:
//
//	ParseAmount("12.34") -> 12.34, nil
//	ParseAmount("12,34") -> 12.34, nil
//	ParseAmount("")      -> 0, ErrEmptyAmount
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrEmptyAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// SignAmount applies the storage sign rule regardless of the sign the user
// typed: expenses come out negative, income positive.
func SignAmount(amount decimal.Decimal, typ TxnType) decimal.Decimal {
	if typ == Expense {
		return amount.Abs().Neg()
	}
	return amount.Abs()
}

// FormatAmount renders a decimal with two fractional digits for display.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
