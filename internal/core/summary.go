package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthSpend sums expense-type transaction amounts dated in (year, month)
// across all accounts. Expense amounts are stored negative, so the result
// is never positive; callers display the signed figure as is.
func MonthSpend(accounts []*Account, year int, month time.Month) decimal.Decimal {
	total := decimal.Zero
	for _, a := range accounts {
		for _, t := range a.Transactions {
			if t.Type == Expense && t.Date.InMonth(year, month) {
				total = total.Add(t.Amount)
			}
		}
	}
	return total
}

// Expenses flattens the expense transactions of all accounts in entry order.
func Expenses(accounts []*Account) []Transaction {
	var out []Transaction
	for _, a := range accounts {
		for _, t := range a.Transactions {
			if t.Type == Expense {
				out = append(out, t)
			}
		}
	}
	return out
}

// FilterMonth keeps the transactions dated in (year, month).
func FilterMonth(ts []Transaction, year int, month time.Month) []Transaction {
	var out []Transaction
	for _, t := range ts {
		if t.Date.InMonth(year, month) {
			out = append(out, t)
		}
	}
	return out
}

// PreviousMonth returns the calendar month before the one containing now.
func PreviousMonth(now time.Time) (int, time.Month) {
	t := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	return t.Year(), t.Month()
}
