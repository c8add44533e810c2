package core

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"2025-01-31", true},
		{"2025-12-01", true},
		{"", false},
		{"31-01-2025", false},
		{"2025-02-30", false},
		{"not-a-date", false},
	}
	for _, tc := range cases {
		d, err := ParseDate(tc.in)
		if tc.ok {
			if err != nil {
				t.Fatalf("%q expected ok, got %v", tc.in, err)
			}
			if d.String() != tc.in {
				t.Fatalf("%q round-trip gave %q", tc.in, d.String())
			}
		} else if err == nil {
			t.Fatalf("%q expected error", tc.in)
		}
	}

	if _, err := ParseDate(""); !errors.Is(err, ErrEmptyDate) {
		t.Fatalf("empty date expected ErrEmptyDate, got %v", err)
	}
	if _, err := ParseDate("garbage"); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("garbage date expected ErrInvalidDate, got %v", err)
	}
}

func TestValidateNotFuture(t *testing.T) {
	// Late in the evening on purpose: the check is date-only.
	now := time.Date(2025, time.March, 15, 23, 50, 0, 0, time.Local)

	if err := ValidateNotFuture(NewDate(2025, time.March, 15), now); err != nil {
		t.Fatalf("today expected ok, got %v", err)
	}
	if err := ValidateNotFuture(NewDate(2025, time.March, 14), now); err != nil {
		t.Fatalf("yesterday expected ok, got %v", err)
	}
	if err := ValidateNotFuture(NewDate(2025, time.March, 16), now); !errors.Is(err, ErrFutureDate) {
		t.Fatalf("tomorrow expected ErrFutureDate, got %v", err)
	}
}

func TestValidateName(t *testing.T) {
	existing := []string{"Groceries", "House"}

	cases := []struct {
		name string
		ok   bool
		want string
	}{
		{"Books", true, ""},
		{"B", true, ""},
		{strings.Repeat("x", 250), true, ""},
		{"", false, "Category has 0 characters. The name must be between 1 and 250 characters."},
		{strings.Repeat("x", 251), false, "Category has 251 characters. The name must be between 1 and 250 characters."},
		{"Groceries", false, "Category name must be unique."},
		{"groceries", true, ""}, // uniqueness is case-sensitive
	}
	for _, tc := range cases {
		err := ValidateName(tc.name, existing, "Category")
		if tc.ok {
			if err != nil {
				t.Fatalf("%q expected ok, got %v", tc.name, err)
			}
			continue
		}
		if err == nil {
			t.Fatalf("%q expected error", tc.name)
		}
		if err.Error() != tc.want {
			t.Fatalf("%q error = %q, want %q", tc.name, err.Error(), tc.want)
		}
	}
}

func TestValidateNameCountsRunes(t *testing.T) {
	// Multi-byte glyphs count as single characters.
	name := strings.Repeat("é", 250)
	if err := ValidateName(name, nil, "Account"); err != nil {
		t.Fatalf("250 runes expected ok, got %v", err)
	}
}

func TestNewTransactionSignRule(t *testing.T) {
	now := time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		amount string
		typ    string
		want   string
	}{
		{"50", "expense", "-50"},
		{"-50", "expense", "-50"},
		{"50", "income", "50"},
		{"-50", "income", "50"},
		{"12,34", "expense", "-12.34"},
	}
	for _, tc := range cases {
		txn, err := NewTransaction(TransactionDetails{
			Date:     "2025-06-09",
			Amount:   tc.amount,
			Category: "Groceries",
			Type:     tc.typ,
		}, now)
		if err != nil {
			t.Fatalf("amount %q type %q: %v", tc.amount, tc.typ, err)
		}
		want, _ := decimal.NewFromString(tc.want)
		if !txn.Amount.Equal(want) {
			t.Fatalf("amount %q type %q stored as %s, want %s", tc.amount, tc.typ, txn.Amount, want)
		}
		if txn.ID == "" {
			t.Fatalf("transaction without an ID")
		}
	}
}

func TestNewTransactionRejects(t *testing.T) {
	now := time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		details TransactionDetails
		want    error
	}{
		{TransactionDetails{Date: "", Amount: "5", Type: "expense"}, ErrEmptyDate},
		{TransactionDetails{Date: "2025-06-11", Amount: "5", Type: "expense"}, ErrFutureDate},
		{TransactionDetails{Date: "2025-06-09", Amount: "", Type: "expense"}, ErrEmptyAmount},
		{TransactionDetails{Date: "2025-06-09", Amount: "x", Type: "expense"}, ErrInvalidAmount},
		{TransactionDetails{Date: "2025-06-09", Amount: "5", Type: "transfer"}, ErrInvalidType},
	}
	for i, tc := range cases {
		if _, err := NewTransaction(tc.details, now); !errors.Is(err, tc.want) {
			t.Fatalf("case %d expected %v, got %v", i, tc.want, err)
		}
	}
}

func TestAccountAppend(t *testing.T) {
	a := NewAccount("💵 Cash", decimal.NewFromInt(10))

	a.Append(Transaction{Amount: decimal.NewFromInt(-4), Type: Expense})
	a.Append(Transaction{Amount: decimal.NewFromInt(7), Type: Income})

	if len(a.Transactions) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(a.Transactions))
	}
	if !a.Balance.Equal(decimal.NewFromInt(13)) {
		t.Fatalf("balance = %s, want 13", a.Balance)
	}
}
