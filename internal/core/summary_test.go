package core

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func testAccounts() []*Account {
	a := NewAccount("💵 Cash", decimal.Zero)
	a.Append(Transaction{Date: NewDate(2025, time.June, 3), Amount: decimal.NewFromInt(-10), Type: Expense, Category: "Groceries"})
	a.Append(Transaction{Date: NewDate(2025, time.June, 20), Amount: decimal.NewFromInt(500), Type: Income, Category: "Salary"})
	a.Append(Transaction{Date: NewDate(2025, time.May, 28), Amount: decimal.NewFromInt(-7), Type: Expense, Category: "House"})

	b := NewAccount("🏦 Checking", decimal.Zero)
	b.Append(Transaction{Date: NewDate(2025, time.June, 5), Amount: decimal.NewFromInt(-20), Type: Expense, Category: "Eating out"})

	return []*Account{a, b}
}

func TestMonthSpend(t *testing.T) {
	accounts := testAccounts()

	// June: -10 and -20 across both accounts; income excluded.
	got := MonthSpend(accounts, 2025, time.June)
	if !got.Equal(decimal.NewFromInt(-30)) {
		t.Fatalf("June spend = %s, want -30", got)
	}

	got = MonthSpend(accounts, 2025, time.May)
	if !got.Equal(decimal.NewFromInt(-7)) {
		t.Fatalf("May spend = %s, want -7", got)
	}

	got = MonthSpend(accounts, 2025, time.April)
	if !got.IsZero() {
		t.Fatalf("April spend = %s, want 0", got)
	}
}

func TestExpensesAndFilterMonth(t *testing.T) {
	accounts := testAccounts()

	all := Expenses(accounts)
	if len(all) != 3 {
		t.Fatalf("expected 3 expenses, got %d", len(all))
	}

	june := FilterMonth(all, 2025, time.June)
	if len(june) != 2 {
		t.Fatalf("expected 2 June expenses, got %d", len(june))
	}
	may := FilterMonth(all, 2025, time.May)
	if len(may) != 1 || may[0].Category != "House" {
		t.Fatalf("unexpected May filter result: %+v", may)
	}
}

func TestPreviousMonth(t *testing.T) {
	cases := []struct {
		now       time.Time
		wantYear  int
		wantMonth time.Month
	}{
		{time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC), 2025, time.May},
		{time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC), 2024, time.December},
		{time.Date(2025, time.March, 31, 12, 0, 0, 0, time.UTC), 2025, time.February},
	}
	for _, tc := range cases {
		y, m := PreviousMonth(tc.now)
		if y != tc.wantYear || m != tc.wantMonth {
			t.Fatalf("PreviousMonth(%s) = %d-%s, want %d-%s", tc.now, y, m, tc.wantYear, tc.wantMonth)
		}
	}
}
