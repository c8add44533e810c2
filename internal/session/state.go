// Package session holds per-visitor domain state keyed by a browser cookie.
//
// Each session owns one State: the visitor's accounts, categories, and the
// transient feedback (errors, success message, last-entered form values)
// that survives a redirect. Nothing here outlives the server process.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"billfold/internal/core"
)

var (
	ErrAccountNotFound  = errors.New("Account not found.")
	ErrCategoryNotFound = errors.New("Category not found.")
)

// State is the domain aggregate of one session. All methods serialize on an
// internal mutex so overlapping requests on the same cookie never interleave
// a read-modify-write.
type State struct {
	mu sync.Mutex

	accounts   []*core.Account
	categories []*core.Category
	errors     []string
	success    string
	lastDate   string
	lastAmount string
	seeded     bool
}

// View is a point-in-time copy of the state handed to templates.
type View struct {
	Accounts   []core.Account
	Categories []core.Category
	Errors     []string
	Success    string
	LastDate   string
	LastAmount string
}

func NewState() *State {
	return &State{}
}

// EnsureDefaults seeds the starter accounts and categories exactly once per
// session. Re-invocation is a no-op and never touches user-added items.
func (s *State) EnsureDefaults() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.seeded {
		return
	}
	s.seeded = true

	s.accounts = append(s.accounts,
		core.NewAccount("💵 Cash", decimal.Zero),
		core.NewAccount("🏦 Checking", decimal.Zero),
	)
	s.categories = append(s.categories,
		core.NewCategory("🍉", "Groceries", core.Expense),
		core.NewCategory("🍽️", "Eating out", core.Expense),
		core.NewCategory("🏠", "House", core.Expense),
		core.NewCategory("🔌", "Utilities", core.Expense),
		core.NewCategory("👔", "Salary", core.Income),
		core.NewCategory("💸", "Freelance", core.Income),
	)
}

// Render copies everything a template needs in one locked pass.
func (s *State) Render() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		Accounts:   make([]core.Account, 0, len(s.accounts)),
		Categories: make([]core.Category, 0, len(s.categories)),
		Errors:     append([]string(nil), s.errors...),
		Success:    s.success,
		LastDate:   s.lastDate,
		LastAmount: s.lastAmount,
	}
	for _, a := range s.accounts {
		c := *a
		c.Transactions = append([]core.Transaction(nil), a.Transactions...)
		v.Accounts = append(v.Accounts, c)
	}
	for _, c := range s.categories {
		v.Categories = append(v.Categories, *c)
	}
	return v
}

// SetErrors replaces the error list. Mutating handlers call this on every
// outcome, so stale errors from an earlier request never leak forward.
func (s *State) SetErrors(errs []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors = append([]string(nil), errs...)
}

// SetSuccess replaces the success message.
func (s *State) SetSuccess(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.success = msg
}

// RememberEntry retains form values across a failed transaction submit.
func (s *State) RememberEntry(date, amount string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastDate = date
	s.lastAmount = amount
}

// ClearEntry drops the retained form values after a successful submit.
func (s *State) ClearEntry() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastDate = ""
	s.lastAmount = ""
}

func (s *State) categoryNamesLocked() []string {
	names := make([]string, 0, len(s.categories))
	for _, c := range s.categories {
		names = append(names, c.Name)
	}
	return names
}

func (s *State) accountNamesLocked() []string {
	names := make([]string, 0, len(s.accounts))
	for _, a := range s.accounts {
		names = append(names, a.Name)
	}
	return names
}

// RecordTransaction appends t to the account with the given name. The append
// and the balance update happen under one lock, so there is no partial write.
func (s *State) RecordTransaction(accountName string, t core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.Name == accountName {
			a.Append(t)
			return nil
		}
	}
	return ErrAccountNotFound
}

// AddAccount validates the name and creates an account with the opening
// balance.
func (s *State) AddAccount(name string, balance decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := core.ValidateName(name, s.accountNamesLocked(), "Account"); err != nil {
		return err
	}
	s.accounts = append(s.accounts, core.NewAccount(name, balance))
	return nil
}

// AddCategory validates the name and creates a category of the given type.
func (s *State) AddCategory(icon, name string, typ core.TxnType) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := core.ValidateName(name, s.categoryNamesLocked(), "Category"); err != nil {
		return err
	}
	s.categories = append(s.categories, core.NewCategory(icon, name, typ))
	return nil
}

// Account returns a copy of the account with the given id.
func (s *State) Account(id string) (core.Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.ID == id {
			return *a, true
		}
	}
	return core.Account{}, false
}

// Category returns a copy of the category with the given id.
func (s *State) Category(id string) (core.Category, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.categories {
		if c.ID == id {
			return *c, true
		}
	}
	return core.Category{}, false
}

// UpdateAccount renames the account and moves its balance to the given
// target. A balance change is recorded as an adjustment transaction for the
// delta, keeping the balance equal to the opening balance plus the sum of
// recorded amounts.
func (s *State) UpdateAccount(id, name string, balance decimal.Decimal, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var acct *core.Account
	for _, a := range s.accounts {
		if a.ID == id {
			acct = a
			break
		}
	}
	if acct == nil {
		return ErrAccountNotFound
	}

	if name != acct.Name {
		if err := core.ValidateName(name, s.accountNamesLocked(), "Account"); err != nil {
			return err
		}
		acct.Name = name
	}

	if delta := balance.Sub(acct.Balance); !delta.IsZero() {
		typ := core.Income
		if delta.IsNegative() {
			typ = core.Expense
		}
		acct.Append(core.Transaction{
			ID:       uuid.NewString(),
			Date:     core.Today(now),
			Amount:   delta,
			Category: "Adjustment",
			Note:     "Manual balance edit",
			Type:     typ,
		})
	}
	return nil
}

// UpdateCategory renames the category with the given id.
func (s *State) UpdateCategory(id, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var cat *core.Category
	for _, c := range s.categories {
		if c.ID == id {
			cat = c
			break
		}
	}
	if cat == nil {
		return ErrCategoryNotFound
	}
	if name == cat.Name {
		return nil
	}
	if err := core.ValidateName(name, s.categoryNamesLocked(), "Category"); err != nil {
		return err
	}
	cat.Name = name
	return nil
}

// DeleteAccount removes the account with the given id along with its
// transactions, returning its name for the confirmation message.
func (s *State) DeleteAccount(id string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, a := range s.accounts {
		if a.ID == id {
			s.accounts = append(s.accounts[:i], s.accounts[i+1:]...)
			return a.Name, nil
		}
	}
	return "", ErrAccountNotFound
}

// DeleteCategory removes the category with the given id, returning its name.
func (s *State) DeleteCategory(id string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.categories {
		if c.ID == id {
			s.categories = append(s.categories[:i], s.categories[i+1:]...)
			return c.Name, nil
		}
	}
	return "", ErrCategoryNotFound
}

// MonthSpend sums expense amounts dated in (year, month) across all
// accounts, computed under the state lock.
func (s *State) MonthSpend(year int, month time.Month) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return core.MonthSpend(s.accounts, year, month)
}

// Expenses returns value copies of the expense transactions of all accounts
// in entry order, computed under the state lock.
func (s *State) Expenses() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return core.Expenses(s.accounts)
}

// TransactionCount totals recorded transactions across all accounts.
func (s *State) TransactionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, a := range s.accounts {
		n += len(a.Transactions)
	}
	return n
}
