package core

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	Expense TxnType = "expense"
	Income  TxnType = "income"
)

const (
	NameMinLength = 1
	NameMaxLength = 250
)

const dateLayout = "2006-01-02"

type (
	// TxnType discriminates money leaving an account from money entering it.
	TxnType string

	Date struct {
		time.Time
	}

	// Transaction is immutable once recorded. Amount carries the sign rule:
	// negative for expenses, positive for income.
	Transaction struct {
		ID       string
		Date     Date
		Amount   decimal.Decimal
		Category string
		Note     string
		Type     TxnType
	}

	// TransactionDetails holds raw form input before validation.
	TransactionDetails struct {
		Date   string
		Amount string

		Category string
		Note     string
		Type     string
	}

	Account struct {
		ID           string
		Name         string
		Balance      decimal.Decimal
		Transactions []Transaction
	}

	Category struct {
		ID   string
		Icon string
		Name string
		Type TxnType
	}
)

var (
	ErrEmptyDate     = errors.New("The date cannot be empty.")
	ErrInvalidDate   = errors.New("The date is not a valid calendar date.")
	ErrFutureDate    = errors.New("The date cannot be in the future.")
	ErrEmptyAmount   = errors.New("The amount cannot be empty.")
	ErrInvalidAmount = errors.New("The amount is not a valid number.")
	ErrInvalidType   = errors.New("The transaction type must be expense or income.")
)

// ParseDate parses a YYYY-MM-DD form value into a date-only Date.
func ParseDate(s string) (Date, error) {
	if s == "" {
		return Date{}, ErrEmptyDate
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// NewDate creates a Date from year, month, day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Today truncates now to its calendar date.
func Today(now time.Time) Date {
	y, m, d := now.Date()
	return NewDate(y, m, d)
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

// InMonth reports whether d falls inside the given calendar month.
func (d Date) InMonth(year int, month time.Month) bool {
	return d.Time.Year() == year && d.Time.Month() == month
}

// ValidateNotFuture rejects dates after now's calendar date. The comparison
// is date-only, so submissions near midnight never trip on the time of day.
func ValidateNotFuture(d Date, now time.Time) error {
	if d.Time.After(Today(now).Time) {
		return ErrFutureDate
	}
	return nil
}

// ValidateName checks length bounds and case-sensitive uniqueness against
// existing names. kind names the record in the returned message
// ("Account", "Category").
func ValidateName(name string, existing []string, kind string) error {
	if n := utf8.RuneCountInString(name); n < NameMinLength || n > NameMaxLength {
		return fmt.Errorf("%s has %d characters. The name must be between 1 and 250 characters.", kind, n)
	}
	for _, e := range existing {
		if e == name {
			return fmt.Errorf("%s name must be unique.", kind)
		}
	}
	return nil
}

// NewTransaction validates details against now and builds the transaction,
// applying the sign rule to the amount.
func NewTransaction(details TransactionDetails, now time.Time) (Transaction, error) {
	date, err := ParseDate(details.Date)
	if err != nil {
		return Transaction{}, err
	}
	if err := ValidateNotFuture(date, now); err != nil {
		return Transaction{}, err
	}
	amount, err := ParseAmount(details.Amount)
	if err != nil {
		return Transaction{}, err
	}
	typ := TxnType(details.Type)
	switch typ {
	case Expense, Income:
	default:
		return Transaction{}, ErrInvalidType
	}
	return Transaction{
		ID:       uuid.NewString(),
		Date:     date,
		Amount:   SignAmount(amount, typ),
		Category: details.Category,
		Note:     details.Note,
		Type:     typ,
	}, nil
}

// NewAccount creates an account with the given opening balance.
func NewAccount(name string, balance decimal.Decimal) *Account {
	return &Account{ID: uuid.NewString(), Name: name, Balance: balance}
}

// Append records t and moves the balance in one step, so the balance never
// drifts from the opening balance plus the sum of recorded amounts.
func (a *Account) Append(t Transaction) {
	a.Transactions = append(a.Transactions, t)
	a.Balance = a.Balance.Add(t.Amount)
}

func NewCategory(icon, name string, typ TxnType) *Category {
	return &Category{ID: uuid.NewString(), Icon: icon, Name: name, Type: typ}
}
