package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillType tells whether a bill adds to or takes from its wallet.
type BillType string

const (
	BillTypeIncome  BillType = "income"
	BillTypeExpense BillType = "expense"
)

// Valid reports whether t is one of the known bill types.
func (t BillType) Valid() bool {
	return t == BillTypeIncome || t == BillTypeExpense
}

// Bill represents a single income or expense transaction.
type Bill struct {
	// ID is the unique identifier for the bill (UUID format).
	// It is generated when the bill is first saved.
	ID string

	// Type is either income or expense.
	Type BillType

	// Value is the unsigned amount of the bill.
	Value decimal.Decimal

	// Date is when the transaction happened.
	Date time.Time

	// DueDate is optional. A bill whose due date is before Date is expired.
	DueDate *time.Time

	// Paid bills have been folded into their wallet's balance.
	Paid bool

	Origin      string
	Title       string
	Description string
	Category    string

	// Tags are free-text labels, kept in the order they were given.
	Tags []string

	// WalletID is the wallet this bill belongs to.
	WalletID int64

	// CardID optionally points at the wallet card used for the bill.
	CardID *int64
}

// Expired reports whether the bill has a due date earlier than its date.
func (b *Bill) Expired() bool {
	return b.DueDate != nil && b.DueDate.Before(b.Date)
}
