package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Subscription represents a recurring charge such as a streaming plan.
// It has no relationship with wallets or bills.
type Subscription struct {
	ID        int64
	Title     string
	StartDate time.Time
	DueDate   time.Time
	Price     decimal.Decimal

	// Months is how long one subscription period lasts.
	Months int

	Expired   bool
	AutoRenew bool
}
