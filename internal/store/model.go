package store

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer is a registered account owner. Accounts reference it by id only.
type Customer struct {
	ID   int64
	Name string
}

// Account holds funds for a single customer. The balance is an exact decimal
// and never goes below zero outside an in-flight unit of work.
type Account struct {
	ID      int64
	OwnerID int64
	Balance decimal.Decimal
}

// Transaction is the immutable record of a completed transfer. The amount is
// always positive; direction is encoded by the origin/destination pair.
type Transaction struct {
	ID                   int64
	OriginAccountID      int64
	DestinationAccountID int64
	Amount               decimal.Decimal
	Timestamp            time.Time
}
