package store

import (
	"context"

	"github.com/shopspring/decimal"
)

// Store exposes durable keyed access to customers, accounts and transactions.
// Point lookups report absence through the bool return instead of an error.
// Reads see committed state only.
type Store interface {
	GetCustomer(ctx context.Context, id int64) (Customer, bool, error)
	GetAccount(ctx context.Context, id int64) (Account, bool, error)
	AccountsByOwner(ctx context.Context, ownerID int64) ([]Account, error)
	TransactionsByAccount(ctx context.Context, accountID int64) ([]Transaction, error)

	// Begin opens a unit of work. Mutations registered on the returned Tx
	// become visible only after Commit; Rollback discards all of them.
	Begin(ctx context.Context) (Tx, error)
}

// Tx is a single unit of work. Commit applies every registered mutation
// atomically and is the sole durability boundary; a Tx abandoned without
// Commit leaves stored state untouched. Rollback after Commit is a no-op, so
// callers can defer it unconditionally.
type Tx interface {
	GetCustomer(ctx context.Context, id int64) (Customer, bool, error)

	// LockAccounts fetches the requested accounts with exclusive locks so
	// concurrent transfers touching the same account serialize while
	// transfers on disjoint accounts proceed independently. Ids with no
	// matching account are simply absent from the result map.
	LockAccounts(ctx context.Context, ids ...int64) (map[int64]Account, error)

	InsertCustomer(ctx context.Context, customer Customer) (int64, error)
	InsertAccount(ctx context.Context, account Account) (int64, error)
	UpdateAccountBalance(ctx context.Context, id int64, balance decimal.Decimal) error
	InsertTransaction(ctx context.Context, transaction Transaction) (int64, error)

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
