package account

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bankcore/bank_core/internal/apperr"
	"github.com/bankcore/bank_core/internal/store"
)

// MaxAmount is the largest monetary amount a single request may carry. It is
// enforced at the HTTP boundary; balances may grow past it through repeated
// deposits.
var MaxAmount = decimal.New(1, 15)

// Service validates and executes account creation and fund transfers against
// the ledger store. Every operation runs inside exactly one unit of work.
type Service struct {
	store store.Store
}

// NewService builds the account ledger engine.
func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// Create opens an account for an existing customer with a strictly positive
// opening balance and returns the new account id.
func (s *Service) Create(ctx context.Context, ownerID int64, initialAmount decimal.Decimal) (int64, error) {
	tx, err := s.store.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, ok, err := tx.GetCustomer(ctx, ownerID); err != nil {
		return 0, err
	} else if !ok {
		return 0, apperr.NewBusiness(apperr.MsgCustomerNotFound)
	}

	if initialAmount.Sign() <= 0 {
		return 0, apperr.NewBusiness(apperr.MsgInvalidAmount)
	}

	id, err := tx.InsertAccount(ctx, store.Account{OwnerID: ownerID, Balance: initialAmount})
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return id, nil
}

// Get looks up an account. A missing account is reported through the bool
// return, never as an error.
func (s *Service) Get(ctx context.Context, id int64) (store.Account, bool, error) {
	return s.store.GetAccount(ctx, id)
}

// TransferHistory returns every transaction where the account appears as
// origin or destination; the slice is empty when there are none.
func (s *Service) TransferHistory(ctx context.Context, accountID int64) ([]store.Transaction, error) {
	return s.store.TransactionsByAccount(ctx, accountID)
}

// Transfer moves amount from the origin account to the destination account,
// recording a transaction and committing both balance changes atomically.
//
// A same-account transfer fails immediately. Every other violation is
// collected before failing so the caller sees all of them at once, e.g. both
// accounts missing plus a zero amount yields three messages.
func (s *Service) Transfer(ctx context.Context, originID, destinationID int64, amount decimal.Decimal) error {
	if originID == destinationID {
		return apperr.NewBusiness(apperr.MsgSameAccount)
	}

	tx, err := s.store.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	accounts, err := tx.LockAccounts(ctx, originID, destinationID)
	if err != nil {
		return err
	}
	origin, originOK := accounts[originID]
	destination, destinationOK := accounts[destinationID]

	var messages []string
	if !originOK {
		messages = append(messages, apperr.MsgOriginNotFound)
	}
	if !destinationOK {
		messages = append(messages, apperr.MsgDestinationNotFound)
	}
	if originOK && origin.Balance.LessThan(amount) {
		messages = append(messages, apperr.MsgInsufficientFunds)
	}
	if amount.Sign() <= 0 {
		messages = append(messages, apperr.MsgInvalidAmount)
	}
	if len(messages) > 0 {
		return apperr.NewBusiness(messages...)
	}

	if err := tx.UpdateAccountBalance(ctx, originID, origin.Balance.Sub(amount)); err != nil {
		return err
	}
	if err := tx.UpdateAccountBalance(ctx, destinationID, destination.Balance.Add(amount)); err != nil {
		return err
	}
	if _, err := tx.InsertTransaction(ctx, store.Transaction{
		OriginAccountID:      originID,
		DestinationAccountID: destinationID,
		Amount:               amount,
		Timestamp:            time.Now().UTC(),
	}); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
