package customer

import (
	"context"
	"strings"

	"github.com/bankcore/bank_core/internal/apperr"
	"github.com/bankcore/bank_core/internal/store"
)

// Service manages the customer directory. It is thin by design: all storage
// is delegated to the ledger store.
type Service struct {
	store store.Store
}

// NewService builds a customer directory service.
func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// Create registers a customer with a trimmed, non-empty display name and
// returns the new customer id.
func (s *Service) Create(ctx context.Context, name string) (int64, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return 0, apperr.NewBusiness(apperr.MsgMissingName)
	}

	tx, err := s.store.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	id, err := tx.InsertCustomer(ctx, store.Customer{Name: trimmed})
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return id, nil
}

// Get looks up a customer. Absence is reported through the bool return.
func (s *Service) Get(ctx context.Context, id int64) (store.Customer, bool, error) {
	return s.store.GetCustomer(ctx, id)
}

// Accounts lists every account owned by the customer; empty when none.
func (s *Service) Accounts(ctx context.Context, customerID int64) ([]store.Account, error) {
	return s.store.AccountsByOwner(ctx, customerID)
}
