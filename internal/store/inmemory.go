package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
)

type memoryStore struct {
	mu           sync.Mutex
	customers    map[int64]Customer
	accounts     map[int64]Account
	transactions []Transaction

	customerSeq    int64
	accountSeq     int64
	transactionSeq int64
}

// NewInMemory creates a concurrency-safe in-memory store for tests and local
// development. Begin serializes units of work behind the store mutex, so at
// most one is in flight at a time; everything else sees committed state only.
func NewInMemory() Store {
	return &memoryStore{
		customers: make(map[int64]Customer),
		accounts:  make(map[int64]Account),
	}
}

func (s *memoryStore) GetCustomer(_ context.Context, id int64) (Customer, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.customers[id]
	return c, ok, nil
}

func (s *memoryStore) GetAccount(_ context.Context, id int64) (Account, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	return a, ok, nil
}

func (s *memoryStore) AccountsByOwner(_ context.Context, ownerID int64) ([]Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var accounts []Account
	for id := int64(1); id <= s.accountSeq; id++ {
		if a, ok := s.accounts[id]; ok && a.OwnerID == ownerID {
			accounts = append(accounts, a)
		}
	}
	return accounts, nil
}

func (s *memoryStore) TransactionsByAccount(_ context.Context, accountID int64) ([]Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var transactions []Transaction
	for _, t := range s.transactions {
		if t.OriginAccountID == accountID || t.DestinationAccountID == accountID {
			transactions = append(transactions, t)
		}
	}
	return transactions, nil
}

func (s *memoryStore) Begin(_ context.Context) (Tx, error) {
	s.mu.Lock()
	return &memoryTx{
		store:    s,
		balances: make(map[int64]decimal.Decimal),
	}, nil
}

// memoryTx stages mutations and applies them all at Commit while holding the
// store mutex, so a unit of work is all-or-nothing exactly like a database
// transaction.
type memoryTx struct {
	store *memoryStore
	done  bool

	customers    []Customer
	accounts     []Account
	balances     map[int64]decimal.Decimal
	transactions []Transaction
}

func (t *memoryTx) GetCustomer(_ context.Context, id int64) (Customer, bool, error) {
	for _, c := range t.customers {
		if c.ID == id {
			return c, true, nil
		}
	}
	c, ok := t.store.customers[id]
	return c, ok, nil
}

func (t *memoryTx) LockAccounts(_ context.Context, ids ...int64) (map[int64]Account, error) {
	accounts := make(map[int64]Account, len(ids))
	for _, id := range ids {
		if a, ok := t.lookupAccount(id); ok {
			accounts[id] = a
		}
	}
	return accounts, nil
}

func (t *memoryTx) lookupAccount(id int64) (Account, bool) {
	a, ok := t.store.accounts[id]
	if !ok {
		for _, staged := range t.accounts {
			if staged.ID == id {
				a, ok = staged, true
				break
			}
		}
	}
	if !ok {
		return Account{}, false
	}
	if balance, staged := t.balances[id]; staged {
		a.Balance = balance
	}
	return a, true
}

func (t *memoryTx) InsertCustomer(_ context.Context, customer Customer) (int64, error) {
	t.store.customerSeq++
	customer.ID = t.store.customerSeq
	t.customers = append(t.customers, customer)
	return customer.ID, nil
}

func (t *memoryTx) InsertAccount(_ context.Context, account Account) (int64, error) {
	t.store.accountSeq++
	account.ID = t.store.accountSeq
	t.accounts = append(t.accounts, account)
	return account.ID, nil
}

func (t *memoryTx) UpdateAccountBalance(_ context.Context, id int64, balance decimal.Decimal) error {
	if _, ok := t.lookupAccount(id); !ok {
		return fmt.Errorf("account %d not found", id)
	}
	t.balances[id] = balance
	return nil
}

func (t *memoryTx) InsertTransaction(_ context.Context, transaction Transaction) (int64, error) {
	t.store.transactionSeq++
	transaction.ID = t.store.transactionSeq
	t.transactions = append(t.transactions, transaction)
	return transaction.ID, nil
}

func (t *memoryTx) Commit(_ context.Context) error {
	if t.done {
		return fmt.Errorf("unit of work already finished")
	}
	for _, c := range t.customers {
		t.store.customers[c.ID] = c
	}
	for _, a := range t.accounts {
		t.store.accounts[a.ID] = a
	}
	for id, balance := range t.balances {
		a := t.store.accounts[id]
		a.Balance = balance
		t.store.accounts[id] = a
	}
	t.store.transactions = append(t.store.transactions, t.transactions...)
	t.done = true
	t.store.mu.Unlock()
	return nil
}

func (t *memoryTx) Rollback(_ context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	t.store.mu.Unlock()
	return nil
}
