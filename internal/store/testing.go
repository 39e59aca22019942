package store

import (
	"time"

	"github.com/shopspring/decimal"
)

// SeedCustomer inserts a customer directly into an in-memory store, bypassing
// the unit of work. Test helper only.
func SeedCustomer(s Store, name string) int64 {
	mem, ok := s.(*memoryStore)
	if !ok {
		return 0
	}
	mem.mu.Lock()
	defer mem.mu.Unlock()
	mem.customerSeq++
	mem.customers[mem.customerSeq] = Customer{ID: mem.customerSeq, Name: name}
	return mem.customerSeq
}

// SeedAccount inserts an account directly into an in-memory store. Test
// helper only.
func SeedAccount(s Store, ownerID int64, balance decimal.Decimal) int64 {
	mem, ok := s.(*memoryStore)
	if !ok {
		return 0
	}
	mem.mu.Lock()
	defer mem.mu.Unlock()
	mem.accountSeq++
	mem.accounts[mem.accountSeq] = Account{ID: mem.accountSeq, OwnerID: ownerID, Balance: balance}
	return mem.accountSeq
}

// SeedTransaction appends a transaction record directly into an in-memory
// store. Test helper only.
func SeedTransaction(s Store, originID, destinationID int64, amount decimal.Decimal, ts time.Time) int64 {
	mem, ok := s.(*memoryStore)
	if !ok {
		return 0
	}
	mem.mu.Lock()
	defer mem.mu.Unlock()
	mem.transactionSeq++
	mem.transactions = append(mem.transactions, Transaction{
		ID:                   mem.transactionSeq,
		OriginAccountID:      originID,
		DestinationAccountID: destinationID,
		Amount:               amount,
		Timestamp:            ts,
	})
	return mem.transactionSeq
}
