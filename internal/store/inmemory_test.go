package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestInMemoryCommitAppliesAllMutations(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()

	tx, err := s.Begin(ctx)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	ownerID, err := tx.InsertCustomer(ctx, Customer{Name: "Ada"})
	if err != nil {
		t.Fatalf("insert customer: %v", err)
	}
	accountID, err := tx.InsertAccount(ctx, Account{OwnerID: ownerID, Balance: decimal.NewFromInt(100)})
	if err != nil {
		t.Fatalf("insert account: %v", err)
	}
	if err := tx.Commit(ctx); err != nil {
		t.Fatalf("commit: %v", err)
	}

	customer, ok, err := s.GetCustomer(ctx, ownerID)
	if err != nil || !ok {
		t.Fatalf("customer not visible after commit: ok=%v err=%v", ok, err)
	}
	if customer.Name != "Ada" {
		t.Fatalf("unexpected customer name %q", customer.Name)
	}

	account, ok, err := s.GetAccount(ctx, accountID)
	if err != nil || !ok {
		t.Fatalf("account not visible after commit: ok=%v err=%v", ok, err)
	}
	if !account.Balance.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("unexpected balance %s", account.Balance)
	}
}

func TestInMemoryRollbackDiscardsEverything(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()
	accountID := SeedAccount(s, SeedCustomer(s, "Ada"), decimal.NewFromInt(50))

	tx, err := s.Begin(ctx)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if _, err := tx.InsertCustomer(ctx, Customer{Name: "ghost"}); err != nil {
		t.Fatalf("insert customer: %v", err)
	}
	if err := tx.UpdateAccountBalance(ctx, accountID, decimal.NewFromInt(1)); err != nil {
		t.Fatalf("update balance: %v", err)
	}
	if _, err := tx.InsertTransaction(ctx, Transaction{OriginAccountID: accountID, DestinationAccountID: accountID + 1, Amount: decimal.NewFromInt(1), Timestamp: time.Now()}); err != nil {
		t.Fatalf("insert transaction: %v", err)
	}
	if err := tx.Rollback(ctx); err != nil {
		t.Fatalf("rollback: %v", err)
	}

	account, _, _ := s.GetAccount(ctx, accountID)
	if !account.Balance.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("rollback leaked balance update: %s", account.Balance)
	}
	if transactions, _ := s.TransactionsByAccount(ctx, accountID); len(transactions) != 0 {
		t.Fatalf("rollback leaked %d transactions", len(transactions))
	}
}

func TestInMemoryRollbackAfterCommitIsNoop(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()

	tx, _ := s.Begin(ctx)
	id, _ := tx.InsertCustomer(ctx, Customer{Name: "Ada"})
	if err := tx.Commit(ctx); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if err := tx.Rollback(ctx); err != nil {
		t.Fatalf("rollback after commit: %v", err)
	}
	if _, ok, _ := s.GetCustomer(ctx, id); !ok {
		t.Fatalf("commit undone by rollback")
	}
}

func TestInMemoryTxSeesItsOwnWrites(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()

	tx, _ := s.Begin(ctx)
	ownerID, _ := tx.InsertCustomer(ctx, Customer{Name: "Ada"})
	if _, ok, _ := tx.GetCustomer(ctx, ownerID); !ok {
		t.Fatalf("staged customer invisible inside tx")
	}

	accountID, _ := tx.InsertAccount(ctx, Account{OwnerID: ownerID, Balance: decimal.NewFromInt(10)})
	if err := tx.UpdateAccountBalance(ctx, accountID, decimal.NewFromInt(7)); err != nil {
		t.Fatalf("update staged account: %v", err)
	}
	locked, err := tx.LockAccounts(ctx, accountID)
	if err != nil {
		t.Fatalf("lock accounts: %v", err)
	}
	if !locked[accountID].Balance.Equal(decimal.NewFromInt(7)) {
		t.Fatalf("staged balance not visible: %s", locked[accountID].Balance)
	}
	if err := tx.Commit(ctx); err != nil {
		t.Fatalf("commit: %v", err)
	}
}

func TestInMemoryTransactionsByAccountFilters(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()
	owner := SeedCustomer(s, "Ada")
	for i := 0; i < 4; i++ {
		SeedAccount(s, owner, decimal.NewFromInt(100))
	}
	amount := decimal.NewFromInt(5)
	now := time.Now().UTC()
	SeedTransaction(s, 1, 2, amount, now)
	SeedTransaction(s, 3, 1, amount, now)
	SeedTransaction(s, 2, 3, amount, now)
	SeedTransaction(s, 4, 2, amount, now)

	transactions, err := s.TransactionsByAccount(ctx, 3)
	if err != nil {
		t.Fatalf("transactions by account: %v", err)
	}
	if len(transactions) != 2 {
		t.Fatalf("expected 2 transactions touching account 3, got %d", len(transactions))
	}
	for _, trx := range transactions {
		if trx.OriginAccountID != 3 && trx.DestinationAccountID != 3 {
			t.Fatalf("transaction %d does not touch account 3", trx.ID)
		}
	}
}

func TestInMemorySerializesUnitsOfWork(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()
	accountID := SeedAccount(s, SeedCustomer(s, "Ada"), decimal.Zero)

	const workers = 20
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tx, err := s.Begin(ctx)
			if err != nil {
				t.Errorf("begin: %v", err)
				return
			}
			accounts, err := tx.LockAccounts(ctx, accountID)
			if err != nil {
				t.Errorf("lock: %v", err)
				_ = tx.Rollback(ctx)
				return
			}
			next := accounts[accountID].Balance.Add(decimal.NewFromInt(1))
			if err := tx.UpdateAccountBalance(ctx, accountID, next); err != nil {
				t.Errorf("update: %v", err)
				_ = tx.Rollback(ctx)
				return
			}
			if err := tx.Commit(ctx); err != nil {
				t.Errorf("commit: %v", err)
			}
		}()
	}
	wg.Wait()

	account, _, _ := s.GetAccount(ctx, accountID)
	if !account.Balance.Equal(decimal.NewFromInt(workers)) {
		t.Fatalf("lost updates: balance=%s want=%d", account.Balance, workers)
	}
}
