package store

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PostgresStore persists the ledger in PostgreSQL. Monetary values live in
// NUMERIC columns and cross the wire as text so no precision is lost.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgres constructs a Postgres-backed store.
func NewPostgres(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// GetCustomer fetches a customer by id.
func (s *PostgresStore) GetCustomer(ctx context.Context, id int64) (Customer, bool, error) {
	var c Customer
	err := s.db.QueryRow(ctx, `SELECT id, name FROM customers WHERE id = $1`, id).Scan(&c.ID, &c.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return Customer{}, false, nil
	}
	if err != nil {
		return Customer{}, false, err
	}
	return c, true, nil
}

// GetAccount fetches an account by id.
func (s *PostgresStore) GetAccount(ctx context.Context, id int64) (Account, bool, error) {
	row := s.db.QueryRow(ctx, `SELECT id, owner_id, balance::text FROM accounts WHERE id = $1`, id)
	account, err := scanAccount(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Account{}, false, nil
	}
	if err != nil {
		return Account{}, false, err
	}
	return account, true, nil
}

// AccountsByOwner returns every account owned by the given customer.
func (s *PostgresStore) AccountsByOwner(ctx context.Context, ownerID int64) ([]Account, error) {
	rows, err := s.db.Query(ctx, `SELECT id, owner_id, balance::text FROM accounts WHERE owner_id = $1 ORDER BY id`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

// TransactionsByAccount returns every transaction where the account appears as
// origin or destination, oldest first.
func (s *PostgresStore) TransactionsByAccount(ctx context.Context, accountID int64) ([]Transaction, error) {
	const query = `
        SELECT id, origin_account_id, destination_account_id, amount::text, created_at
        FROM transactions
        WHERE origin_account_id = $1 OR destination_account_id = $1
        ORDER BY id`
	rows, err := s.db.Query(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []Transaction
	for rows.Next() {
		var t Transaction
		var amount string
		if err := rows.Scan(&t.ID, &t.OriginAccountID, &t.DestinationAccountID, &amount, &t.Timestamp); err != nil {
			return nil, err
		}
		if t.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("parse transaction amount: %w", err)
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

// Begin opens an explicit database transaction as the unit of work.
func (s *PostgresStore) Begin(ctx context.Context) (Tx, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	return &pgxTx{tx: tx}, nil
}

type pgxTx struct {
	tx pgx.Tx
}

func (t *pgxTx) GetCustomer(ctx context.Context, id int64) (Customer, bool, error) {
	var c Customer
	err := t.tx.QueryRow(ctx, `SELECT id, name FROM customers WHERE id = $1`, id).Scan(&c.ID, &c.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return Customer{}, false, nil
	}
	if err != nil {
		return Customer{}, false, err
	}
	return c, true, nil
}

// LockAccounts acquires row locks in ascending id order so two transfers over
// the same pair can never deadlock each other.
func (t *pgxTx) LockAccounts(ctx context.Context, ids ...int64) (map[int64]Account, error) {
	ordered := append([]int64(nil), ids...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i] < ordered[j] })

	accounts := make(map[int64]Account, len(ordered))
	for _, id := range ordered {
		row := t.tx.QueryRow(ctx, `SELECT id, owner_id, balance::text FROM accounts WHERE id = $1 FOR UPDATE`, id)
		account, err := scanAccount(row)
		if errors.Is(err, pgx.ErrNoRows) {
			continue
		}
		if err != nil {
			return nil, err
		}
		accounts[account.ID] = account
	}
	return accounts, nil
}

func (t *pgxTx) InsertCustomer(ctx context.Context, customer Customer) (int64, error) {
	var id int64
	err := t.tx.QueryRow(ctx, `INSERT INTO customers (name) VALUES ($1) RETURNING id`, customer.Name).Scan(&id)
	return id, err
}

func (t *pgxTx) InsertAccount(ctx context.Context, account Account) (int64, error) {
	var id int64
	err := t.tx.QueryRow(ctx, `INSERT INTO accounts (owner_id, balance) VALUES ($1, $2::numeric) RETURNING id`,
		account.OwnerID, account.Balance.String()).Scan(&id)
	return id, err
}

func (t *pgxTx) UpdateAccountBalance(ctx context.Context, id int64, balance decimal.Decimal) error {
	cmd, err := t.tx.Exec(ctx, `UPDATE accounts SET balance = $1::numeric WHERE id = $2`, balance.String(), id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("account %d not found", id)
	}
	return nil
}

func (t *pgxTx) InsertTransaction(ctx context.Context, transaction Transaction) (int64, error) {
	const query = `
        INSERT INTO transactions (origin_account_id, destination_account_id, amount, created_at)
        VALUES ($1, $2, $3::numeric, $4) RETURNING id`
	var id int64
	err := t.tx.QueryRow(ctx, query,
		transaction.OriginAccountID,
		transaction.DestinationAccountID,
		transaction.Amount.String(),
		transaction.Timestamp.UTC()).Scan(&id)
	return id, err
}

func (t *pgxTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *pgxTx) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return err
	}
	return nil
}

func scanAccount(row pgx.Row) (Account, error) {
	var a Account
	var balance string
	if err := row.Scan(&a.ID, &a.OwnerID, &balance); err != nil {
		return Account{}, err
	}
	var err error
	if a.Balance, err = decimal.NewFromString(balance); err != nil {
		return Account{}, fmt.Errorf("parse account balance: %w", err)
	}
	return a, nil
}
