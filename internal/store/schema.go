package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS customers (
    id   BIGSERIAL PRIMARY KEY,
    name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS accounts (
    id       BIGSERIAL PRIMARY KEY,
    owner_id BIGINT NOT NULL REFERENCES customers (id),
    balance  NUMERIC(30, 8) NOT NULL CHECK (balance >= 0)
);

CREATE TABLE IF NOT EXISTS transactions (
    id                     BIGSERIAL PRIMARY KEY,
    origin_account_id      BIGINT NOT NULL REFERENCES accounts (id),
    destination_account_id BIGINT NOT NULL REFERENCES accounts (id),
    amount                 NUMERIC(30, 8) NOT NULL CHECK (amount > 0),
    created_at             TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS accounts_owner_idx ON accounts (owner_id);
CREATE INDEX IF NOT EXISTS transactions_origin_idx ON transactions (origin_account_id);
CREATE INDEX IF NOT EXISTS transactions_destination_idx ON transactions (destination_account_id);
`

// EnsureSchema creates the ledger tables when they are missing. The DDL is
// idempotent so repeated startups are safe.
func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	_, err := db.Exec(ctx, schema)
	return err
}
