package database

import (
	"context"
	"database/sql"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS transactions (
		id           BIGINT PRIMARY KEY,
		date         TIMESTAMPTZ NOT NULL,
		amount       DOUBLE PRECISION NOT NULL,
		category     TEXT NOT NULL,
		status       TEXT NOT NULL,
		user_id      TEXT NOT NULL,
		user_profile TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions (date)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_user_id ON transactions (user_id)`,
	`CREATE TABLE IF NOT EXISTS users (
		id            UUID PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL
	)`,
}

// EnsureSchema creates the tables and indexes the stores expect if they do
// not exist yet. It is safe to call on every startup.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("applying schema statement: %w", err)
		}
	}
	return nil
}
