// Package postgres implements the user repository over Postgres.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/PUSHKARDEORE/Finalytics/internal/auth"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateUser(ctx context.Context, u *auth.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
	`

	if _, err := s.db.ExecContext(ctx, query, u.ID, u.Email, u.PasswordHash, u.CreatedAt); err != nil {
		return fmt.Errorf("creating user: %w", err)
	}

	return nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*auth.User, error) {
	query := `SELECT id, email, password_hash, created_at FROM users WHERE lower(email) = lower($1)`

	return s.scanUser(s.db.QueryRowContext(ctx, query, email))
}

func (s *Store) GetUserByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	query := `SELECT id, email, password_hash, created_at FROM users WHERE id = $1`

	return s.scanUser(s.db.QueryRowContext(ctx, query, id))
}

func (s *Store) scanUser(row *sql.Row) (*auth.User, error) {
	var u auth.User

	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, auth.ErrUserNotFound
		}

		return nil, fmt.Errorf("scanning user: %w", err)
	}

	return &u, nil
}
