package auth

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// User is an authentication account. It is not related to the user_id field
// on transactions, which is an opaque descriptor of the transaction itself.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Identity is the verified acting identity attached to a request. Every
// authenticated caller sees all transactions; there is no row-level access
// control.
type Identity struct {
	UserID uuid.UUID
	Email  string
}

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")

	// ErrNotAuthorized covers missing, invalid and expired credentials, and
	// is surfaced distinctly from validation errors.
	ErrNotAuthorized = errors.New("not authorized")
)
