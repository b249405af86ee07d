// Package memory provides an in-memory user store for the self-contained
// backend mode.
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/PUSHKARDEORE/Finalytics/internal/auth"
)

type Store struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]*auth.User
	byEmail map[string]*auth.User
}

func New() *Store {
	return &Store{
		byID:    make(map[uuid.UUID]*auth.User),
		byEmail: make(map[string]*auth.User),
	}
}

func (s *Store) CreateUser(_ context.Context, u *auth.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(u.Email)
	if _, ok := s.byEmail[email]; ok {
		return auth.ErrEmailTaken
	}

	cp := *u
	s.byID[u.ID] = &cp
	s.byEmail[email] = &cp

	return nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*auth.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, auth.ErrUserNotFound
	}

	cp := *u

	return &cp, nil
}

func (s *Store) GetUserByID(_ context.Context, id uuid.UUID) (*auth.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byID[id]
	if !ok {
		return nil, auth.ErrUserNotFound
	}

	cp := *u

	return &cp, nil
}
