package user

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// Store keeps users in memory for the lifetime of the process.
// Users are keyed by email; a secondary index resolves ids.
// All methods are safe for concurrent use and return copies.
type Store struct {
	mu      sync.RWMutex
	byEmail map[string]*User
	byID    map[uuid.UUID]*User
	now     func() time.Time
}

func NewStore() *Store {
	return &Store{
		byEmail: make(map[string]*User),
		byID:    make(map[uuid.UUID]*User),
		now:     time.Now,
	}
}

// Create inserts u keyed by its email, or fails with ErrDuplicateEmail if the
// email is taken. The check and the insert happen under one lock.
// A zero ID is replaced with a fresh random UUID.
func (s *Store) Create(ctx context.Context, u User) (*User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[u.Email]; exists {
		return nil, ErrDuplicateEmail
	}

	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if _, exists := s.byID[u.ID]; exists {
		return nil, errors.New("user id collision")
	}

	now := s.now()
	u.CreatedAt = now
	u.UpdatedAt = now

	stored := u
	s.byEmail[stored.Email] = &stored
	s.byID[stored.ID] = &stored

	out := stored
	return &out, nil
}

// GetByEmail retrieves a user by email
func (s *Store) GetByEmail(ctx context.Context, email string) (*User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	out := *u
	return &out, nil
}

// GetByID retrieves a user by ID
func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *u
	return &out, nil
}

// UpdateByID applies patch to the user with the given id and returns the result.
// Email, id and password hash are immutable through this path.
func (s *Store) UpdateByID(ctx context.Context, id uuid.UUID, patch Patch) (*User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}

	next := *u
	if patch.Name != nil {
		next.Name = *patch.Name
	}
	next.UpdatedAt = s.now()

	s.byEmail[next.Email] = &next
	s.byID[next.ID] = &next

	out := next
	return &out, nil
}

// Size returns the number of stored users.
func (s *Store) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byEmail)
}
