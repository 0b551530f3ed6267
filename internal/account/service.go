package account

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/gabriel-x/ai-app-scaffold/internal/user"
)

// ErrInvalidName is returned when a profile update carries no usable name.
var ErrInvalidName = errors.New("name required")

// ProfileStore is the part of user.Store the account endpoints need.
type ProfileStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	UpdateByID(ctx context.Context, id uuid.UUID, patch user.Patch) (*user.User, error)
}

// Service reads and updates the profile of the authenticated user.
type Service struct {
	users ProfileStore
}

func NewService(users ProfileStore) *Service {
	return &Service{users: users}
}

// GetProfile returns the user with the given id or user.ErrNotFound.
func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	return s.users.GetByID(ctx, userID)
}

// UpdateName trims name and stores it. A nil or blank name is ErrInvalidName.
func (s *Service) UpdateName(ctx context.Context, userID uuid.UUID, name *string) (*user.User, error) {
	if name == nil {
		return nil, ErrInvalidName
	}
	trimmed := strings.TrimSpace(*name)
	if trimmed == "" {
		return nil, ErrInvalidName
	}

	return s.users.UpdateByID(ctx, userID, user.Patch{Name: &trimmed})
}
