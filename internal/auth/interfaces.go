package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/gabriel-x/ai-app-scaffold/internal/user"
)

// TokenTypeRefresh tags refresh tokens. Access tokens carry no type.
const TokenTypeRefresh = "refresh"

// TokenClaims represents the claims carried by an access or refresh token
type TokenClaims struct {
	Subject   string
	Type      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// IsRefresh reports whether the claims belong to a refresh token.
func (c *TokenClaims) IsRefresh() bool {
	return c.Type == TokenTypeRefresh
}

// TokenService defines the interface for token creation and validation.
// Implementations include JWTService (HS256) and PasetoService (PASETO v4.local).
type TokenService interface {
	CreateToken(subject, tokenType string, duration time.Duration) (string, error)
	VerifyToken(tokenStr string) (*TokenClaims, error)
}

// PasswordHasher hashes and verifies user passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}

// UserStore is the part of user.Store the auth flow needs.
type UserStore interface {
	Create(ctx context.Context, u user.User) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
}
