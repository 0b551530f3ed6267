package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gabriel-x/ai-app-scaffold/internal/user"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotRefreshToken    = errors.New("token is not a refresh token")
)

// AuthTokens is the token pair returned by login and refresh
type AuthTokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Service handles authentication business logic
type Service struct {
	users                UserStore
	hasher               PasswordHasher
	tokens               TokenService
	accessTokenDuration  time.Duration
	refreshTokenDuration time.Duration
}

func NewService(
	users UserStore,
	hasher PasswordHasher,
	tokens TokenService,
	accessTokenDuration time.Duration,
	refreshTokenDuration time.Duration,
) *Service {
	return &Service{
		users:                users,
		hasher:               hasher,
		tokens:               tokens,
		accessTokenDuration:  accessTokenDuration,
		refreshTokenDuration: refreshTokenDuration,
	}
}

// Register creates a new user account. Input is expected to be validated by the caller.
// It fails with user.ErrDuplicateEmail if the email is taken.
func (s *Service) Register(ctx context.Context, email, password, name string) (*user.User, error) {
	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	newUser, err := s.users.Create(ctx, user.User{
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
	})
	if err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			return nil, user.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return newUser, nil
}

// Login authenticates a user and returns tokens.
// Unknown email and wrong password both yield ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (*AuthTokens, error) {
	existingUser, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !s.hasher.Verify(existingUser.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	tokens, err := s.generateTokens(existingUser.ID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	return tokens, nil
}

// RefreshAccessToken issues a new access token for a valid refresh token.
// The refresh token itself is returned unchanged.
func (s *Service) RefreshAccessToken(ctx context.Context, refreshToken string) (*AuthTokens, error) {
	claims, err := s.tokens.VerifyToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if !claims.IsRefresh() {
		return nil, ErrNotRefreshToken
	}

	accessToken, err := s.tokens.CreateToken(claims.Subject, "", s.accessTokenDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to create access token: %w", err)
	}

	return &AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// CurrentUser resolves the user behind an authenticated identity.
func (s *Service) CurrentUser(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	return s.users.GetByID(ctx, userID)
}

// generateTokens creates both access and refresh tokens
func (s *Service) generateTokens(subject string) (*AuthTokens, error) {
	accessToken, err := s.tokens.CreateToken(subject, "", s.accessTokenDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to create access token: %w", err)
	}

	refreshToken, err := s.tokens.CreateToken(subject, TokenTypeRefresh, s.refreshTokenDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to create refresh token: %w", err)
	}

	return &AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
