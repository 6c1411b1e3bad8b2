// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, issuing and refreshing
// JWTs, identity resolution, and account deletion.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fluxpad/fluxpad/internal/common"
	"github.com/fluxpad/fluxpad/internal/server/auth"
	"github.com/fluxpad/fluxpad/internal/server/config"
	"github.com/fluxpad/fluxpad/internal/server/models"
	"github.com/fluxpad/fluxpad/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// UserService provides authentication-related operations:
//   - Register: create users and mint their first token pair
//   - Login: verify credentials and mint tokens
//   - RefreshAccessToken: mint a new access token from a refresh token
//   - GetByID: resolve the identity behind a validated token
//   - Delete: permanently remove an account
//
// Tokens are stateless: no per-session server state exists, and refresh
// tokens are not rotated or individually revocable. A deleted user's
// still-valid token fails at identity resolution, not at the token layer.
type UserService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories, server config,
// and the signing secret loaded at startup.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, jwtSecret []byte) *UserService {
	return &UserService{
		db:                           db,
		repomanager:                  m,
		jwtSecret:                    jwtSecret,
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

// AccessTokenTTL reports the configured access-token lifetime.
func (s *UserService) AccessTokenTTL() time.Duration {
	return s.accessTokenValidityDuration
}

// Register hashes the password, creates the user, and issues a token pair.
// A duplicate email yields common.ErrorDuplicateEmail with no record created.
func (s *UserService) Register(ctx context.Context, email, password, fullName string) (*models.User, *TokenPair, error) {
	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return nil, nil, common.ErrorInternal
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		FullName:     fullName,
		PasswordHash: passwordHash,
	}

	repo := s.repomanager.Users(s.db)
	user, err = repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorDuplicateEmail) {
			return nil, nil, common.ErrorDuplicateEmail
		}
		return nil, nil, fmt.Errorf("error creating user: %w", err)
	}

	pair, err := s.generateTokenPair(user)
	if err != nil {
		return nil, nil, err
	}

	return user, pair, nil
}

// Login verifies the credentials and, on success, returns the user and a new
// TokenPair. The failure is the same value whether the email is unknown or
// the password is wrong; the unknown-email path still burns a bcrypt
// comparison so the two cases cost about the same.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, *TokenPair, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			auth.BurnPasswordCheck(password)
			return nil, nil, common.ErrorInvalidCredentials
		}
		return nil, nil, common.ErrorInternal
	}

	if !auth.CheckPasswordHash(user.PasswordHash, password) {
		return nil, nil, common.ErrorInvalidCredentials
	}

	pair, err := s.generateTokenPair(user)
	if err != nil {
		return nil, nil, err
	}

	return user, pair, nil
}

// RefreshAccessToken validates the refresh token and mints a fresh access
// token for the same subject. The refresh token itself is neither rotated
// nor invalidated; expiry is its only termination path.
func (s *UserService) RefreshAccessToken(refreshToken string) (string, error) {
	claims, err := auth.ParseToken(refreshToken, auth.TokenKindRefresh, s.jwtSecret)
	if err != nil {
		return "", err
	}

	access, err := auth.GenerateToken(claims.UserID, claims.Email, auth.TokenKindAccess, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}

	return access, nil
}

// GetByID resolves a user by identifier. This is the store-resolution step
// that protected endpoints run after token validation; for a deleted subject
// it returns common.ErrorNotFound even though the token itself still parses.
func (s *UserService) GetByID(ctx context.Context, userID string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	return user, nil
}

// Delete permanently removes the user record. Dataset and query rows cascade
// at the storage layer.
func (s *UserService) Delete(ctx context.Context, userID string) error {
	repo := s.repomanager.Users(s.db)
	err := repo.Delete(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}
	return nil
}

// --- helpers below ---

func (s *UserService) generateTokenPair(user *models.User) (*TokenPair, error) {
	access, err := auth.GenerateToken(user.ID, user.Email, auth.TokenKindAccess, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := auth.GenerateToken(user.ID, user.Email, auth.TokenKindRefresh, s.jwtSecret, s.refreshTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
