// Package services contains server-side business logic. This file implements
// AuthService, which registers users, validates credentials, and manages the
// session and password-reset lifecycles on top of the user store.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/userauth/internal/common"
	"github.com/dmitrijs2005/userauth/internal/logging"
	"github.com/dmitrijs2005/userauth/internal/server/auth"
	"github.com/dmitrijs2005/userauth/internal/server/config"
	"github.com/dmitrijs2005/userauth/internal/server/models"
	"github.com/dmitrijs2005/userauth/internal/server/repositories/users"
)

// AuthService is a stateless facade over users.Repository. It owns no
// data of its own; every mutation goes through the repository.
//
// Lookup misses in ValidLogin, CreateSession and GetUserFromSessionID are
// reported as zero values, never as errors, so that callers cannot tell an
// unknown email from a wrong password. Errors from those methods always
// mean the store itself failed.
type AuthService struct {
	repo       users.Repository
	logger     logging.Logger
	bcryptCost int
}

// NewAuthService constructs an AuthService using the user store and server config.
func NewAuthService(repo users.Repository, logger logging.Logger, cfg *config.Config) *AuthService {
	return &AuthService{
		repo:       repo,
		logger:     logger.With("module", "auth_service"),
		bcryptCost: cfg.BcryptCost,
	}
}

// RegisterUser creates a user with a salted hash of password.
// Returns common.ErrorAlreadyExists if the email is taken.
func (s *AuthService) RegisterUser(ctx context.Context, email, password string) (*models.User, error) {
	_, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		return nil, common.ErrorAlreadyExists
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, s.internal(ctx, "error searching user", err)
	}

	hash, err := s.hash(password)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.Create(ctx, email, hash)
	if err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, s.internal(ctx, "error creating user", err)
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID)
	return user, nil
}

// ValidLogin reports whether password matches the stored hash for email.
// Unknown emails yield false.
func (s *AuthService) ValidLogin(ctx context.Context, email, password string) (bool, error) {
	user, err := s.findByEmail(ctx, email)
	if err != nil || user == nil {
		return false, err
	}
	return auth.CheckPassword(user.HashedPassword, password), nil
}

// CreateSession issues a fresh session id for email, replacing any previous
// one. Unknown emails yield "".
func (s *AuthService) CreateSession(ctx context.Context, email string) (string, error) {
	user, err := s.findByEmail(ctx, email)
	if err != nil || user == nil {
		return "", err
	}

	sessionID := auth.NewSessionID()
	if err := s.repo.SetSessionID(ctx, user.ID, &sessionID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", nil
		}
		return "", s.internal(ctx, "error saving session", err)
	}

	s.logger.Info(ctx, "session created", "user_id", user.ID)
	return sessionID, nil
}

// GetUserFromSessionID returns the owner of sessionID, or nil when the id is
// empty or unknown.
func (s *AuthService) GetUserFromSessionID(ctx context.Context, sessionID string) (*models.User, error) {
	if sessionID == "" {
		return nil, nil
	}

	user, err := s.repo.FindBySessionID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		return nil, s.internal(ctx, "error searching session", err)
	}
	return user, nil
}

// DestroySession clears the session of userID.
// Returns common.ErrorNotFound if no such user exists.
func (s *AuthService) DestroySession(ctx context.Context, userID int64) error {
	if err := s.repo.SetSessionID(ctx, userID, nil); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return s.internal(ctx, "error clearing session", err)
	}

	s.logger.Info(ctx, "session destroyed", "user_id", userID)
	return nil
}

// GetResetPasswordToken issues a fresh reset token for email.
// Returns common.ErrorNotFound if the email is not registered.
func (s *AuthService) GetResetPasswordToken(ctx context.Context, email string) (string, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorNotFound
		}
		return "", s.internal(ctx, "error searching user", err)
	}

	token := auth.NewResetToken()
	if err := s.repo.SetResetToken(ctx, user.ID, token); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorNotFound
		}
		return "", s.internal(ctx, "error saving reset token", err)
	}

	s.logger.Info(ctx, "reset token issued", "user_id", user.ID)
	return token, nil
}

// UpdatePassword consumes token and sets newPassword for its owner.
// Returns common.ErrInvalidToken if the token is unknown or already used.
func (s *AuthService) UpdatePassword(ctx context.Context, token, newPassword string) error {
	if token == "" {
		return common.ErrInvalidToken
	}

	user, err := s.repo.FindByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrInvalidToken
		}
		return s.internal(ctx, "error searching reset token", err)
	}

	hash, err := s.hash(newPassword)
	if err != nil {
		return err
	}

	if err := s.repo.SetPasswordAndClearResetToken(ctx, user.ID, token, hash); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrInvalidToken
		}
		return s.internal(ctx, "error updating password", err)
	}

	s.logger.Info(ctx, "password updated", "user_id", user.ID)
	return nil
}

// --- helpers below ---

// findByEmail returns (nil, nil) for an unknown email.
func (s *AuthService) findByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		return nil, s.internal(ctx, "error searching user", err)
	}
	return user, nil
}

func (s *AuthService) hash(password string) (string, error) {
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}
	return hash, nil
}

// internal logs the store failure and hides it behind common.ErrorInternal.
func (s *AuthService) internal(ctx context.Context, msg string, err error) error {
	s.logger.Error(ctx, msg, "error", err)
	return fmt.Errorf("%s: %w", msg, common.ErrorInternal)
}
