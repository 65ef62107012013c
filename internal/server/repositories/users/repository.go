// Package users is the User Store: persistence of user records behind a
// typed interface, with PostgreSQL, SQLite and in-memory implementations.
package users

import (
	"context"

	"github.com/dmitrijs2005/userauth/internal/server/models"
)

// Repository persists users. Lookups return common.ErrorNotFound unless
// exactly one record matches; mutations return common.ErrorNotFound when
// the target row does not exist.
type Repository interface {
	// Create stores a new user and returns it with ID and CreatedAt filled.
	// Returns common.ErrorAlreadyExists if the email is taken.
	Create(ctx context.Context, email, hashedPassword string) (*models.User, error)

	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindBySessionID(ctx context.Context, sessionID string) (*models.User, error)
	FindByResetToken(ctx context.Context, token string) (*models.User, error)

	// SetSessionID replaces the user's session id; nil clears it.
	SetSessionID(ctx context.Context, id int64, sessionID *string) error
	SetResetToken(ctx context.Context, id int64, token string) error
	// SetPasswordAndClearResetToken replaces the hash and clears the reset
	// token in one statement, but only while the user still holds token.
	SetPasswordAndClearResetToken(ctx context.Context, id int64, token, hashedPassword string) error
}
