package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/userauth/internal/common"
	"github.com/dmitrijs2005/userauth/internal/dbx"
	"github.com/dmitrijs2005/userauth/internal/server/models"
)

// dialect carries the statements and error classification that differ
// between SQL backends.
type dialect struct {
	insert           string
	selectByID       string
	selectByEmail    string
	selectBySession  string
	selectByToken    string
	updateSession    string
	updateResetToken string
	updatePassword   string

	isUniqueViolation func(error) bool
}

// SQLRepository implements Repository on top of database/sql.
type SQLRepository struct {
	db dbx.DBTX
	d  dialect
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.Email, &user.HashedPassword, &user.SessionID, &user.ResetToken, dbx.Timestamp{Time: &user.CreatedAt})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

func (r *SQLRepository) Create(ctx context.Context, email, hashedPassword string) (*models.User, error) {
	user := &models.User{Email: email, HashedPassword: hashedPassword}

	err := r.db.QueryRowContext(ctx, r.d.insert, email, hashedPassword).Scan(&user.ID, dbx.Timestamp{Time: &user.CreatedAt})
	if err != nil {
		if r.d.isUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *SQLRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, r.d.selectByID, id))
}

func (r *SQLRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, r.d.selectByEmail, email))
}

func (r *SQLRepository) FindBySessionID(ctx context.Context, sessionID string) (*models.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, r.d.selectBySession, sessionID))
}

func (r *SQLRepository) FindByResetToken(ctx context.Context, token string) (*models.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, r.d.selectByToken, token))
}

func (r *SQLRepository) SetSessionID(ctx context.Context, id int64, sessionID *string) error {
	return r.execOne(ctx, r.d.updateSession, sessionID, id)
}

func (r *SQLRepository) SetResetToken(ctx context.Context, id int64, token string) error {
	return r.execOne(ctx, r.d.updateResetToken, token, id)
}

func (r *SQLRepository) SetPasswordAndClearResetToken(ctx context.Context, id int64, token, hashedPassword string) error {
	return r.execOne(ctx, r.d.updatePassword, hashedPassword, id, token)
}

// execOne runs an UPDATE and maps "no row touched" to common.ErrorNotFound.
func (r *SQLRepository) execOne(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if r.d.isUniqueViolation(err) {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}

	ok, err := dbx.AffectedOne(res)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if !ok {
		return common.ErrorNotFound
	}
	return nil
}
