// Package repomanager vends repository implementations for a configured
// SQL backend and runs its schema migrations.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/userauth/internal/dbx"
	"github.com/dmitrijs2005/userauth/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
)

// RepositoryManager is the per-backend factory used by the app at startup.
type RepositoryManager interface {
	// DriverName is the database/sql driver to open DSNs with.
	DriverName() string
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// New returns the manager for the given driver name.
func New(driver string) (RepositoryManager, error) {
	switch driver {
	case postgresDriver:
		return NewPostgresRepositoryManager(), nil
	case sqliteDriver:
		return NewSQLiteRepositoryManager(), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}
