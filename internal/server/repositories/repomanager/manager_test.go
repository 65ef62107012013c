package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/userauth/internal/server/migrations"
	"github.com/dmitrijs2005/userauth/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) *sql.DB {
	t.Helper()
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func stubGoose(t *testing.T, fn func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error) {
	t.Helper()
	orig := gooseUpContext
	gooseUpContext = fn
	t.Cleanup(func() { gooseUpContext = orig })
}

func TestNew_KnownDrivers(t *testing.T) {
	m, err := New("pgx")
	require.NoError(t, err)
	assert.IsType(t, &PostgresRepositoryManager{}, m)
	assert.Equal(t, "pgx", m.DriverName())

	m, err = New("sqlite")
	require.NoError(t, err)
	assert.IsType(t, &SQLiteRepositoryManager{}, m)
	assert.Equal(t, "sqlite", m.DriverName())
}

func TestNew_UnknownDriver(t *testing.T) {
	_, err := New("mysql")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mysql")
}

func TestFactories_ReturnConcreteRepos(t *testing.T) {
	db := newDB(t)

	var pg RepositoryManager = NewPostgresRepositoryManager()
	var lite RepositoryManager = NewSQLiteRepositoryManager()

	assert.IsType(t, &users.SQLRepository{}, pg.Users(db))
	assert.IsType(t, &users.SQLRepository{}, lite.Users(db))
}

func TestRunMigrations_UsesDialectDirectory(t *testing.T) {
	db := newDB(t)

	var dirs []string
	stubGoose(t, func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		dirs = append(dirs, dir)
		return nil
	})

	require.NoError(t, NewPostgresRepositoryManager().RunMigrations(context.Background(), db))
	require.NoError(t, NewSQLiteRepositoryManager().RunMigrations(context.Background(), db))

	assert.Equal(t, []string{migrations.PostgresDir, migrations.SQLiteDir}, dirs)
}

func TestRunMigrations_Error(t *testing.T) {
	db := newDB(t)
	stubGoose(t, func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	})

	err := NewPostgresRepositoryManager().RunMigrations(context.Background(), db)
	require.EqualError(t, err, "boom")
}

func TestSQLiteRunMigrations_Real(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	m := NewSQLiteRepositoryManager()
	require.NoError(t, m.RunMigrations(context.Background(), db))

	u, err := m.Users(db).Create(context.Background(), "a@x.com", "h")
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)
}
