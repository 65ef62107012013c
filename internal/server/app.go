// Package server wires the userauth components together: it opens the
// configured user store, runs migrations, builds the auth service and
// serves it over HTTP until the process is signalled to stop.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/userauth/internal/filex"
	"github.com/dmitrijs2005/userauth/internal/logging"
	"github.com/dmitrijs2005/userauth/internal/server/config"
	"github.com/dmitrijs2005/userauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/userauth/internal/server/repositories/users"
	"github.com/dmitrijs2005/userauth/internal/server/rest"
	"github.com/dmitrijs2005/userauth/internal/server/services"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	authService *services.AuthService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(os.Stdout, logging.ParseLevel(c.LogLevel))

	repo, db, err := openUsersRepository(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	as := services.NewAuthService(repo, logger, c)

	return &App{config: c, logger: logger, db: db, authService: as}, nil
}

// openUsersRepository returns the user store for c.DatabaseDriver. The
// returned *sql.DB is nil for the in-memory store.
func openUsersRepository(ctx context.Context, c *config.Config) (users.Repository, *sql.DB, error) {
	if c.DatabaseDriver == config.DriverMemory {
		return users.NewMemoryRepository(), nil, nil
	}

	rm, err := repomanager.New(c.DatabaseDriver)
	if err != nil {
		return nil, nil, err
	}

	if c.DatabaseDriver == config.DriverSQLite && isSQLiteFilePath(c.DatabaseDSN) {
		if _, err := filex.EnsureParentDir(c.DatabaseDSN); err != nil {
			return nil, nil, err
		}
	}

	db, err := sql.Open(rm.DriverName(), c.DatabaseDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("db open error: %w", err)
	}

	if c.DatabaseDriver == config.DriverSQLite {
		// sqlite allows a single writer
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("db ping error: %w", err)
	}

	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("migration error: %w", err)
	}

	return rm.Users(db), db, nil
}

func isSQLiteFilePath(dsn string) bool {
	return dsn != "" && dsn != ":memory:" && !strings.HasPrefix(dsn, "file:")
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := rest.NewServer(app.config.EndpointAddrHTTP, app.logger, app.authService, rest.Options{
		ExcludedPaths:      app.config.ExcludedPaths,
		CORSAllowedOrigins: app.config.CORSAllowedOrigins,
		ShutdownTimeout:    app.config.ShutdownTimeout,
	})

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// closes the database.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "driver", app.config.DatabaseDriver)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}

	app.logger.Info(ctx, "App stopped")
}

// Close releases the database handle, if any.
func (app *App) Close() error {
	if app.db == nil {
		return nil
	}
	return app.db.Close()
}
