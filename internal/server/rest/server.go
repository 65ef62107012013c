// Package rest exposes AuthService over HTTP using gin. Inputs are
// form-encoded, outputs are JSON and the session id travels in a cookie.
package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/userauth/internal/logging"
	"github.com/dmitrijs2005/userauth/internal/server/models"
	"github.com/gin-gonic/gin"
)

// Authenticator is the set of credential operations the HTTP adapter needs.
// *services.AuthService satisfies it.
type Authenticator interface {
	RegisterUser(ctx context.Context, email, password string) (*models.User, error)
	ValidLogin(ctx context.Context, email, password string) (bool, error)
	CreateSession(ctx context.Context, email string) (string, error)
	GetUserFromSessionID(ctx context.Context, sessionID string) (*models.User, error)
	DestroySession(ctx context.Context, userID int64) error
	GetResetPasswordToken(ctx context.Context, email string) (string, error)
	UpdatePassword(ctx context.Context, token, newPassword string) error
}

// Options tune the HTTP adapter.
type Options struct {
	// ExcludedPaths are reachable without a session, see RequireAuth.
	ExcludedPaths []string
	// CORSAllowedOrigins enables CORS with credentials for these origins.
	CORSAllowedOrigins []string
	ShutdownTimeout    time.Duration
}

type Server struct {
	address string
	auth    Authenticator
	logger  logging.Logger
	opts    Options
}

func NewServer(a string, l logging.Logger, auth Authenticator, opts Options) *Server {
	return &Server{
		address: a,
		logger:  l.With("module", "http_server"),
		auth:    auth,
		opts:    opts,
	}
}

// Router builds the gin engine with middleware and routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())
	if len(s.opts.CORSAllowedOrigins) > 0 {
		r.Use(corsMiddleware(s.opts.CORSAllowedOrigins))
	}
	r.Use(s.sessionMiddleware())

	r.GET("/", s.index)
	r.POST("/users", s.registerUser)
	r.POST("/sessions", s.login)
	r.DELETE("/sessions", s.logout)
	r.GET("/profile", s.profile)
	r.POST("/reset_password", s.getResetPasswordToken)
	r.PUT("/reset_password", s.updatePassword)

	return r
}

// Run serves HTTP until ctx is cancelled, then drains in-flight requests
// for at most the configured shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "graceful shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
