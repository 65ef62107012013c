package rest

import (
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/dmitrijs2005/userauth/internal/common"
	"github.com/dmitrijs2005/userauth/internal/server/models"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const userKey = "user"

// RequireAuth reports whether path needs an authenticated session.
//
// A nil or empty exclusion list requires auth everywhere. Paths are compared
// with a trailing slash appended, so "/status" matches an excluded
// "/status/". Excluded entries may contain path.Match wildcards; a "*" stays
// within one segment and is tried with and without the trailing slash.
func RequireAuth(p string, excluded []string) bool {
	if p == "" || len(excluded) == 0 {
		return true
	}
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}

	for _, ex := range excluded {
		if ex == p {
			return false
		}
		if globMatch(ex, p) || globMatch(ex, strings.TrimSuffix(p, "/")) {
			return false
		}
	}
	return true
}

func globMatch(pattern, p string) bool {
	ok, err := path.Match(pattern, p)
	return err == nil && ok
}

// sessionMiddleware resolves the session cookie to a user and stores it in
// the gin context. Requests to protected paths without a user are rejected.
func (s *Server) sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var user *models.User
		if sid, err := c.Cookie(common.SessionCookieName); err == nil && sid != "" {
			u, err := s.auth.GetUserFromSessionID(ctx, sid)
			if err != nil {
				s.logger.Error(ctx, "session lookup failed", "error", err)
				abortWithMessage(c, http.StatusInternalServerError)
				return
			}
			user = u
		}

		if user == nil && RequireAuth(c.Request.URL.Path, s.opts.ExcludedPaths) {
			abortWithMessage(c, http.StatusForbidden)
			return
		}

		if user != nil {
			c.Set(userKey, user)
		}
		c.Next()
	}
}

// currentUser returns the user resolved by sessionMiddleware, if any.
func currentUser(c *gin.Context) *models.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	u, _ := v.(*models.User)
	return u
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		s.logger.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}

// corsMiddleware lets browsers on origins send the session cookie.
func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	return cors.New(cfg)
}

func abortWithMessage(c *gin.Context, code int) {
	c.AbortWithStatusJSON(code, gin.H{"message": http.StatusText(code)})
}
