package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/userauth/internal/common"
	"github.com/gin-gonic/gin"
)

type credentialsForm struct {
	Email    string `form:"email" json:"email" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

type emailForm struct {
	Email string `form:"email" json:"email" binding:"required"`
}

type updatePasswordForm struct {
	Email       string `form:"email" json:"email"`
	ResetToken  string `form:"reset_token" json:"reset_token" binding:"required"`
	NewPassword string `form:"new_password" json:"new_password" binding:"required"`
}

func (s *Server) index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Bienvenue"})
}

func (s *Server) registerUser(c *gin.Context) {
	var f credentialsForm
	if err := c.ShouldBind(&f); err != nil {
		abortWithMessage(c, http.StatusBadRequest)
		return
	}

	ctx := c.Request.Context()
	if _, err := s.auth.RegisterUser(ctx, f.Email, f.Password); err != nil {
		switch {
		case errors.Is(err, common.ErrorAlreadyExists):
			c.JSON(http.StatusBadRequest, gin.H{"message": "email already registered"})
		case errors.Is(err, common.ErrorValidation):
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid password"})
		default:
			abortWithMessage(c, http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"email": f.Email, "message": "user created"})
}

func (s *Server) login(c *gin.Context) {
	var f credentialsForm
	if err := c.ShouldBind(&f); err != nil {
		abortWithMessage(c, http.StatusBadRequest)
		return
	}

	ctx := c.Request.Context()
	ok, err := s.auth.ValidLogin(ctx, f.Email, f.Password)
	if err != nil {
		abortWithMessage(c, http.StatusInternalServerError)
		return
	}
	if !ok {
		s.logger.Warn(ctx, "login rejected", "email", f.Email)
		abortWithMessage(c, http.StatusUnauthorized)
		return
	}

	sid, err := s.auth.CreateSession(ctx, f.Email)
	if err != nil {
		abortWithMessage(c, http.StatusInternalServerError)
		return
	}
	if sid == "" {
		abortWithMessage(c, http.StatusUnauthorized)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(common.SessionCookieName, sid, 0, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"email": f.Email, "message": "logged in"})
}

func (s *Server) logout(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		abortWithMessage(c, http.StatusForbidden)
		return
	}

	if err := s.auth.DestroySession(c.Request.Context(), user.ID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			abortWithMessage(c, http.StatusForbidden)
			return
		}
		abortWithMessage(c, http.StatusInternalServerError)
		return
	}

	c.SetCookie(common.SessionCookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

func (s *Server) profile(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		abortWithMessage(c, http.StatusForbidden)
		return
	}
	c.JSON(http.StatusOK, gin.H{"email": user.Email})
}

func (s *Server) getResetPasswordToken(c *gin.Context) {
	var f emailForm
	if err := c.ShouldBind(&f); err != nil {
		abortWithMessage(c, http.StatusBadRequest)
		return
	}

	token, err := s.auth.GetResetPasswordToken(c.Request.Context(), f.Email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			abortWithMessage(c, http.StatusForbidden)
			return
		}
		abortWithMessage(c, http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{"email": f.Email, "reset_token": token})
}

func (s *Server) updatePassword(c *gin.Context) {
	var f updatePasswordForm
	if err := c.ShouldBind(&f); err != nil {
		abortWithMessage(c, http.StatusBadRequest)
		return
	}

	if err := s.auth.UpdatePassword(c.Request.Context(), f.ResetToken, f.NewPassword); err != nil {
		switch {
		case errors.Is(err, common.ErrInvalidToken):
			abortWithMessage(c, http.StatusForbidden)
		case errors.Is(err, common.ErrorValidation):
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid password"})
		default:
			abortWithMessage(c, http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"email": f.Email, "message": "Password updated"})
}
