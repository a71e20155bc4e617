package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mvera-dev/backoffice-api/config"
	"github.com/mvera-dev/backoffice-api/middleware"
	"github.com/mvera-dev/backoffice-api/repositories"
	"github.com/mvera-dev/backoffice-api/requests"
	"github.com/mvera-dev/backoffice-api/services"
	"golang.org/x/crypto/bcrypt"
)

func invalidCredentials(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"message": "Invalid credentials",
	})
}

// Login exchanges email and password for a bearer token. Issuing a new token
// revokes the user's previous ones, so at most one session is live per user.
func Login(c *gin.Context) {
	var req requests.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c, err)
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		respondValidation(c, errs)
		return
	}

	user, err := repositories.NewUserRepository(config.GetDB()).FindByEmail(req.Email)
	if err != nil {
		invalidCredentials(c)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		invalidCredentials(c)
		return
	}

	tokenService := services.NewTokenService(config.GetConfig())
	if err := tokenService.RevokeAllForUser(user.ID); err != nil {
		respondServerError(c, "Failed to log in")
		return
	}
	token, record, err := tokenService.Issue(user)
	if err != nil {
		respondServerError(c, "Failed to log in")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"data": gin.H{
			"user":         user,
			"access_token": token,
			"token_type":   "Bearer",
			"expires_at":   record.ExpiresAt,
		},
	})
}

// Logout revokes the token used on this request
func Logout(c *gin.Context) {
	token, err := middleware.CurrentToken(c)
	if err != nil {
		respondServerError(c, "Failed to log out")
		return
	}

	tokenService := services.NewTokenService(config.GetConfig())
	if err := tokenService.Revoke(token); err != nil {
		respondServerError(c, "Failed to log out")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged out successfully",
	})
}

// Me returns the authenticated user's identity
func Me(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		respondServerError(c, "Failed to load user")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    user,
	})
}

// Refresh rotates the current token: the old row is deleted and a fresh token
// is issued with a new expiry
func Refresh(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		respondServerError(c, "Failed to refresh token")
		return
	}
	token, err := middleware.CurrentToken(c)
	if err != nil {
		respondServerError(c, "Failed to refresh token")
		return
	}

	tokenService := services.NewTokenService(config.GetConfig())
	if err := tokenService.Revoke(token); err != nil {
		respondServerError(c, "Failed to refresh token")
		return
	}
	fresh, record, err := tokenService.Issue(user)
	if err != nil {
		respondServerError(c, "Failed to refresh token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Token refreshed successfully",
		"data": gin.H{
			"access_token": fresh,
			"token_type":   "Bearer",
			"expires_at":   record.ExpiresAt,
		},
	})
}
