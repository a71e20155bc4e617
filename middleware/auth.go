package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mvera-dev/backoffice-api/config"
	"github.com/mvera-dev/backoffice-api/models"
	"github.com/mvera-dev/backoffice-api/services"
)

// Context keys set by RequireAuth and read by controllers
const (
	ContextUserKey  = "current_user"
	ContextTokenKey = "access_token"
)

// RequireAuth validates the bearer token on every request. All failure
// sub-causes (missing, malformed, expired, revoked) return the same 401 body
// so auth internals are not leaked.
func RequireAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			unauthenticated(c)
			return
		}
		tokenStr := strings.TrimPrefix(header, "Bearer ")

		tokenService := services.NewTokenService(cfg)
		user, record, err := tokenService.Authenticate(tokenStr)
		if err != nil {
			unauthenticated(c)
			return
		}

		c.Set(ContextUserKey, user)
		c.Set(ContextTokenKey, record)
		c.Next()
	}
}

func unauthenticated(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"message": "Unauthenticated.",
	})
}

// CurrentUser extracts the authenticated user from the Gin context
func CurrentUser(c *gin.Context) (*models.User, error) {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, &AuthError{Code: "MISSING_USER", Message: "User not found in context"}
	}

	user, ok := value.(*models.User)
	if !ok {
		return nil, &AuthError{Code: "INVALID_USER", Message: "User is not in the expected format"}
	}

	return user, nil
}

// CurrentToken extracts the authenticated token row from the Gin context
func CurrentToken(c *gin.Context) (*models.AccessToken, error) {
	value, exists := c.Get(ContextTokenKey)
	if !exists {
		return nil, &AuthError{Code: "MISSING_TOKEN", Message: "Access token not found in context"}
	}

	token, ok := value.(*models.AccessToken)
	if !ok {
		return nil, &AuthError{Code: "INVALID_TOKEN", Message: "Access token is not in the expected format"}
	}

	return token, nil
}

// CurrentUserID returns the authenticated user's id for audit stamping, or
// nil when no user is present
func CurrentUserID(c *gin.Context) *uint {
	user, err := CurrentUser(c)
	if err != nil {
		return nil
	}
	id := user.ID
	return &id
}

// AuthError represents an authentication error
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}
