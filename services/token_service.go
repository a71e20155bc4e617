package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/mvera-dev/backoffice-api/config"
	"github.com/mvera-dev/backoffice-api/models"
	"gorm.io/gorm"
)

// ErrInvalidToken is returned for any token that cannot be accepted: missing,
// malformed, expired, or revoked. Callers must not distinguish the sub-causes
// in responses.
var ErrInvalidToken = errors.New("invalid or expired token")

// TokenService issues and validates bearer tokens. Tokens are HS256-signed
// JWTs whose jti claim points at an access_tokens row; deleting the row
// revokes the token even before its signed expiry.
type TokenService struct {
	db     *gorm.DB
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a token service from the application configuration
func NewTokenService(cfg *config.Config) *TokenService {
	return &TokenService{
		db:     config.GetDB(),
		secret: []byte(cfg.JWTSecret),
		ttl:    time.Duration(cfg.TokenTTLHours) * time.Hour,
	}
}

// Issue creates a new access token for the user and returns the signed token
// string together with its tracking row
func (s *TokenService) Issue(user *models.User) (string, *models.AccessToken, error) {
	now := time.Now()
	record := &models.AccessToken{
		UserID:    user.ID,
		JTI:       uuid.NewString(),
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.db.Create(record).Error; err != nil {
		return "", nil, fmt.Errorf("failed to store access token: %w", err)
	}

	claims := jwt.MapClaims{
		"sub": fmt.Sprintf("%d", user.ID),
		"jti": record.JTI,
		"iat": now.Unix(),
		"exp": record.ExpiresAt.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	return signed, record, nil
}

// Authenticate validates a bearer token string and returns the authenticated
// user and the token's tracking row. Every failure maps to ErrInvalidToken.
func (s *TokenService) Authenticate(tokenStr string) (*models.User, *models.AccessToken, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, nil, ErrInvalidToken
	}
	jti, ok := claims["jti"].(string)
	if !ok || jti == "" {
		return nil, nil, ErrInvalidToken
	}

	var record models.AccessToken
	if err := s.db.Where("jti = ?", jti).First(&record).Error; err != nil {
		// Row gone means the token was revoked
		return nil, nil, ErrInvalidToken
	}
	if time.Now().After(record.ExpiresAt) {
		return nil, nil, ErrInvalidToken
	}

	var user models.User
	if err := s.db.First(&user, record.UserID).Error; err != nil {
		return nil, nil, ErrInvalidToken
	}

	return &user, &record, nil
}

// Revoke deletes a token row, invalidating the token immediately
func (s *TokenService) Revoke(record *models.AccessToken) error {
	return s.db.Delete(&models.AccessToken{}, record.ID).Error
}

// RevokeAllForUser deletes every token issued to a user. Login uses this for
// single-session semantics.
func (s *TokenService) RevokeAllForUser(userID uint) error {
	return s.db.Where("user_id = ?", userID).Delete(&models.AccessToken{}).Error
}
