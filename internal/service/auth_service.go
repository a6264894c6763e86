package service

import (
	"context"
	"errors"
	"time"

	"github.com/spec-kit/salon-booking-service/internal/auth"
	"github.com/spec-kit/salon-booking-service/internal/config"
)

// ErrLoginDisabled is returned when no admin password hash is provisioned.
var ErrLoginDisabled = errors.New("admin login not configured")

// ErrInvalidCredentials is returned for a wrong email or password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService authenticates the back-office admin. The single credential is
// provisioned through the environment; there is no account storage.
type AuthService struct {
	tokenMgr     *auth.TokenManager
	adminEmail   string
	passwordHash string
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig) *AuthService {
	return &AuthService{
		tokenMgr:     auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
		adminEmail:   cfg.AdminEmail,
		passwordHash: cfg.AdminPasswordHash,
	}
}

// LoginAdmin verifies the credential and issues a token.
func (s *AuthService) LoginAdmin(_ context.Context, email, password string) (string, time.Time, error) {
	if s.passwordHash == "" {
		return "", time.Time{}, ErrLoginDisabled
	}
	if email != s.adminEmail {
		return "", time.Time{}, ErrInvalidCredentials
	}
	if err := auth.ComparePassword(s.passwordHash, password); err != nil {
		return "", time.Time{}, ErrInvalidCredentials
	}
	return s.tokenMgr.GenerateToken(email)
}

// TokenManager exposes the manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
