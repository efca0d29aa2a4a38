package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/complainthub/complaint-service/internal/auth"
	"github.com/complainthub/complaint-service/internal/config"
	"github.com/complainthub/complaint-service/internal/domain"
	"github.com/complainthub/complaint-service/internal/repository"
	apperrors "github.com/complainthub/complaint-service/pkg/util/errorutil"
)

// AuthService coordinates admin signup and login flows.
type AuthService struct {
	admins     repository.AdminRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, admins repository.AdminRepository) *AuthService {
	return &AuthService{
		admins:     admins,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.SessionTTL()),
		bcryptCost: cfg.BcryptCost,
	}
}

// Signup creates a new admin account. A duplicate email conflicts and leaves
// the existing account untouched.
func (s *AuthService) Signup(ctx context.Context, email, password string) (*domain.Admin, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, apperrors.NewValidationError("Email and password are required.", nil)
	}

	if _, err := s.admins.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("Email already registered.", map[string]any{"email": email})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ToDomainError(err)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.ToDomainError(err)
	}

	admin := &domain.Admin{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("Email already registered.", map[string]any{"email": email})
		}
		return nil, apperrors.ToDomainError(err)
	}
	return admin, nil
}

// Login verifies credentials and issues a session token. Any credential
// failure yields the same unauthorized error and no token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Admin, string, time.Time, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	admin, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, apperrors.ToDomainError(err)
	}
	if err := auth.ComparePassword(admin.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}

	token, exp, err := s.tokenMgr.GenerateToken(admin.ID, admin.Email)
	if err != nil {
		return nil, "", time.Time{}, apperrors.ToDomainError(err)
	}
	return admin, token, exp, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
