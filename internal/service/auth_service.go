package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/membership-service/internal/auth"
	"github.com/spec-kit/membership-service/internal/config"
	"github.com/spec-kit/membership-service/internal/domain"
	"github.com/spec-kit/membership-service/internal/repository"
	apperrors "github.com/spec-kit/membership-service/pkg/util"
)

// invalidCredentials is the single message returned for unknown email and
// wrong password alike, so callers cannot enumerate accounts.
const invalidCredentials = "invalid email or password"

// AuthService coordinates the login flow and session lookups.
type AuthService struct {
	users    repository.UserRepository
	tokenMgr *auth.TokenManager
	logger   *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:    users,
		tokenMgr: auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTLHours),
		logger:   logger,
	}
}

// Login authenticates an administrator and issues a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.UserAuth, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized(invalidCredentials)
		}
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized(invalidCredentials)
	}

	// Best effort: a failed timestamp update must not fail the login.
	now := time.Now()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		s.logger.Warn("failed to update last login", zap.String("user_id", user.ID), zap.Error(err))
	} else {
		user.LastLogin = &now
	}

	token, exp, err := s.tokenMgr.Generate(user)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	return user, token, exp, nil
}

// CurrentUser resolves the session token to a fresh account row. Returns
// 401 for a missing/invalid token and 404 when the account was deleted
// after the token was issued.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*domain.UserAuth, error) {
	claims, err := s.tokenMgr.Parse(token)
	if err != nil {
		return nil, apperrors.NewUnauthorized("invalid token")
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// TokenManager exposes the underlying token manager for guard and cookie wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
