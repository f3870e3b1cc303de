package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/membership-service/internal/api/dto"
	"github.com/spec-kit/membership-service/internal/auth"
	"github.com/spec-kit/membership-service/internal/observability"
	"github.com/spec-kit/membership-service/internal/ratelimit"
	"github.com/spec-kit/membership-service/internal/service"
	apperrors "github.com/spec-kit/membership-service/pkg/util"
)

// AuthHandler exposes the login, logout and session endpoints.
type AuthHandler struct {
	auth          *service.AuthService
	limiter       *ratelimit.LoginLimiter
	metrics       *observability.Metrics
	secureCookies bool
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, limiter *ratelimit.LoginLimiter, metrics *observability.Metrics, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		auth:          authService,
		limiter:       limiter,
		metrics:       metrics,
		secureCookies: secureCookies,
	}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password are required", nil)
	}
	if err := req.Validate(); err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	limiterKey := req.Email + "|" + c.IP()
	if !h.limiter.Allow(c.UserContext(), limiterKey) {
		h.metrics.RecordLogin("limited")
		return apperrors.NewTooManyRequests("too many login attempts, try again later")
	}

	user, token, _, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		h.metrics.RecordLogin("failure")
		return err
	}

	h.limiter.Reset(c.UserContext(), limiterKey)
	h.metrics.RecordLogin("success")

	c.Cookie(auth.SessionCookie(token, h.auth.TokenManager().TTL(), h.secureCookies))

	return c.JSON(fiber.Map{
		"success": true,
		"user":    dto.NewUserResponse(user),
	})
}

// Logout handles POST /auth/logout. The cookie is cleared unconditionally;
// stateless tokens have no server-side session to destroy.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(auth.ClearSessionCookie(h.secureCookies))
	return c.JSON(fiber.Map{"success": true})
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	token := c.Cookies(auth.SessionCookieName)
	if token == "" {
		return apperrors.NewUnauthorized("not authenticated")
	}

	user, err := h.auth.CurrentUser(c.UserContext(), token)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"user": dto.NewUserResponse(user)})
}
