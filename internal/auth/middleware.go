package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/membership-service/internal/domain"
	apperrors "github.com/spec-kit/membership-service/pkg/util"
)

const principalKey = "auth_principal"

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "auth_token"

// Principal represents the authenticated caller, resolved from the token.
type Principal struct {
	ID           string
	Email        string
	Role         domain.Role
	Organization *string
}

// CanAccessOrganization reports whether the principal may read resources
// scoped to the given organization.
func (p *Principal) CanAccessOrganization(org string) bool {
	if p.Role == domain.RoleSuperAdmin {
		return true
	}
	return p.Organization != nil && *p.Organization == org
}

// SessionGuard gates routes on a valid session cookie. It verifies
// signature and expiry on every request and never inspects the body.
type SessionGuard struct {
	tokens *TokenManager
}

// NewSessionGuard constructs the guard.
func NewSessionGuard(tokens *TokenManager) *SessionGuard {
	return &SessionGuard{tokens: tokens}
}

// RequireSession enforces authentication for protected surfaces. Browsers
// are redirected to the login page; data requests get 401.
func (g *SessionGuard) RequireSession(c *fiber.Ctx) error {
	principal, ok := g.principalFromCookie(c)
	if !ok {
		if wantsHTML(c) {
			return c.Redirect("/login", fiber.StatusFound)
		}
		return apperrors.NewUnauthorized("authentication required")
	}
	c.Locals(principalKey, principal)
	return c.Next()
}

// RedirectAuthenticated sends an already-authenticated caller away from the
// login surface.
func (g *SessionGuard) RedirectAuthenticated(c *fiber.Ctx) error {
	if _, ok := g.principalFromCookie(c); ok {
		return c.Redirect("/", fiber.StatusFound)
	}
	return c.Next()
}

func (g *SessionGuard) principalFromCookie(c *fiber.Ctx) (*Principal, bool) {
	token := c.Cookies(SessionCookieName)
	if token == "" {
		return nil, false
	}
	claims, err := g.tokens.Parse(token)
	if err != nil {
		return nil, false
	}
	return claims.Principal(), true
}

func wantsHTML(c *fiber.Ctx) bool {
	return c.Accepts("json", "html") == "html"
}

// PrincipalFromContext retrieves the authenticated identity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

// SessionCookie builds the auth_token cookie. Max-Age matches the token's
// embedded expiry so the cookie never outlives nor undercuts the token.
func SessionCookie(token string, ttl time.Duration, secure bool) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}

// ClearSessionCookie builds an expired auth_token cookie for logout.
func ClearSessionCookie(secure bool) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}
