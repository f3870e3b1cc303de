package auth

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/membership-service/pkg/util"
)

// RequireOrgAccess ensures the principal may touch the organization encoded
// in the :org path segment. super_admin passes; org_admin only for their own
// organization. Must run after SessionGuard.RequireSession.
func RequireOrgAccess() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}

		org := c.Params("org")
		if decoded, err := url.PathUnescape(org); err == nil {
			org = decoded
		}
		if org == "" {
			return apperrors.NewValidationError("organization name is required", nil)
		}

		if !principal.CanAccessOrganization(org) {
			return apperrors.NewForbidden("access to this organization is not allowed")
		}
		return c.Next()
	}
}
