package handlers

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/membership-service/internal/api/dto"
	"github.com/spec-kit/membership-service/internal/service"
	apperrors "github.com/spec-kit/membership-service/pkg/util"
)

// MembersHandler exposes organization member listings.
type MembersHandler struct {
	membership *service.MembershipService
}

// NewMembersHandler constructs handler.
func NewMembersHandler(membership *service.MembershipService) *MembersHandler {
	return &MembersHandler{membership: membership}
}

// List handles GET /organizations/:org/members. Scope enforcement happened
// in the access guard; this only reads.
func (h *MembersHandler) List(c *fiber.Ctx) error {
	org := c.Params("org")
	if decoded, err := url.PathUnescape(org); err == nil {
		org = decoded
	}
	if org == "" {
		return apperrors.NewValidationError("organization name is required", nil)
	}

	persons, err := h.membership.ListMembers(c.UserContext(), org)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"members": dto.NewMemberResponses(persons)})
}
