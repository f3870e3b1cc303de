package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/membership-service/internal/api/dto"
	"github.com/spec-kit/membership-service/internal/auth"
	"github.com/spec-kit/membership-service/internal/observability"
	"github.com/spec-kit/membership-service/internal/service"
	apperrors "github.com/spec-kit/membership-service/pkg/util"
)

// FormsHandler exposes join form listing and approval.
type FormsHandler struct {
	membership *service.MembershipService
	metrics    *observability.Metrics
}

// NewFormsHandler constructs handler.
func NewFormsHandler(membership *service.MembershipService, metrics *observability.Metrics) *FormsHandler {
	return &FormsHandler{membership: membership, metrics: metrics}
}

// List handles GET /forms/all.
func (h *FormsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	forms, err := h.membership.ListForms(c.UserContext(), principal)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"forms": dto.NewFormResponses(forms)})
}

// Approve handles POST /forms/approve.
func (h *FormsHandler) Approve(c *fiber.Ctx) error {
	var req dto.ApproveFormRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return apperrors.NewValidationError("form ID is required", nil)
	}

	result, err := h.membership.ApproveForm(c.UserContext(), req.ID)
	if err != nil {
		return err
	}
	h.metrics.RecordApproval()

	return c.JSON(fiber.Map{
		"success":   true,
		"message":   "form approved successfully",
		"personId":  result.PersonID,
		"emailSent": result.EmailSent,
	})
}
