package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/membership-service/internal/api/dto"
	"github.com/spec-kit/membership-service/internal/service"
	apperrors "github.com/spec-kit/membership-service/pkg/util"
)

// NotificationsHandler exposes the manual email resend endpoint.
type NotificationsHandler struct {
	notifications *service.NotificationService
}

// NewNotificationsHandler constructs handler.
func NewNotificationsHandler(notifications *service.NotificationService) *NotificationsHandler {
	return &NotificationsHandler{notifications: notifications}
}

// Send handles POST /notifications/email.
func (h *NotificationsHandler) Send(c *fiber.Ctx) error {
	var req dto.SendEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return apperrors.NewValidationError("email, name, and organization are required", nil)
	}

	messageID, err := h.notifications.SendApprovalEmail(c.UserContext(), req.Email, req.Name, req.Organization)
	if err != nil {
		return apperrors.NewDependencyError("failed to send email", err)
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"message":   "confirmation email sent successfully",
		"messageId": messageID,
	})
}
