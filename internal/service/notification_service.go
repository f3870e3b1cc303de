package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/membership-service/internal/events"
	"github.com/spec-kit/membership-service/internal/mailer"
)

// Mailer abstracts the transactional email provider.
type Mailer interface {
	Send(ctx context.Context, msg mailer.Message) (string, error)
}

// NotificationService renders and sends the approval confirmation email in
// response to domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	mail       Mailer
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, mail Mailer, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		mail:       mail,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventFormApproved, n.handleFormApproved)
}

func (n *NotificationService) handleFormApproved(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.FormApprovedPayload)
	if !ok {
		return errors.New("unexpected form_approved payload")
	}

	messageID, err := n.SendApprovalEmail(ctx, payload.Email, payload.Name, payload.Organization)
	if err != nil {
		n.logger.Error("approval email failed",
			zap.String("form_id", event.FormID),
			zap.String("to", payload.Email),
			zap.Error(err))
		return err
	}

	n.logger.Info("approval email sent",
		zap.String("form_id", event.FormID),
		zap.String("message_id", messageID))
	return nil
}

// SendApprovalEmail sends the payment confirmation message to an approved
// applicant and returns the provider message id.
func (n *NotificationService) SendApprovalEmail(ctx context.Context, email, name, organization string) (string, error) {
	msg := mailer.Message{
		ToEmail:     email,
		ToName:      name,
		Subject:     "Next Step: Complete Your Payment to Join",
		HTMLContent: approvalHTML(name, organization),
		TextContent: approvalText(name, organization),
	}
	return n.mail.Send(ctx, msg)
}

func approvalHTML(name, organization string) string {
	return fmt.Sprintf(`
    <div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
      <h2 style="color: #4a5568;">Application Approved – Payment Awaited</h2>
      <p>Dear %s,</p>
      <p>Thank you for submitting your application to <strong>%s</strong>. We’re pleased to inform you that your form has been <strong>received and approved</strong>.</p>
      <p>To finalize your membership, please proceed with the payment. Once we receive your payment, you will officially become a member of our organization.</p>
      <p><strong>Please note:</strong> Your membership will need to be renewed annually to remain active.</p>
      <p>If you have any questions or need assistance, feel free to reach out to us.</p>
      <p>Best regards,<br>The %s Team</p>
    </div>`, name, organization, organization)
}

func approvalText(name, organization string) string {
	return fmt.Sprintf(`Dear %s,

Thank you for submitting your application to %s. Your form has been received and approved.

Please complete your payment to finalize your membership. Once payment is received, you will officially be part of the organization.

Note: Your membership must be renewed every year to remain active.

If you have any questions, feel free to reach out.

Best regards,
The %s Team`, name, organization, organization)
}
