package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/membership-service/internal/auth"
	"github.com/spec-kit/membership-service/internal/domain"
	"github.com/spec-kit/membership-service/internal/events"
	"github.com/spec-kit/membership-service/internal/repository"
	apperrors "github.com/spec-kit/membership-service/pkg/util"
)

// ApprovalResult is the outcome of approving a join form. EmailSent reports
// the notification side effect; it never affects the committed approval.
type ApprovalResult struct {
	PersonID  string
	EmailSent bool
}

// MembershipService implements the membership workflow: listing forms,
// approving them, listing members.
type MembershipService struct {
	forms      repository.FormRepository
	persons    repository.PersonRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewMembershipService builds the service.
func NewMembershipService(forms repository.FormRepository, persons repository.PersonRepository, dispatcher events.Dispatcher, logger *zap.Logger) *MembershipService {
	return &MembershipService{
		forms:      forms,
		persons:    persons,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// ListForms returns join forms visible to the principal, newest first.
// org_admin visibility is restricted inside the query; rows for other
// organizations never cross the store boundary.
func (s *MembershipService) ListForms(ctx context.Context, principal *auth.Principal) ([]domain.JoinForm, error) {
	var organization *string
	if principal.Role == domain.RoleOrgAdmin {
		organization = principal.Organization
	}

	forms, err := s.forms.List(ctx, organization)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return forms, nil
}

// ApproveForm atomically creates the member record and marks the form
// approved, then dispatches the confirmation email. Approval is one-way: a
// second call on the same form fails without creating a duplicate person.
func (s *MembershipService) ApproveForm(ctx context.Context, formID string) (*ApprovalResult, error) {
	person, err := s.forms.Approve(ctx, formID)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, apperrors.NewNotFound("form", map[string]any{"form_id": formID})
		case errors.Is(err, repository.ErrAlreadyApproved):
			return nil, apperrors.NewAlreadyApproved(formID)
		default:
			return nil, apperrors.MapError(err)
		}
	}

	s.logger.Info("form approved",
		zap.String("form_id", formID),
		zap.String("person_id", person.ID),
		zap.String("organization", person.AffiliatedOrganization),
	)

	result := &ApprovalResult{PersonID: person.ID, EmailSent: true}

	event := events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventFormApproved,
		FormID:    formID,
		Timestamp: time.Now(),
		Payload: events.FormApprovedPayload{
			PersonID:     person.ID,
			Name:         person.FirstName + " " + person.LastName,
			Email:        person.Email,
			Organization: person.AffiliatedOrganization,
		},
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		// Notification failure is non-fatal; the approval stands.
		s.logger.Warn("approval notification failed", zap.String("form_id", formID), zap.Error(err))
		result.EmailSent = false
	}

	return result, nil
}

// ListMembers returns the confirmed members of one organization, most
// recent join first. Organization-scope authorization happens in the access
// guard before this is reached.
func (s *MembershipService) ListMembers(ctx context.Context, organization string) ([]domain.Person, error) {
	persons, err := s.persons.ListByOrganization(ctx, organization)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return persons, nil
}
