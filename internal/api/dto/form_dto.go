package dto

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/spec-kit/membership-service/internal/domain"
)

// ApproveFormRequest payload for POST /forms/approve.
type ApproveFormRequest struct {
	ID string `json:"id"`
}

func (r ApproveFormRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required),
	)
}

// FormResponse mirrors the join form for the admin UI.
type FormResponse struct {
	ID                 string     `json:"id"`
	FirstName          string     `json:"firstName"`
	MiddleName         *string    `json:"middleName"`
	LastName           string     `json:"lastName"`
	Email              string     `json:"email"`
	Phone              string     `json:"phone"`
	OrganizationToJoin string     `json:"organizationToJoin"`
	Department         string     `json:"department"`
	Position           string     `json:"position"`
	Message            *string    `json:"message"`
	Approved           bool       `json:"approved"`
	ApprovedAt         *time.Time `json:"approvedAt"`
	PersonID           *string    `json:"personId"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// NewFormResponses maps domain forms to their API shape.
func NewFormResponses(forms []domain.JoinForm) []FormResponse {
	out := make([]FormResponse, 0, len(forms))
	for _, f := range forms {
		out = append(out, FormResponse{
			ID:                 f.ID,
			FirstName:          f.FirstName,
			MiddleName:         f.MiddleName,
			LastName:           f.LastName,
			Email:              f.Email,
			Phone:              f.Phone,
			OrganizationToJoin: f.OrganizationToJoin,
			Department:         f.Department,
			Position:           f.Position,
			Message:            f.Message,
			Approved:           f.Approved,
			ApprovedAt:         f.ApprovedAt,
			PersonID:           f.PersonID,
			CreatedAt:          f.CreatedAt,
			UpdatedAt:          f.UpdatedAt,
		})
	}
	return out
}
