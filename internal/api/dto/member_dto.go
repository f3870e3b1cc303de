package dto

import (
	"time"

	"github.com/spec-kit/membership-service/internal/domain"
)

// MemberResponse mirrors a confirmed member record.
type MemberResponse struct {
	ID                     string    `json:"id"`
	FirstName              string    `json:"firstName"`
	LastName               string    `json:"lastName"`
	Email                  string    `json:"email"`
	Phone                  string    `json:"phone"`
	AffiliatedOrganization string    `json:"affiliatedOrganization"`
	JoinDate               time.Time `json:"joinDate"`
}

// NewMemberResponses maps domain persons to their API shape.
func NewMemberResponses(persons []domain.Person) []MemberResponse {
	out := make([]MemberResponse, 0, len(persons))
	for _, p := range persons {
		out = append(out, MemberResponse{
			ID:                     p.ID,
			FirstName:              p.FirstName,
			LastName:               p.LastName,
			Email:                  p.Email,
			Phone:                  p.Phone,
			AffiliatedOrganization: p.AffiliatedOrganization,
			JoinDate:               p.JoinDate,
		})
	}
	return out
}
