package domain

import "time"

// JoinForm is an applicant's membership request. Forms are created by the
// public submission path and mutated exactly once, by approval.
type JoinForm struct {
	ID                 string
	FirstName          string
	MiddleName         *string
	LastName           string
	Email              string
	Phone              string
	OrganizationToJoin string
	Department         string
	Position           string
	Message            *string
	Approved           bool
	ApprovedAt         *time.Time
	PersonID           *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// FullName joins the name parts, skipping an absent middle name.
func (f *JoinForm) FullName() string {
	if f.MiddleName != nil && *f.MiddleName != "" {
		return f.FirstName + " " + *f.MiddleName + " " + f.LastName
	}
	return f.FirstName + " " + f.LastName
}
