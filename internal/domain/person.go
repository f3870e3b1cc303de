package domain

import "time"

// Person is a confirmed member record, created only when a JoinForm is
// approved. It has no further lifecycle transitions.
type Person struct {
	ID                     string
	FirstName              string
	LastName               string
	Email                  string
	Phone                  string
	AffiliatedOrganization string
	JoinDate               time.Time
}
