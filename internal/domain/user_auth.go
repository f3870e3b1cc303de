package domain

import "time"

// Role separates the global administrator from organization-scoped ones.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleOrgAdmin   Role = "org_admin"
)

// UserAuth is the domain model for an administrator login account.
// Organization is set iff Role is org_admin; the schema enforces this.
type UserAuth struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         Role
	Organization *string
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
