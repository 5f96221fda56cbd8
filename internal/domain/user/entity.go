package user

import "time"

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleManager  Role = "MANAGER"
	RoleEmployee Role = "EMPLOYEE"
)

// rolePrecedence orders roles from most to least privileged. A user may hold
// several role assignments; the effective role is the highest-precedence one.
var rolePrecedence = []Role{RoleAdmin, RoleManager, RoleEmployee}

// IsValid reports whether r is one of the closed set of roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

// AllRoles returns the closed set of roles in precedence order.
func AllRoles() []Role {
	return append([]Role(nil), rolePrecedence...)
}

// EffectiveRole picks the highest-precedence role out of the assignments.
// Users with no assignment default to EMPLOYEE.
func EffectiveRole(roles []Role) Role {
	for _, candidate := range rolePrecedence {
		for _, r := range roles {
			if r == candidate {
				return candidate
			}
		}
	}
	return RoleEmployee
}

// User entity
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Populated by queries that join role assignments
	Roles []Role
}

// RoleAssignment is one row of the user_roles join table.
type RoleAssignment struct {
	UserID     string
	Role       Role
	AssignedBy *string
	AssignedAt time.Time
}
