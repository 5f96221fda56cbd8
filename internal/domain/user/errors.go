package user

import "errors"

var (
	ErrUserNotFound          = errors.New("User not found")
	ErrEmailExists           = errors.New("Email already registered")
	ErrUserInactive          = errors.New("User account is deactivated")
	ErrInvalidRole           = errors.New("Invalid role")
	ErrRoleAlreadyAssigned   = errors.New("Role already assigned to user")
	ErrRoleNotAssigned       = errors.New("Role is not assigned to user")
	ErrAdminAccessRequired   = errors.New("Admin access required")
	ErrManagerAccessRequired = errors.New("Manager access required")
)
