package user

import (
	"time"

	"github.com/workstead/hr-backend-go/internal/pkg/validator"
)

type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	Roles     []Role    `json:"roles"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func ToResponse(u User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		IsActive:  u.IsActive,
		Roles:     u.Roles,
		Role:      EffectiveRole(u.Roles),
		CreatedAt: u.CreatedAt,
	}
}

type ListUsersResponse struct {
	TotalCount int64          `json:"total_count"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	Users      []UserResponse `json:"users"`
}

type AssignRoleRequest struct {
	Role string `json:"role"`
}

func (r *AssignRoleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Role) {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "role is required"})
	} else if !Role(r.Role).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "role must be one of ADMIN, MANAGER, EMPLOYEE"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RoleInfo struct {
	Role        Role         `json:"role"`
	Permissions []Permission `json:"permissions"`
}

// DescribeRoles returns every role with its permission set, in precedence order.
func DescribeRoles() []RoleInfo {
	infos := make([]RoleInfo, 0, len(rolePrecedence))
	for _, r := range rolePrecedence {
		infos = append(infos, RoleInfo{Role: r, Permissions: RolePermissions[r]})
	}
	return infos
}
