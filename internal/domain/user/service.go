package user

import "context"

// AdminStats is the payload for the admin dashboard endpoint.
type AdminStats struct {
	TotalUsers       int64 `json:"total_users"`
	TotalEmployees   int64 `json:"total_employees"`
	TotalDepartments int64 `json:"total_departments"`
	PresentToday     int64 `json:"present_today"`
	PendingLeaves    int64 `json:"pending_leaves"`
}

// UserService - interface for admin user management
type UserService interface {
	List(ctx context.Context, page, limit int) (ListUsersResponse, error)
	GetByID(ctx context.Context, id string) (UserResponse, error)
	SetActive(ctx context.Context, id string, active bool) error
	AssignRole(ctx context.Context, userID string, req AssignRoleRequest, assignedBy string) error
	UnassignRole(ctx context.Context, userID string, role string) error
	Roles(ctx context.Context) []RoleInfo
	Stats(ctx context.Context) (AdminStats, error)
}
