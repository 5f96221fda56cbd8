package user

import "context"

// UserRepository - interface for users table
type UserRepository interface {
	Create(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	List(ctx context.Context, page, limit int) ([]User, int64, error)
	Update(ctx context.Context, u User) error
	SetActive(ctx context.Context, id string, active bool) error
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
	Count(ctx context.Context) (int64, error)
}

// RoleRepository - interface for the user_roles join table
type RoleRepository interface {
	Assign(ctx context.Context, assignment RoleAssignment) error
	Unassign(ctx context.Context, userID string, role Role) error
	GetByUserID(ctx context.Context, userID string) ([]RoleAssignment, error)
}
