package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/workstead/hr-backend-go/internal/domain/user"
	"github.com/workstead/hr-backend-go/internal/pkg/database"
)

type userRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepository{db: db}
}

// isUniqueViolation reports whether err is a PostgreSQL duplicate-key error.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// Create implements user.UserRepository.
func (u *userRepository) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, u.db)

	query := `
		INSERT INTO users (email, name, password_hash, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newUser.Email,
		newUser.Name,
		newUser.PasswordHash,
		newUser.IsActive,
	).Scan(&newUser.ID, &newUser.CreatedAt, &newUser.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return user.User{}, user.ErrEmailExists
		}
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return newUser, nil
}

// GetByID implements user.UserRepository.
func (u *userRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, u.db)

	query := `
		SELECT u.id, u.email, u.name, u.password_hash, u.is_active, u.created_at, u.updated_at,
			   COALESCE(array_agg(ur.role) FILTER (WHERE ur.role IS NOT NULL), '{}')
		FROM users u
		LEFT JOIN user_roles ur ON ur.user_id = u.id
		WHERE u.id = $1
		GROUP BY u.id
	`

	var usr user.User
	var roles []string
	err := q.QueryRow(ctx, query, id).Scan(
		&usr.ID, &usr.Email, &usr.Name, &usr.PasswordHash, &usr.IsActive,
		&usr.CreatedAt, &usr.UpdatedAt, &roles,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	usr.Roles = toRoles(roles)
	return usr, nil
}

// GetByEmail implements user.UserRepository.
func (u *userRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, u.db)

	query := `
		SELECT u.id, u.email, u.name, u.password_hash, u.is_active, u.created_at, u.updated_at,
			   COALESCE(array_agg(ur.role) FILTER (WHERE ur.role IS NOT NULL), '{}')
		FROM users u
		LEFT JOIN user_roles ur ON ur.user_id = u.id
		WHERE u.email = $1
		GROUP BY u.id
	`

	var usr user.User
	var roles []string
	err := q.QueryRow(ctx, query, email).Scan(
		&usr.ID, &usr.Email, &usr.Name, &usr.PasswordHash, &usr.IsActive,
		&usr.CreatedAt, &usr.UpdatedAt, &roles,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	usr.Roles = toRoles(roles)
	return usr, nil
}

// List implements user.UserRepository.
func (u *userRepository) List(ctx context.Context, page, limit int) ([]user.User, int64, error) {
	q := GetQuerier(ctx, u.db)

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	query := `
		SELECT u.id, u.email, u.name, u.password_hash, u.is_active, u.created_at, u.updated_at,
			   COALESCE(array_agg(ur.role) FILTER (WHERE ur.role IS NOT NULL), '{}')
		FROM users u
		LEFT JOIN user_roles ur ON ur.user_id = u.id
		GROUP BY u.id
		ORDER BY u.created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := q.Query(ctx, query, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		var usr user.User
		var roles []string
		if err := rows.Scan(
			&usr.ID, &usr.Email, &usr.Name, &usr.PasswordHash, &usr.IsActive,
			&usr.CreatedAt, &usr.UpdatedAt, &roles,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan user: %w", err)
		}
		usr.Roles = toRoles(roles)
		users = append(users, usr)
	}

	return users, total, rows.Err()
}

// Update implements user.UserRepository.
func (u *userRepository) Update(ctx context.Context, usr user.User) error {
	q := GetQuerier(ctx, u.db)

	query := `
		UPDATE users
		SET email = $2, name = $3, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, usr.ID, usr.Email, usr.Name)
	if err != nil {
		if isUniqueViolation(err) {
			return user.ErrEmailExists
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

// SetActive implements user.UserRepository.
func (u *userRepository) SetActive(ctx context.Context, id string, active bool) error {
	q := GetQuerier(ctx, u.db)

	tag, err := q.Exec(ctx, `UPDATE users SET is_active = $2, updated_at = NOW() WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("failed to set user active flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

// UpdatePassword implements user.UserRepository.
func (u *userRepository) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	q := GetQuerier(ctx, u.db)

	tag, err := q.Exec(ctx, `UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1`, id, passwordHash)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

// Count implements user.UserRepository.
func (u *userRepository) Count(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, u.db)

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return total, nil
}

func toRoles(raw []string) []user.Role {
	roles := make([]user.Role, 0, len(raw))
	for _, r := range raw {
		roles = append(roles, user.Role(r))
	}
	return roles
}

type roleRepository struct {
	db *database.DB
}

func NewRoleRepository(db *database.DB) user.RoleRepository {
	return &roleRepository{db: db}
}

// Assign implements user.RoleRepository.
func (r *roleRepository) Assign(ctx context.Context, assignment user.RoleAssignment) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO user_roles (user_id, role, assigned_by, assigned_at)
		VALUES ($1, $2, $3, NOW())
	`

	_, err := q.Exec(ctx, query, assignment.UserID, string(assignment.Role), assignment.AssignedBy)
	if err != nil {
		if isUniqueViolation(err) {
			return user.ErrRoleAlreadyAssigned
		}
		return fmt.Errorf("failed to assign role: %w", err)
	}

	return nil
}

// Unassign implements user.RoleRepository.
func (r *roleRepository) Unassign(ctx context.Context, userID string, role user.Role) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM user_roles WHERE user_id = $1 AND role = $2`, userID, string(role))
	if err != nil {
		return fmt.Errorf("failed to unassign role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrRoleNotAssigned
	}

	return nil
}

// GetByUserID implements user.RoleRepository.
func (r *roleRepository) GetByUserID(ctx context.Context, userID string) ([]user.RoleAssignment, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT user_id, role, assigned_by, assigned_at
		FROM user_roles
		WHERE user_id = $1
		ORDER BY assigned_at
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get role assignments: %w", err)
	}
	defer rows.Close()

	var assignments []user.RoleAssignment
	for rows.Next() {
		var a user.RoleAssignment
		var role string
		if err := rows.Scan(&a.UserID, &role, &a.AssignedBy, &a.AssignedAt); err != nil {
			return nil, fmt.Errorf("failed to scan role assignment: %w", err)
		}
		a.Role = user.Role(role)
		assignments = append(assignments, a)
	}

	return assignments, rows.Err()
}
