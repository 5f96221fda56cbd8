package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/workstead/hr-backend-go/internal/domain/leave"
	"github.com/workstead/hr-backend-go/internal/pkg/database"
)

type leaveTypeRepository struct {
	db *database.DB
}

func NewLeaveTypeRepository(db *database.DB) leave.LeaveTypeRepository {
	return &leaveTypeRepository{db: db}
}

// Create implements leave.LeaveTypeRepository.
func (l *leaveTypeRepository) Create(ctx context.Context, leaveType leave.LeaveType) (leave.LeaveType, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		INSERT INTO leave_types (name, code, description, default_annual_quota, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		leaveType.Name, leaveType.Code, leaveType.Description,
		leaveType.DefaultAnnualQuota, leaveType.IsActive,
	).Scan(&leaveType.ID, &leaveType.CreatedAt, &leaveType.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return leave.LeaveType{}, leave.ErrLeaveTypeCodeExists
		}
		return leave.LeaveType{}, fmt.Errorf("failed to create leave type: %w", err)
	}

	return leaveType, nil
}

// GetByID implements leave.LeaveTypeRepository.
func (l *leaveTypeRepository) GetByID(ctx context.Context, id string) (leave.LeaveType, error) {
	q := GetQuerier(ctx, l.db)

	var lt leave.LeaveType
	err := q.QueryRow(ctx, `
		SELECT id, name, code, description, default_annual_quota, is_active, created_at, updated_at
		FROM leave_types
		WHERE id = $1
	`, id).Scan(
		&lt.ID, &lt.Name, &lt.Code, &lt.Description,
		&lt.DefaultAnnualQuota, &lt.IsActive, &lt.CreatedAt, &lt.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
		}
		return leave.LeaveType{}, fmt.Errorf("failed to get leave type: %w", err)
	}

	return lt, nil
}

// GetByCode implements leave.LeaveTypeRepository.
func (l *leaveTypeRepository) GetByCode(ctx context.Context, code string) (leave.LeaveType, error) {
	q := GetQuerier(ctx, l.db)

	var lt leave.LeaveType
	err := q.QueryRow(ctx, `
		SELECT id, name, code, description, default_annual_quota, is_active, created_at, updated_at
		FROM leave_types
		WHERE code = $1
	`, code).Scan(
		&lt.ID, &lt.Name, &lt.Code, &lt.Description,
		&lt.DefaultAnnualQuota, &lt.IsActive, &lt.CreatedAt, &lt.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
		}
		return leave.LeaveType{}, fmt.Errorf("failed to get leave type by code: %w", err)
	}

	return lt, nil
}

// List implements leave.LeaveTypeRepository.
func (l *leaveTypeRepository) List(ctx context.Context, activeOnly bool) ([]leave.LeaveType, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT id, name, code, description, default_annual_quota, is_active, created_at, updated_at
		FROM leave_types
	`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY name`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}
	defer rows.Close()

	var types []leave.LeaveType
	for rows.Next() {
		var lt leave.LeaveType
		if err := rows.Scan(
			&lt.ID, &lt.Name, &lt.Code, &lt.Description,
			&lt.DefaultAnnualQuota, &lt.IsActive, &lt.CreatedAt, &lt.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan leave type: %w", err)
		}
		types = append(types, lt)
	}

	return types, rows.Err()
}

// Update implements leave.LeaveTypeRepository.
func (l *leaveTypeRepository) Update(ctx context.Context, leaveType leave.LeaveType) error {
	q := GetQuerier(ctx, l.db)

	query := `
		UPDATE leave_types
		SET name = $2, description = $3, default_annual_quota = $4, is_active = $5, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		leaveType.ID, leaveType.Name, leaveType.Description,
		leaveType.DefaultAnnualQuota, leaveType.IsActive,
	)
	if err != nil {
		return fmt.Errorf("failed to update leave type: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveTypeNotFound
	}

	return nil
}

// Delete implements leave.LeaveTypeRepository.
func (l *leaveTypeRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, l.db)

	tag, err := q.Exec(ctx, `DELETE FROM leave_types WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete leave type: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveTypeNotFound
	}

	return nil
}
