package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/workstead/hr-backend-go/internal/domain/leave"
	"github.com/workstead/hr-backend-go/internal/pkg/database"
)

type leaveBalanceRepository struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.LeaveBalanceRepository {
	return &leaveBalanceRepository{db: db}
}

// Create implements leave.LeaveBalanceRepository.
func (l *leaveBalanceRepository) Create(ctx context.Context, balance leave.LeaveBalance) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		INSERT INTO leave_balances (employee_id, leave_type_id, year, allocated, carried_forward, used_leaves, pending_leaves)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		balance.EmployeeID, balance.LeaveTypeID, balance.Year,
		balance.Allocated, balance.CarriedForward, balance.Used, balance.Pending,
	).Scan(&balance.ID, &balance.CreatedAt, &balance.UpdatedAt)
	if err != nil {
		return leave.LeaveBalance{}, fmt.Errorf("failed to create leave balance: %w", err)
	}

	return balance, nil
}

// GetByEmployeeTypeYear implements leave.LeaveBalanceRepository.
func (l *leaveBalanceRepository) GetByEmployeeTypeYear(ctx context.Context, employeeID, leaveTypeID string, year int) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, l.db)

	var b leave.LeaveBalance
	err := q.QueryRow(ctx, `
		SELECT b.id, b.employee_id, b.leave_type_id, b.year,
			   b.allocated, b.carried_forward, b.used_leaves, b.pending_leaves,
			   b.created_at, b.updated_at, lt.name, lt.code
		FROM leave_balances b
		JOIN leave_types lt ON lt.id = b.leave_type_id
		WHERE b.employee_id = $1 AND b.leave_type_id = $2 AND b.year = $3
	`, employeeID, leaveTypeID, year).Scan(
		&b.ID, &b.EmployeeID, &b.LeaveTypeID, &b.Year,
		&b.Allocated, &b.CarriedForward, &b.Used, &b.Pending,
		&b.CreatedAt, &b.UpdatedAt, &b.LeaveTypeName, &b.LeaveTypeCode,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveBalance{}, leave.ErrBalanceNotFound
		}
		return leave.LeaveBalance{}, fmt.Errorf("failed to get leave balance: %w", err)
	}

	return b, nil
}

// GetByEmployeeYear implements leave.LeaveBalanceRepository.
func (l *leaveBalanceRepository) GetByEmployeeYear(ctx context.Context, employeeID string, year int) ([]leave.LeaveBalance, error) {
	q := GetQuerier(ctx, l.db)

	rows, err := q.Query(ctx, `
		SELECT b.id, b.employee_id, b.leave_type_id, b.year,
			   b.allocated, b.carried_forward, b.used_leaves, b.pending_leaves,
			   b.created_at, b.updated_at, lt.name, lt.code
		FROM leave_balances b
		JOIN leave_types lt ON lt.id = b.leave_type_id
		WHERE b.employee_id = $1 AND b.year = $2
		ORDER BY lt.name
	`, employeeID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to get leave balances: %w", err)
	}
	defer rows.Close()

	var balances []leave.LeaveBalance
	for rows.Next() {
		var b leave.LeaveBalance
		if err := rows.Scan(
			&b.ID, &b.EmployeeID, &b.LeaveTypeID, &b.Year,
			&b.Allocated, &b.CarriedForward, &b.Used, &b.Pending,
			&b.CreatedAt, &b.UpdatedAt, &b.LeaveTypeName, &b.LeaveTypeCode,
		); err != nil {
			return nil, fmt.Errorf("failed to scan leave balance: %w", err)
		}
		balances = append(balances, b)
	}

	return balances, rows.Err()
}

// ListByYear implements leave.LeaveBalanceRepository.
func (l *leaveBalanceRepository) ListByYear(ctx context.Context, year int) ([]leave.LeaveBalance, error) {
	q := GetQuerier(ctx, l.db)

	rows, err := q.Query(ctx, `
		SELECT b.id, b.employee_id, b.leave_type_id, b.year,
			   b.allocated, b.carried_forward, b.used_leaves, b.pending_leaves,
			   b.created_at, b.updated_at, lt.name, lt.code
		FROM leave_balances b
		JOIN leave_types lt ON lt.id = b.leave_type_id
		WHERE b.year = $1
		ORDER BY b.employee_id, lt.name
	`, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave balances: %w", err)
	}
	defer rows.Close()

	var balances []leave.LeaveBalance
	for rows.Next() {
		var b leave.LeaveBalance
		if err := rows.Scan(
			&b.ID, &b.EmployeeID, &b.LeaveTypeID, &b.Year,
			&b.Allocated, &b.CarriedForward, &b.Used, &b.Pending,
			&b.CreatedAt, &b.UpdatedAt, &b.LeaveTypeName, &b.LeaveTypeCode,
		); err != nil {
			return nil, fmt.Errorf("failed to scan leave balance: %w", err)
		}
		balances = append(balances, b)
	}

	return balances, rows.Err()
}

// AddPending implements leave.LeaveBalanceRepository. The WHERE clause guards
// the balance invariant: a positive delta only lands when enough days remain.
func (l *leaveBalanceRepository) AddPending(ctx context.Context, balanceID string, delta float64) error {
	q := GetQuerier(ctx, l.db)

	query := `
		UPDATE leave_balances
		SET pending_leaves = pending_leaves + $2, updated_at = NOW()
		WHERE id = $1
		  AND allocated + carried_forward - used_leaves - (pending_leaves + $2) >= 0
		  AND pending_leaves + $2 >= 0
	`

	tag, err := q.Exec(ctx, query, balanceID, delta)
	if err != nil {
		return fmt.Errorf("failed to adjust pending leaves: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrInsufficientBalance
	}

	return nil
}

// MovePendingToUsed implements leave.LeaveBalanceRepository.
func (l *leaveBalanceRepository) MovePendingToUsed(ctx context.Context, balanceID string, days float64) error {
	q := GetQuerier(ctx, l.db)

	query := `
		UPDATE leave_balances
		SET pending_leaves = pending_leaves - $2,
			used_leaves = used_leaves + $2,
			updated_at = NOW()
		WHERE id = $1 AND pending_leaves >= $2
	`

	tag, err := q.Exec(ctx, query, balanceID, days)
	if err != nil {
		return fmt.Errorf("failed to move pending to used: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrInsufficientBalance
	}

	return nil
}

// ReleaseUsed implements leave.LeaveBalanceRepository.
func (l *leaveBalanceRepository) ReleaseUsed(ctx context.Context, balanceID string, days float64) error {
	q := GetQuerier(ctx, l.db)

	query := `
		UPDATE leave_balances
		SET used_leaves = used_leaves - $2, updated_at = NOW()
		WHERE id = $1 AND used_leaves >= $2
	`

	tag, err := q.Exec(ctx, query, balanceID, days)
	if err != nil {
		return fmt.Errorf("failed to release used leaves: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrInsufficientBalance
	}

	return nil
}
