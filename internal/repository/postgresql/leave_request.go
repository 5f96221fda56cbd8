package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/workstead/hr-backend-go/internal/domain/leave"
	"github.com/workstead/hr-backend-go/internal/pkg/database"
)

type leaveRequestRepository struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepository{db: db}
}

const leaveRequestSelectColumns = `
	r.id, r.employee_id, r.leave_type_id, r.start_date, r.end_date, r.duration,
	r.reason, r.status, r.approved_by, r.approved_at, r.rejection_reason,
	r.cancelled_by, r.cancelled_at, r.submitted_at, r.created_at, r.updated_at,
	u.name, lt.name
`

const leaveRequestSelectJoins = `
	FROM leave_requests r
	JOIN employees e ON e.id = r.employee_id
	JOIN users u ON u.id = e.user_id
	JOIN leave_types lt ON lt.id = r.leave_type_id
`

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var req leave.LeaveRequest
	var status string
	err := row.Scan(
		&req.ID, &req.EmployeeID, &req.LeaveTypeID, &req.StartDate, &req.EndDate, &req.Duration,
		&req.Reason, &status, &req.ApprovedBy, &req.ApprovedAt, &req.RejectionReason,
		&req.CancelledBy, &req.CancelledAt, &req.SubmittedAt, &req.CreatedAt, &req.UpdatedAt,
		&req.EmployeeName, &req.LeaveTypeName,
	)
	req.Status = leave.RequestStatus(status)
	return req, err
}

// Create implements leave.LeaveRequestRepository.
func (l *leaveRequestRepository) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		INSERT INTO leave_requests (employee_id, leave_type_id, start_date, end_date, duration, reason, status, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, submitted_at, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		request.EmployeeID, request.LeaveTypeID, request.StartDate, request.EndDate,
		request.Duration, request.Reason, string(request.Status),
	).Scan(&request.ID, &request.SubmittedAt, &request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return request, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (l *leaveRequestRepository) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, l.db)

	req, err := scanLeaveRequest(q.QueryRow(ctx,
		`SELECT `+leaveRequestSelectColumns+leaveRequestSelectJoins+` WHERE r.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	return req, nil
}

// GetByEmployeeID implements leave.LeaveRequestRepository.
func (l *leaveRequestRepository) GetByEmployeeID(ctx context.Context, employeeID string, filter leave.RequestFilter) ([]leave.LeaveRequest, int64, error) {
	filter.EmployeeID = employeeID
	return l.List(ctx, filter)
}

// List implements leave.LeaveRequestRepository.
func (l *leaveRequestRepository) List(ctx context.Context, filter leave.RequestFilter) ([]leave.LeaveRequest, int64, error) {
	q := GetQuerier(ctx, l.db)

	where := ` WHERE 1=1`
	args := []any{}
	argPos := 1

	if filter.EmployeeID != "" {
		where += fmt.Sprintf(" AND r.employee_id = $%d", argPos)
		args = append(args, filter.EmployeeID)
		argPos++
	}
	if filter.Status != "" {
		where += fmt.Sprintf(" AND r.status = $%d", argPos)
		args = append(args, filter.Status)
		argPos++
	}
	if filter.DepartmentID != "" {
		where += fmt.Sprintf(" AND e.department_id = $%d", argPos)
		args = append(args, filter.DepartmentID)
		argPos++
	}

	var total int64
	countQuery := `SELECT COUNT(*)` + leaveRequestSelectJoins + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leave requests: %w", err)
	}

	query := `SELECT ` + leaveRequestSelectColumns + leaveRequestSelectJoins + where +
		fmt.Sprintf(" ORDER BY r.submitted_at DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		req, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, req)
	}

	return requests, total, rows.Err()
}

// UpdateStatus implements leave.LeaveRequestRepository. The expected status
// in the WHERE clause makes the transition atomic: a concurrent transition
// loses the race and affects zero rows.
func (l *leaveRequestRepository) UpdateStatus(ctx context.Context, request leave.LeaveRequest, from leave.RequestStatus) error {
	q := GetQuerier(ctx, l.db)

	query := `
		UPDATE leave_requests
		SET status = $2, approved_by = $3, approved_at = $4, rejection_reason = $5,
			cancelled_by = $6, cancelled_at = $7, updated_at = NOW()
		WHERE id = $1 AND status = $8
	`

	tag, err := q.Exec(ctx, query,
		request.ID, string(request.Status),
		request.ApprovedBy, request.ApprovedAt, request.RejectionReason,
		request.CancelledBy, request.CancelledAt,
		string(from),
	)
	if err != nil {
		return fmt.Errorf("failed to update leave request status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrAlreadyProcessed
	}

	return nil
}

// HasOverlapping implements leave.LeaveRequestRepository.
func (l *leaveRequestRepository) HasOverlapping(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	q := GetQuerier(ctx, l.db)

	var exists bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM leave_requests
			WHERE employee_id = $1
			  AND status IN ($2, $3)
			  AND start_date <= $5
			  AND end_date >= $4
		)
	`, employeeID, string(leave.StatusPending), string(leave.StatusApproved), start, end).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check overlapping leave: %w", err)
	}

	return exists, nil
}

// CountByStatus implements leave.LeaveRequestRepository.
func (l *leaveRequestRepository) CountByStatus(ctx context.Context, status leave.RequestStatus) (int64, error) {
	q := GetQuerier(ctx, l.db)

	var count int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM leave_requests WHERE status = $1`, string(status)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count leave requests: %w", err)
	}

	return count, nil
}
