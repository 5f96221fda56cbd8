package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/workstead/hr-backend-go/internal/domain/attendance"
	"github.com/workstead/hr-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceSelectColumns = `
	a.id, a.employee_id, a.date, a.check_in, a.check_out, a.status,
	a.work_hours, a.leave_request_id, a.created_at, a.updated_at,
	u.name, e.employee_code
`

const attendanceSelectJoins = `
	FROM attendances a
	JOIN employees e ON e.id = a.employee_id
	JOIN users u ON u.id = e.user_id
`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	var status string
	err := row.Scan(
		&att.ID, &att.EmployeeID, &att.Date, &att.CheckIn, &att.CheckOut, &status,
		&att.WorkHours, &att.LeaveRequestID, &att.CreatedAt, &att.UpdatedAt,
		&att.EmployeeName, &att.EmployeeCode,
	)
	att.Status = attendance.Status(status)
	return att, err
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (employee_id, date, check_in, check_out, status, work_hours, leave_request_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		att.EmployeeID, att.Date, att.CheckIn, att.CheckOut,
		string(att.Status), att.WorkHours, att.LeaveRequestID,
	).Scan(&att.ID, &att.CreatedAt, &att.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return att, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
// Returns nil without error when no record exists for the date.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	att, err := scanAttendance(q.QueryRow(ctx,
		`SELECT `+attendanceSelectColumns+attendanceSelectJoins+` WHERE a.employee_id = $1 AND a.date = $2`,
		employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance: %w", err)
	}

	return &att, nil
}

// GetByEmployeeAndRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	rows, err := q.Query(ctx,
		`SELECT `+attendanceSelectColumns+attendanceSelectJoins+
			` WHERE a.employee_id = $1 AND a.date BETWEEN $2 AND $3 ORDER BY a.date`,
		employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance range: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}

	return records, rows.Err()
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, a.db)

	where := ` WHERE 1=1`
	args := []any{}
	argPos := 1

	if filter.EmployeeID != "" {
		where += fmt.Sprintf(" AND a.employee_id = $%d", argPos)
		args = append(args, filter.EmployeeID)
		argPos++
	}
	if filter.DepartmentID != "" {
		where += fmt.Sprintf(" AND e.department_id = $%d", argPos)
		args = append(args, filter.DepartmentID)
		argPos++
	}
	if filter.From != "" {
		where += fmt.Sprintf(" AND a.date >= $%d", argPos)
		args = append(args, filter.From)
		argPos++
	}
	if filter.To != "" {
		where += fmt.Sprintf(" AND a.date <= $%d", argPos)
		args = append(args, filter.To)
		argPos++
	}

	var total int64
	countQuery := `SELECT COUNT(*)` + attendanceSelectJoins + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	query := `SELECT ` + attendanceSelectColumns + attendanceSelectJoins + where +
		fmt.Sprintf(" ORDER BY a.date DESC, e.employee_code LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}

	return records, total, rows.Err()
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET check_in = $2, check_out = $3, status = $4, work_hours = $5,
			leave_request_id = $6, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		att.ID, att.CheckIn, att.CheckOut, string(att.Status),
		att.WorkHours, att.LeaveRequestID,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// UpsertLeaveDay implements attendance.AttendanceRepository.
func (a *attendanceRepository) UpsertLeaveDay(ctx context.Context, employeeID string, date time.Time, leaveRequestID string) error {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (employee_id, date, status, leave_request_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (employee_id, date)
		DO UPDATE SET status = $3, leave_request_id = $4,
			check_in = NULL, check_out = NULL, work_hours = NULL, updated_at = NOW()
	`

	_, err := q.Exec(ctx, query, employeeID, date, string(attendance.StatusLeave), leaveRequestID)
	if err != nil {
		return fmt.Errorf("failed to upsert leave day: %w", err)
	}

	return nil
}

// RevertLeaveDays implements attendance.AttendanceRepository.
func (a *attendanceRepository) RevertLeaveDays(ctx context.Context, leaveRequestID string) (int64, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET status = $2, leave_request_id = NULL, updated_at = NOW()
		WHERE leave_request_id = $1
	`

	tag, err := q.Exec(ctx, query, leaveRequestID, string(attendance.StatusAbsent))
	if err != nil {
		return 0, fmt.Errorf("failed to revert leave days: %w", err)
	}

	return tag.RowsAffected(), nil
}

// CountByDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) CountByDate(ctx context.Context, date time.Time) (int64, error) {
	q := GetQuerier(ctx, a.db)

	var count int64
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM attendances WHERE date = $1 AND status = $2`,
		date, string(attendance.StatusPresent),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count attendances by date: %w", err)
	}

	return count, nil
}
