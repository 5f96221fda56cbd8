package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/workstead/hr-backend-go/internal/domain/attendance"
	"github.com/workstead/hr-backend-go/internal/domain/report"
	"github.com/workstead/hr-backend-go/internal/pkg/database"
)

type reportRepository struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.ReportRepository {
	return &reportRepository{db: db}
}

// GetAttendanceAggregates implements report.ReportRepository. Returns one row
// per employee with raw day counts; derived metrics are left zero for the
// service to fill in.
func (r *reportRepository) GetAttendanceAggregates(ctx context.Context, from, to time.Time, departmentID string) ([]report.AttendanceReportRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.id, u.name, e.employee_code, d.name,
			   COUNT(*) FILTER (WHERE a.status = $3),
			   COUNT(*) FILTER (WHERE a.status = $4),
			   COUNT(*) FILTER (WHERE a.status = $5),
			   COALESCE(SUM(a.work_hours), 0)
		FROM employees e
		JOIN users u ON u.id = e.user_id
		JOIN departments d ON d.id = e.department_id
		LEFT JOIN attendances a ON a.employee_id = e.id AND a.date BETWEEN $1 AND $2
	`
	args := []any{from, to,
		string(attendance.StatusPresent), string(attendance.StatusLeave), string(attendance.StatusAbsent)}

	if departmentID != "" {
		query += ` WHERE e.department_id = $6`
		args = append(args, departmentID)
	}
	query += `
		GROUP BY e.id, u.name, e.employee_code, d.name
		ORDER BY e.employee_code
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance aggregates: %w", err)
	}
	defer rows.Close()

	var result []report.AttendanceReportRow
	for rows.Next() {
		var row report.AttendanceReportRow
		if err := rows.Scan(
			&row.EmployeeID, &row.EmployeeName, &row.EmployeeCode, &row.DepartmentName,
			&row.DaysPresent, &row.DaysLeave, &row.DaysAbsent, &row.TotalWorkHours,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance aggregate: %w", err)
		}
		result = append(result, row)
	}

	return result, rows.Err()
}

// GetLeaveBalanceRows implements report.ReportRepository.
func (r *reportRepository) GetLeaveBalanceRows(ctx context.Context, year int) ([]report.LeaveBalanceReportRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT u.name, e.employee_code, d.name, lt.name,
			   b.allocated, b.carried_forward, b.used_leaves, b.pending_leaves,
			   b.allocated + b.carried_forward - b.used_leaves - b.pending_leaves
		FROM leave_balances b
		JOIN employees e ON e.id = b.employee_id
		JOIN users u ON u.id = e.user_id
		JOIN departments d ON d.id = e.department_id
		JOIN leave_types lt ON lt.id = b.leave_type_id
		WHERE b.year = $1
		ORDER BY e.employee_code, lt.name
	`

	rows, err := q.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("failed to get leave balance rows: %w", err)
	}
	defer rows.Close()

	var result []report.LeaveBalanceReportRow
	for rows.Next() {
		var row report.LeaveBalanceReportRow
		if err := rows.Scan(
			&row.EmployeeName, &row.EmployeeCode, &row.DepartmentName, &row.LeaveTypeName,
			&row.Allocated, &row.CarriedForward, &row.Used, &row.Pending, &row.Available,
		); err != nil {
			return nil, fmt.Errorf("failed to scan leave balance row: %w", err)
		}
		result = append(result, row)
	}

	return result, rows.Err()
}
