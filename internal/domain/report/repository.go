package report

import (
	"context"
	"time"
)

// ReportRepository pulls the raw aggregates the report service derives
// metrics from.
type ReportRepository interface {
	GetAttendanceAggregates(ctx context.Context, from, to time.Time, departmentID string) ([]AttendanceReportRow, error)
	GetLeaveBalanceRows(ctx context.Context, year int) ([]LeaveBalanceReportRow, error)
}
