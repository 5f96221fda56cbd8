package attendance

import (
	"context"
	"time"
)

// AttendanceRepository - interface for attendances table
type AttendanceRepository interface {
	Create(ctx context.Context, att Attendance) (Attendance, error)
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)
	GetByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]Attendance, error)
	List(ctx context.Context, filter ListFilter) ([]Attendance, int64, error)
	Update(ctx context.Context, att Attendance) error
	// UpsertLeaveDay inserts or overwrites the record for (employee, date) with
	// status LEAVE linked to the given leave request.
	UpsertLeaveDay(ctx context.Context, employeeID string, date time.Time, leaveRequestID string) error
	// RevertLeaveDays flips every record referencing leaveRequestID back to
	// ABSENT and clears the link. Returns the number of reverted rows.
	RevertLeaveDays(ctx context.Context, leaveRequestID string) (int64, error)
	CountByDate(ctx context.Context, date time.Time) (int64, error)
}
