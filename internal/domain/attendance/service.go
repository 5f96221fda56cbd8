package attendance

import "context"

// AttendanceService - interface for check-in / check-out operations
type AttendanceService interface {
	CheckIn(ctx context.Context, employeeID string) (AttendanceResponse, error)
	CheckOut(ctx context.Context, employeeID string) (AttendanceResponse, error)
	TodayStatus(ctx context.Context, employeeID string) (TodayStatusResponse, error)
	GetMyAttendance(ctx context.Context, employeeID string, filter ListFilter) (ListAttendanceResponse, error)
	List(ctx context.Context, filter ListFilter) (ListAttendanceResponse, error)
}
