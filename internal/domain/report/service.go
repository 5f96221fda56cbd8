package report

import "context"

// ReportService - interface for report generation
type ReportService interface {
	AttendanceReportData(ctx context.Context, req AttendanceReportRequest) (AttendanceReport, error)
	AttendanceReportFile(ctx context.Context, req AttendanceReportRequest, format Format) (File, error)
	LeaveBalanceReportData(ctx context.Context, req LeaveBalanceReportRequest) (LeaveBalanceReport, error)
	LeaveBalanceReportFile(ctx context.Context, req LeaveBalanceReportRequest, format Format) (File, error)
}
