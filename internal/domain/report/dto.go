package report

import (
	"fmt"
	"time"

	"github.com/workstead/hr-backend-go/internal/pkg/validator"
)

// Format selects the renderer for a report download.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatExcel Format = "excel"
	FormatPDF   Format = "pdf"
)

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatCSV, FormatExcel, FormatPDF:
		return Format(s), nil
	}
	return "", ErrUnsupportedFormat
}

type AttendanceReportRequest struct {
	From         string
	To           string
	DepartmentID string
}

func (r *AttendanceReportRequest) Validate() error {
	var errs validator.ValidationErrors

	from, okFrom := validator.IsValidDate(r.From)
	if !okFrom {
		errs = append(errs, validator.ValidationError{Field: "from", Message: "from must be YYYY-MM-DD"})
	}
	to, okTo := validator.IsValidDate(r.To)
	if !okTo {
		errs = append(errs, validator.ValidationError{Field: "to", Message: "to must be YYYY-MM-DD"})
	}
	if okFrom && okTo && to.Before(from) {
		errs = append(errs, validator.ValidationError{Field: "to", Message: "to must not be before from"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// AttendanceReportRow holds the raw per-employee aggregates pulled by the
// report repository; derived metrics are filled in by the service.
type AttendanceReportRow struct {
	EmployeeID     string  `json:"employee_id"`
	EmployeeName   string  `json:"employee_name"`
	EmployeeCode   string  `json:"employee_code"`
	DepartmentName string  `json:"department_name"`
	DaysPresent    int     `json:"days_present"`
	DaysLeave      int     `json:"days_leave"`
	DaysAbsent     int     `json:"days_absent"`
	TotalWorkHours float64 `json:"total_work_hours"`

	// Derived
	WorkDays         int     `json:"work_days"`
	AttendancePct    float64 `json:"attendance_pct"`
	AvgWorkHours     float64 `json:"avg_work_hours"`
	PerformanceScore float64 `json:"performance_score"`
	Grade            string  `json:"grade"`
}

type AttendanceReport struct {
	PeriodStart string                `json:"period_start"`
	PeriodEnd   string                `json:"period_end"`
	Department  string                `json:"department,omitempty"`
	GeneratedAt string                `json:"generated_at"`
	WorkDays    int                   `json:"work_days"`
	Rows        []AttendanceReportRow `json:"rows"`
}

type LeaveBalanceReportRequest struct {
	Year int
}

func (r *LeaveBalanceReportRequest) Validate() error {
	var errs validator.ValidationErrors

	currentYear := time.Now().Year()
	if r.Year < 2000 || r.Year > currentYear+1 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: fmt.Sprintf("year must be between 2000 and %d", currentYear+1),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LeaveBalanceReportRow struct {
	EmployeeName   string  `json:"employee_name"`
	EmployeeCode   string  `json:"employee_code"`
	DepartmentName string  `json:"department_name"`
	LeaveTypeName  string  `json:"leave_type_name"`
	Allocated      float64 `json:"allocated"`
	CarriedForward float64 `json:"carried_forward"`
	Used           float64 `json:"used"`
	Pending        float64 `json:"pending"`
	Available      float64 `json:"available"`
}

type LeaveBalanceReport struct {
	Year        int                     `json:"year"`
	GeneratedAt string                  `json:"generated_at"`
	Rows        []LeaveBalanceReportRow `json:"rows"`
}

// File is a rendered report ready to stream as an attachment.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}
