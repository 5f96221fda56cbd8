package attendance

import (
	"time"

	"github.com/workstead/hr-backend-go/internal/pkg/validator"
)

type ListFilter struct {
	EmployeeID   string
	DepartmentID string
	From         string
	To           string
	Page         int
	Limit        int
}

func (f *ListFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.From != "" {
		if _, ok := validator.IsValidDate(f.From); !ok {
			errs = append(errs, validator.ValidationError{Field: "from", Message: "from must be YYYY-MM-DD"})
		}
	}
	if f.To != "" {
		if _, ok := validator.IsValidDate(f.To); !ok {
			errs = append(errs, validator.ValidationError{Field: "to", Message: "to must be YYYY-MM-DD"})
		}
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AttendanceResponse struct {
	ID             string   `json:"id"`
	EmployeeID     string   `json:"employee_id"`
	EmployeeName   *string  `json:"employee_name,omitempty"`
	EmployeeCode   *string  `json:"employee_code,omitempty"`
	Date           string   `json:"date"`
	CheckIn        *string  `json:"check_in,omitempty"`
	CheckOut       *string  `json:"check_out,omitempty"`
	Status         Status   `json:"status"`
	WorkHours      *float64 `json:"work_hours,omitempty"`
	LeaveRequestID *string  `json:"leave_request_id,omitempty"`
}

func ToResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:             a.ID,
		EmployeeID:     a.EmployeeID,
		EmployeeName:   a.EmployeeName,
		EmployeeCode:   a.EmployeeCode,
		Date:           a.Date.Format("2006-01-02"),
		CheckIn:        formatTimePtr(a.CheckIn),
		CheckOut:       formatTimePtr(a.CheckOut),
		Status:         a.Status,
		WorkHours:      a.WorkHours,
		LeaveRequestID: a.LeaveRequestID,
	}
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

type ListAttendanceResponse struct {
	TotalCount int64                `json:"total_count"`
	Page       int                  `json:"page"`
	Limit      int                  `json:"limit"`
	Records    []AttendanceResponse `json:"records"`
}

type TodayStatusResponse struct {
	Date       string              `json:"date"`
	CheckedIn  bool                `json:"checked_in"`
	CheckedOut bool                `json:"checked_out"`
	Record     *AttendanceResponse `json:"record,omitempty"`
}
