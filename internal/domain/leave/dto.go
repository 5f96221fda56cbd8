package leave

import (
	"time"

	"github.com/workstead/hr-backend-go/internal/pkg/validator"
)

type CreateLeaveTypeRequest struct {
	Name               string  `json:"name"`
	Code               string  `json:"code"`
	Description        *string `json:"description"`
	DefaultAnnualQuota float64 `json:"default_annual_quota"`
	IsActive           *bool   `json:"is_active"`
}

func (r *CreateLeaveTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if validator.IsEmpty(r.Code) {
		errs = append(errs, validator.ValidationError{Field: "code", Message: "code is required"})
	}
	if r.DefaultAnnualQuota < 0 {
		errs = append(errs, validator.ValidationError{Field: "default_annual_quota", Message: "default_annual_quota cannot be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateLeaveTypeRequest struct {
	ID                 string   `json:"-"`
	Name               *string  `json:"name"`
	Description        *string  `json:"description"`
	DefaultAnnualQuota *float64 `json:"default_annual_quota"`
	IsActive           *bool    `json:"is_active"`
}

type CreateLeaveRequestRequest struct {
	EmployeeID  string   `json:"-"`
	LeaveTypeID string   `json:"leave_type_id"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	Duration    *float64 `json:"duration"`
	Reason      string   `json:"reason"`
}

func (r *CreateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{Field: "leave_type_id", Message: "leave_type_id is required"})
	}
	if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be YYYY-MM-DD"})
	}
	if _, ok := validator.IsValidDate(r.EndDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be YYYY-MM-DD"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "reason is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RejectRequestRequest struct {
	RequestID string `json:"-"`
	Reason    string `json:"reason"`
}

func (r *RejectRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "rejection reason is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RequestFilter struct {
	Status       string
	EmployeeID   string
	DepartmentID string
	Page         int
	Limit        int
}

func (f *RequestFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Status != "" {
		valid := []string{string(StatusPending), string(StatusApproved), string(StatusRejected), string(StatusCancelled)}
		if !validator.IsInSlice(f.Status, valid) {
			errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be PENDING, APPROVED, REJECTED or CANCELLED"})
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

type LeaveRequestResponse struct {
	ID              string     `json:"id"`
	EmployeeID      string     `json:"employee_id"`
	EmployeeName    *string    `json:"employee_name,omitempty"`
	LeaveTypeID     string     `json:"leave_type_id"`
	LeaveTypeName   *string    `json:"leave_type_name,omitempty"`
	StartDate       string     `json:"start_date"`
	EndDate         string     `json:"end_date"`
	Duration        float64    `json:"duration"`
	Reason          string     `json:"reason"`
	Status          string     `json:"status"`
	ApprovedBy      *string    `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	CancelledBy     *string    `json:"cancelled_by,omitempty"`
	CancelledAt     *time.Time `json:"cancelled_at,omitempty"`
	SubmittedAt     time.Time  `json:"submitted_at"`
}

func ToRequestResponse(r LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:              r.ID,
		EmployeeID:      r.EmployeeID,
		EmployeeName:    r.EmployeeName,
		LeaveTypeID:     r.LeaveTypeID,
		LeaveTypeName:   r.LeaveTypeName,
		StartDate:       r.StartDate.Format("2006-01-02"),
		EndDate:         r.EndDate.Format("2006-01-02"),
		Duration:        r.Duration,
		Reason:          r.Reason,
		Status:          string(r.Status),
		ApprovedBy:      r.ApprovedBy,
		ApprovedAt:      r.ApprovedAt,
		RejectionReason: r.RejectionReason,
		CancelledBy:     r.CancelledBy,
		CancelledAt:     r.CancelledAt,
		SubmittedAt:     r.SubmittedAt,
	}
}

type ListLeaveRequestResponse struct {
	TotalCount int64                  `json:"total_count"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
	Requests   []LeaveRequestResponse `json:"requests"`
}

type LeaveBalanceResponse struct {
	ID             string  `json:"id"`
	EmployeeID     string  `json:"employee_id"`
	LeaveTypeID    string  `json:"leave_type_id"`
	LeaveTypeName  *string `json:"leave_type_name,omitempty"`
	LeaveTypeCode  *string `json:"leave_type_code,omitempty"`
	Year           int     `json:"year"`
	Allocated      float64 `json:"allocated"`
	CarriedForward float64 `json:"carried_forward"`
	Used           float64 `json:"used"`
	Pending        float64 `json:"pending"`
	Available      float64 `json:"available"`
}

func ToBalanceResponse(b LeaveBalance) LeaveBalanceResponse {
	return LeaveBalanceResponse{
		ID:             b.ID,
		EmployeeID:     b.EmployeeID,
		LeaveTypeID:    b.LeaveTypeID,
		LeaveTypeName:  b.LeaveTypeName,
		LeaveTypeCode:  b.LeaveTypeCode,
		Year:           b.Year,
		Allocated:      b.Allocated,
		CarriedForward: b.CarriedForward,
		Used:           b.Used,
		Pending:        b.Pending,
		Available:      b.Available(),
	}
}

type LeaveTypeResponse struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Code               string  `json:"code"`
	Description        *string `json:"description,omitempty"`
	DefaultAnnualQuota float64 `json:"default_annual_quota"`
	IsActive           bool    `json:"is_active"`
}

func ToTypeResponse(t LeaveType) LeaveTypeResponse {
	return LeaveTypeResponse{
		ID:                 t.ID,
		Name:               t.Name,
		Code:               t.Code,
		Description:        t.Description,
		DefaultAnnualQuota: t.DefaultAnnualQuota,
		IsActive:           t.IsActive,
	}
}
