package employee

import (
	"time"

	"github.com/workstead/hr-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	UserID       string  `json:"user_id"`
	DepartmentID string  `json:"department_id"`
	EmployeeCode string  `json:"employee_code"`
	Position     *string `json:"position"`
	HireDate     string  `json:"hire_date"`
	ManagerID    *string `json:"manager_id"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{Field: "user_id", Message: "user_id is required"})
	}
	if validator.IsEmpty(r.DepartmentID) {
		errs = append(errs, validator.ValidationError{Field: "department_id", Message: "department_id is required"})
	}
	if validator.IsEmpty(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{Field: "employee_code", Message: "employee_code is required"})
	} else if !validator.IsValidEmployeeCode(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{Field: "employee_code", Message: "employee_code must match EMP-NNNN"})
	}
	if validator.IsEmpty(r.HireDate) {
		errs = append(errs, validator.ValidationError{Field: "hire_date", Message: "hire_date is required"})
	} else if _, ok := validator.IsValidDate(r.HireDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "hire_date", Message: "hire_date must be YYYY-MM-DD"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID           string  `json:"-"`
	DepartmentID *string `json:"department_id"`
	Position     *string `json:"position"`
	ManagerID    *string `json:"manager_id"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.DepartmentID != nil && validator.IsEmpty(*r.DepartmentID) {
		errs = append(errs, validator.ValidationError{Field: "department_id", Message: "department_id cannot be empty"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListFilter struct {
	DepartmentID string
	Search       string
	Page         int
	Limit        int
}

func (f *ListFilter) Validate() error {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
	return nil
}

type EmployeeResponse struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	EmployeeCode   string    `json:"employee_code"`
	Name           *string   `json:"name,omitempty"`
	Email          *string   `json:"email,omitempty"`
	DepartmentID   string    `json:"department_id"`
	DepartmentName *string   `json:"department_name,omitempty"`
	Position       *string   `json:"position,omitempty"`
	HireDate       time.Time `json:"hire_date"`
	ManagerID      *string   `json:"manager_id,omitempty"`
	ManagerName    *string   `json:"manager_name,omitempty"`
}

func ToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:             e.ID,
		UserID:         e.UserID,
		EmployeeCode:   e.EmployeeCode,
		Name:           e.Name,
		Email:          e.Email,
		DepartmentID:   e.DepartmentID,
		DepartmentName: e.DepartmentName,
		Position:       e.Position,
		HireDate:       e.HireDate,
		ManagerID:      e.ManagerID,
		ManagerName:    e.ManagerName,
	}
}

type ListEmployeesResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	Employees  []EmployeeResponse `json:"employees"`
}
