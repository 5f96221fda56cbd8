package employee

import "time"

// Employee entity. One employee per user; employee_code is unique across the
// company. ManagerID is a self-referential link to another employee.
type Employee struct {
	ID           string
	UserID       string
	DepartmentID string
	EmployeeCode string
	Position     *string
	HireDate     time.Time
	ManagerID    *string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Relationships (for responses)
	Name           *string
	Email          *string
	DepartmentName *string
	ManagerName    *string
}
