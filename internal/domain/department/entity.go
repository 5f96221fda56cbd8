package department

import "time"

// Department entity
type Department struct {
	ID          string
	Name        string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Populated by queries that join employees
	EmployeeCount int64
}
