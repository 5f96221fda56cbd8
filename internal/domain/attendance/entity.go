package attendance

import "time"

type Status string

const (
	StatusPresent Status = "PRESENT"
	StatusAbsent  Status = "ABSENT"
	StatusLeave   Status = "LEAVE"
	StatusHoliday Status = "HOLIDAY"
	StatusWeekend Status = "WEEKEND"
)

// Attendance entity. At most one record per (employee, date).
type Attendance struct {
	ID             string
	EmployeeID     string
	Date           time.Time
	CheckIn        *time.Time
	CheckOut       *time.Time
	Status         Status
	WorkHours      *float64
	LeaveRequestID *string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Relationships (for responses)
	EmployeeName *string
	EmployeeCode *string
}
