package fixtures

import (
	"time"

	"github.com/workstead/hr-backend-go/internal/domain/holiday"
	"github.com/workstead/hr-backend-go/internal/domain/leave"
)

func strPtr(s string) *string { return &s }

// GetDefaultLeaveTypes returns the leave types seeded into a fresh
// installation. Quotas are per calendar year.
func GetDefaultLeaveTypes() []leave.LeaveType {
	return []leave.LeaveType{
		{
			Name:               "Annual Leave",
			Code:               "ANNUAL",
			Description:        strPtr("Paid annual leave entitlement"),
			DefaultAnnualQuota: 12,
			IsActive:           true,
		},
		{
			Name:               "Sick Leave",
			Code:               "SICK",
			Description:        strPtr("Sick leave, doctor's certificate required for more than 2 days"),
			DefaultAnnualQuota: 10,
			IsActive:           true,
		},
		{
			Name:               "Unpaid Leave",
			Code:               "UNPAID",
			Description:        strPtr("Unpaid personal leave"),
			DefaultAnnualQuota: 30,
			IsActive:           true,
		},
	}
}

// GetDefaultHolidays returns the fixed-date public holidays for the given
// year. Movable holidays are expected to be added by an admin.
func GetDefaultHolidays(year int) []holiday.Holiday {
	date := func(month time.Month, day int) time.Time {
		return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	}

	return []holiday.Holiday{
		{Name: "New Year's Day", Date: date(time.January, 1)},
		{Name: "Labour Day", Date: date(time.May, 1)},
		{Name: "Independence Day", Date: date(time.August, 17)},
		{Name: "Christmas Day", Date: date(time.December, 25)},
	}
}
