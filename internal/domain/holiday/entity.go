package holiday

import "time"

// Holiday entity. One row per calendar date.
type Holiday struct {
	ID        string
	Name      string
	Date      time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
