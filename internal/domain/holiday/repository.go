package holiday

import (
	"context"
	"time"
)

// HolidayRepository - interface for holidays table
type HolidayRepository interface {
	Create(ctx context.Context, h Holiday) (Holiday, error)
	GetByID(ctx context.Context, id string) (Holiday, error)
	GetByDate(ctx context.Context, date time.Time) (*Holiday, error)
	GetByRange(ctx context.Context, from, to time.Time) ([]Holiday, error)
	List(ctx context.Context, year int) ([]Holiday, error)
	Update(ctx context.Context, h Holiday) error
	Delete(ctx context.Context, id string) error
}
