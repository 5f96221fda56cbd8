package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/workstead/hr-backend-go/internal/domain/holiday"
	"github.com/workstead/hr-backend-go/internal/pkg/database"
)

type holidayRepository struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.HolidayRepository {
	return &holidayRepository{db: db}
}

// Create implements holiday.HolidayRepository.
func (h *holidayRepository) Create(ctx context.Context, hol holiday.Holiday) (holiday.Holiday, error) {
	q := GetQuerier(ctx, h.db)

	query := `
		INSERT INTO holidays (name, date)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, hol.Name, hol.Date).
		Scan(&hol.ID, &hol.CreatedAt, &hol.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return holiday.Holiday{}, holiday.ErrHolidayDateExists
		}
		return holiday.Holiday{}, fmt.Errorf("failed to create holiday: %w", err)
	}

	return hol, nil
}

// GetByID implements holiday.HolidayRepository.
func (h *holidayRepository) GetByID(ctx context.Context, id string) (holiday.Holiday, error) {
	q := GetQuerier(ctx, h.db)

	var hol holiday.Holiday
	err := q.QueryRow(ctx, `
		SELECT id, name, date, created_at, updated_at
		FROM holidays
		WHERE id = $1
	`, id).Scan(&hol.ID, &hol.Name, &hol.Date, &hol.CreatedAt, &hol.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return holiday.Holiday{}, holiday.ErrHolidayNotFound
		}
		return holiday.Holiday{}, fmt.Errorf("failed to get holiday by id: %w", err)
	}

	return hol, nil
}

// GetByDate implements holiday.HolidayRepository. Returns nil without error
// when the date is not a holiday.
func (h *holidayRepository) GetByDate(ctx context.Context, date time.Time) (*holiday.Holiday, error) {
	q := GetQuerier(ctx, h.db)

	var hol holiday.Holiday
	err := q.QueryRow(ctx, `
		SELECT id, name, date, created_at, updated_at
		FROM holidays
		WHERE date = $1
	`, date).Scan(&hol.ID, &hol.Name, &hol.Date, &hol.CreatedAt, &hol.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get holiday by date: %w", err)
	}

	return &hol, nil
}

// GetByRange implements holiday.HolidayRepository.
func (h *holidayRepository) GetByRange(ctx context.Context, from, to time.Time) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, h.db)

	rows, err := q.Query(ctx, `
		SELECT id, name, date, created_at, updated_at
		FROM holidays
		WHERE date BETWEEN $1 AND $2
		ORDER BY date
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get holidays in range: %w", err)
	}
	defer rows.Close()

	var holidays []holiday.Holiday
	for rows.Next() {
		var hol holiday.Holiday
		if err := rows.Scan(&hol.ID, &hol.Name, &hol.Date, &hol.CreatedAt, &hol.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, hol)
	}

	return holidays, rows.Err()
}

// List implements holiday.HolidayRepository.
func (h *holidayRepository) List(ctx context.Context, year int) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, h.db)

	rows, err := q.Query(ctx, `
		SELECT id, name, date, created_at, updated_at
		FROM holidays
		WHERE EXTRACT(YEAR FROM date) = $1
		ORDER BY date
	`, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	var holidays []holiday.Holiday
	for rows.Next() {
		var hol holiday.Holiday
		if err := rows.Scan(&hol.ID, &hol.Name, &hol.Date, &hol.CreatedAt, &hol.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, hol)
	}

	return holidays, rows.Err()
}

// Update implements holiday.HolidayRepository.
func (h *holidayRepository) Update(ctx context.Context, hol holiday.Holiday) error {
	q := GetQuerier(ctx, h.db)

	tag, err := q.Exec(ctx, `
		UPDATE holidays
		SET name = $2, date = $3, updated_at = NOW()
		WHERE id = $1
	`, hol.ID, hol.Name, hol.Date)
	if err != nil {
		if isUniqueViolation(err) {
			return holiday.ErrHolidayDateExists
		}
		return fmt.Errorf("failed to update holiday: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return holiday.ErrHolidayNotFound
	}

	return nil
}

// Delete implements holiday.HolidayRepository.
func (h *holidayRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, h.db)

	tag, err := q.Exec(ctx, `DELETE FROM holidays WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete holiday: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return holiday.ErrHolidayNotFound
	}

	return nil
}
