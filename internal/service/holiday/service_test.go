package holiday

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workstead/hr-backend-go/internal/domain/holiday"
)

type fakeHolidayRepo struct {
	holidays map[string]holiday.Holiday
	nextID   int
}

func newFakeHolidayRepo() *fakeHolidayRepo {
	return &fakeHolidayRepo{holidays: make(map[string]holiday.Holiday)}
}

func (f *fakeHolidayRepo) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	f.nextID++
	h.ID = fmt.Sprintf("hol-%d", f.nextID)
	f.holidays[h.ID] = h
	return h, nil
}

func (f *fakeHolidayRepo) GetByID(ctx context.Context, id string) (holiday.Holiday, error) {
	h, ok := f.holidays[id]
	if !ok {
		return holiday.Holiday{}, holiday.ErrHolidayNotFound
	}
	return h, nil
}

func (f *fakeHolidayRepo) GetByDate(ctx context.Context, date time.Time) (*holiday.Holiday, error) {
	for _, h := range f.holidays {
		if h.Date.Equal(date) {
			copied := h
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeHolidayRepo) GetByRange(ctx context.Context, from, to time.Time) ([]holiday.Holiday, error) {
	var out []holiday.Holiday
	for _, h := range f.holidays {
		if !h.Date.Before(from) && !h.Date.After(to) {
			out = append(out, h)
		}
	}
	return out, nil
}

func (f *fakeHolidayRepo) List(ctx context.Context, year int) ([]holiday.Holiday, error) {
	var out []holiday.Holiday
	for _, h := range f.holidays {
		if h.Date.Year() == year {
			out = append(out, h)
		}
	}
	return out, nil
}

func (f *fakeHolidayRepo) Update(ctx context.Context, h holiday.Holiday) error {
	if _, ok := f.holidays[h.ID]; !ok {
		return holiday.ErrHolidayNotFound
	}
	f.holidays[h.ID] = h
	return nil
}

func (f *fakeHolidayRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.holidays[id]; !ok {
		return holiday.ErrHolidayNotFound
	}
	delete(f.holidays, id)
	return nil
}

func seedHoliday(t *testing.T, svc holiday.HolidayService, name, date string) holiday.HolidayResponse {
	t.Helper()
	created, err := svc.Create(context.Background(), holiday.CreateHolidayRequest{Name: name, Date: date})
	require.NoError(t, err)
	return created
}

func TestHolidayService_Create_DuplicateDate(t *testing.T) {
	svc := NewHolidayService(newFakeHolidayRepo())
	seedHoliday(t, svc, "Founders Day", "2026-03-02")

	_, err := svc.Create(context.Background(), holiday.CreateHolidayRequest{
		Name: "Another Day", Date: "2026-03-02",
	})

	assert.ErrorIs(t, err, holiday.ErrHolidayDateExists)
}

func TestHolidayService_Update(t *testing.T) {
	svc := NewHolidayService(newFakeHolidayRepo())
	created := seedHoliday(t, svc, "Founders Day", "2026-03-02")

	newName := "Founders Day (observed)"
	newDate := "2026-03-03"
	updated, err := svc.Update(context.Background(), holiday.UpdateHolidayRequest{
		ID:   created.ID,
		Name: &newName,
		Date: &newDate,
	})

	require.NoError(t, err)
	assert.Equal(t, newName, updated.Name)
	assert.Equal(t, newDate, updated.Date)
}

func TestHolidayService_Update_DateTaken(t *testing.T) {
	svc := NewHolidayService(newFakeHolidayRepo())
	seedHoliday(t, svc, "Founders Day", "2026-03-02")
	other := seedHoliday(t, svc, "Spring Break", "2026-03-09")

	clash := "2026-03-02"
	_, err := svc.Update(context.Background(), holiday.UpdateHolidayRequest{
		ID:   other.ID,
		Date: &clash,
	})

	assert.ErrorIs(t, err, holiday.ErrHolidayDateExists)
}

func TestHolidayService_Update_NotFound(t *testing.T) {
	svc := NewHolidayService(newFakeHolidayRepo())

	name := "Nothing"
	_, err := svc.Update(context.Background(), holiday.UpdateHolidayRequest{
		ID:   "hol-missing",
		Name: &name,
	})

	assert.ErrorIs(t, err, holiday.ErrHolidayNotFound)
}
