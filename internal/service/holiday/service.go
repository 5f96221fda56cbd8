package holiday

import (
	"context"
	"time"

	"github.com/workstead/hr-backend-go/internal/domain/holiday"
)

type HolidayServiceImpl struct {
	holiday.HolidayRepository

	now func() time.Time
}

func NewHolidayService(holidayRepository holiday.HolidayRepository) holiday.HolidayService {
	return &HolidayServiceImpl{
		HolidayRepository: holidayRepository,
		now:               time.Now,
	}
}

// Create implements holiday.HolidayService.
func (s *HolidayServiceImpl) Create(ctx context.Context, req holiday.CreateHolidayRequest) (holiday.HolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return holiday.HolidayResponse{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)

	existing, err := s.HolidayRepository.GetByDate(ctx, date)
	if err != nil {
		return holiday.HolidayResponse{}, err
	}
	if existing != nil {
		return holiday.HolidayResponse{}, holiday.ErrHolidayDateExists
	}

	h, err := s.HolidayRepository.Create(ctx, holiday.Holiday{
		Name: req.Name,
		Date: date,
	})
	if err != nil {
		return holiday.HolidayResponse{}, err
	}

	return holiday.ToResponse(h), nil
}

// List implements holiday.HolidayService.
func (s *HolidayServiceImpl) List(ctx context.Context, year int) ([]holiday.HolidayResponse, error) {
	if year == 0 {
		year = s.now().Year()
	}

	holidays, err := s.HolidayRepository.List(ctx, year)
	if err != nil {
		return nil, err
	}

	resp := make([]holiday.HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		resp = append(resp, holiday.ToResponse(h))
	}
	return resp, nil
}

// Update implements holiday.HolidayService. Moving a holiday onto an already
// occupied date is rejected.
func (s *HolidayServiceImpl) Update(ctx context.Context, req holiday.UpdateHolidayRequest) (holiday.HolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return holiday.HolidayResponse{}, err
	}

	h, err := s.HolidayRepository.GetByID(ctx, req.ID)
	if err != nil {
		return holiday.HolidayResponse{}, err
	}

	if req.Name != nil {
		h.Name = *req.Name
	}
	if req.Date != nil {
		date, _ := time.Parse("2006-01-02", *req.Date)
		if !date.Equal(h.Date) {
			existing, err := s.HolidayRepository.GetByDate(ctx, date)
			if err != nil {
				return holiday.HolidayResponse{}, err
			}
			if existing != nil {
				return holiday.HolidayResponse{}, holiday.ErrHolidayDateExists
			}
		}
		h.Date = date
	}

	if err := s.HolidayRepository.Update(ctx, h); err != nil {
		return holiday.HolidayResponse{}, err
	}

	return holiday.ToResponse(h), nil
}

// Delete implements holiday.HolidayService.
func (s *HolidayServiceImpl) Delete(ctx context.Context, id string) error {
	return s.HolidayRepository.Delete(ctx, id)
}
