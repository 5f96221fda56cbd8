package leave

import (
	"context"
	"errors"

	"github.com/workstead/hr-backend-go/internal/domain/leave"
)

type LeaveTypeServiceImpl struct {
	leave.LeaveTypeRepository
}

func NewLeaveTypeService(leaveTypeRepository leave.LeaveTypeRepository) leave.LeaveTypeService {
	return &LeaveTypeServiceImpl{LeaveTypeRepository: leaveTypeRepository}
}

// Create implements leave.LeaveTypeService.
func (s *LeaveTypeServiceImpl) Create(ctx context.Context, req leave.CreateLeaveTypeRequest) (leave.LeaveTypeResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveTypeResponse{}, err
	}

	if _, err := s.LeaveTypeRepository.GetByCode(ctx, req.Code); err == nil {
		return leave.LeaveTypeResponse{}, leave.ErrLeaveTypeCodeExists
	} else if !errors.Is(err, leave.ErrLeaveTypeNotFound) {
		return leave.LeaveTypeResponse{}, err
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	lt, err := s.LeaveTypeRepository.Create(ctx, leave.LeaveType{
		Name:               req.Name,
		Code:               req.Code,
		Description:        req.Description,
		DefaultAnnualQuota: req.DefaultAnnualQuota,
		IsActive:           active,
	})
	if err != nil {
		return leave.LeaveTypeResponse{}, err
	}

	return leave.ToTypeResponse(lt), nil
}

// List implements leave.LeaveTypeService.
func (s *LeaveTypeServiceImpl) List(ctx context.Context, activeOnly bool) ([]leave.LeaveTypeResponse, error) {
	types, err := s.LeaveTypeRepository.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}

	resp := make([]leave.LeaveTypeResponse, 0, len(types))
	for _, lt := range types {
		resp = append(resp, leave.ToTypeResponse(lt))
	}
	return resp, nil
}

// Update implements leave.LeaveTypeService.
func (s *LeaveTypeServiceImpl) Update(ctx context.Context, req leave.UpdateLeaveTypeRequest) (leave.LeaveTypeResponse, error) {
	lt, err := s.LeaveTypeRepository.GetByID(ctx, req.ID)
	if err != nil {
		return leave.LeaveTypeResponse{}, err
	}

	if req.Name != nil {
		lt.Name = *req.Name
	}
	if req.Description != nil {
		lt.Description = req.Description
	}
	if req.DefaultAnnualQuota != nil {
		lt.DefaultAnnualQuota = *req.DefaultAnnualQuota
	}
	if req.IsActive != nil {
		lt.IsActive = *req.IsActive
	}

	if err := s.LeaveTypeRepository.Update(ctx, lt); err != nil {
		return leave.LeaveTypeResponse{}, err
	}

	return leave.ToTypeResponse(lt), nil
}

// Delete implements leave.LeaveTypeService. Types are soft-disabled rather
// than removed when balances still reference them, so Delete only handles
// the unreferenced case and otherwise deactivates.
func (s *LeaveTypeServiceImpl) Delete(ctx context.Context, id string) error {
	lt, err := s.LeaveTypeRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.LeaveTypeRepository.Delete(ctx, id); err == nil {
		return nil
	}

	lt.IsActive = false
	return s.LeaveTypeRepository.Update(ctx, lt)
}
