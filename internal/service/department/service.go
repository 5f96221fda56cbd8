package department

import (
	"context"
	"errors"

	"github.com/workstead/hr-backend-go/internal/domain/department"
)

type DepartmentServiceImpl struct {
	department.DepartmentRepository
}

func NewDepartmentService(departmentRepository department.DepartmentRepository) department.DepartmentService {
	return &DepartmentServiceImpl{DepartmentRepository: departmentRepository}
}

// Create implements department.DepartmentService.
func (s *DepartmentServiceImpl) Create(ctx context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
	if err := req.Validate(); err != nil {
		return department.DepartmentResponse{}, err
	}

	if _, err := s.DepartmentRepository.GetByName(ctx, req.Name); err == nil {
		return department.DepartmentResponse{}, department.ErrDepartmentNameExists
	} else if !errors.Is(err, department.ErrDepartmentNotFound) {
		return department.DepartmentResponse{}, err
	}

	dept, err := s.DepartmentRepository.Create(ctx, department.Department{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return department.DepartmentResponse{}, err
	}

	return department.ToResponse(dept), nil
}

// GetByID implements department.DepartmentService.
func (s *DepartmentServiceImpl) GetByID(ctx context.Context, id string) (department.DepartmentResponse, error) {
	dept, err := s.DepartmentRepository.GetByID(ctx, id)
	if err != nil {
		return department.DepartmentResponse{}, err
	}
	return department.ToResponse(dept), nil
}

// List implements department.DepartmentService.
func (s *DepartmentServiceImpl) List(ctx context.Context) ([]department.DepartmentResponse, error) {
	departments, err := s.DepartmentRepository.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]department.DepartmentResponse, 0, len(departments))
	for _, d := range departments {
		resp = append(resp, department.ToResponse(d))
	}
	return resp, nil
}

// Update implements department.DepartmentService.
func (s *DepartmentServiceImpl) Update(ctx context.Context, req department.UpdateDepartmentRequest) (department.DepartmentResponse, error) {
	if err := req.Validate(); err != nil {
		return department.DepartmentResponse{}, err
	}

	dept, err := s.DepartmentRepository.GetByID(ctx, req.ID)
	if err != nil {
		return department.DepartmentResponse{}, err
	}

	if req.Name != nil {
		dept.Name = *req.Name
	}
	if req.Description != nil {
		dept.Description = req.Description
	}

	if err := s.DepartmentRepository.Update(ctx, dept); err != nil {
		return department.DepartmentResponse{}, err
	}

	return department.ToResponse(dept), nil
}

// Delete implements department.DepartmentService. Deleting a department with
// employees still assigned is refused.
func (s *DepartmentServiceImpl) Delete(ctx context.Context, id string) error {
	count, err := s.DepartmentRepository.CountEmployees(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return department.ErrDepartmentNotEmpty
	}

	return s.DepartmentRepository.Delete(ctx, id)
}
