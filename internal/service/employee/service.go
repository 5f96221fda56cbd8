package employee

import (
	"context"
	"errors"
	"time"

	"github.com/workstead/hr-backend-go/internal/domain/employee"
	"github.com/workstead/hr-backend-go/internal/domain/leave"
	"github.com/workstead/hr-backend-go/internal/domain/user"
	"github.com/workstead/hr-backend-go/internal/pkg/database"
)

type EmployeeServiceImpl struct {
	transactor database.Transactor
	employee.EmployeeRepository
	user.UserRepository
	leaveTypes    leave.LeaveTypeRepository
	leaveBalances leave.LeaveBalanceRepository
}

func NewEmployeeService(
	transactor database.Transactor,
	employeeRepository employee.EmployeeRepository,
	userRepository user.UserRepository,
	leaveTypeRepository leave.LeaveTypeRepository,
	leaveBalanceRepository leave.LeaveBalanceRepository,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		transactor:         transactor,
		EmployeeRepository: employeeRepository,
		UserRepository:     userRepository,
		leaveTypes:         leaveTypeRepository,
		leaveBalances:      leaveBalanceRepository,
	}
}

// Create implements employee.EmployeeService. Creation seeds a leave balance
// for every active leave type in the hire year, all inside one transaction.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if _, err := s.UserRepository.GetByID(ctx, req.UserID); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if _, err := s.EmployeeRepository.GetByUserID(ctx, req.UserID); err == nil {
		return employee.EmployeeResponse{}, employee.ErrUserAlreadyLinked
	} else if !errors.Is(err, employee.ErrEmployeeNotFound) {
		return employee.EmployeeResponse{}, err
	}

	if req.ManagerID != nil {
		if _, err := s.EmployeeRepository.GetByID(ctx, *req.ManagerID); err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				return employee.EmployeeResponse{}, employee.ErrManagerNotFound
			}
			return employee.EmployeeResponse{}, err
		}
	}

	hireDate, _ := time.Parse("2006-01-02", req.HireDate)

	var created employee.Employee
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.EmployeeRepository.Create(ctx, employee.Employee{
			UserID:       req.UserID,
			DepartmentID: req.DepartmentID,
			EmployeeCode: req.EmployeeCode,
			Position:     req.Position,
			HireDate:     hireDate,
			ManagerID:    req.ManagerID,
		})
		if err != nil {
			return err
		}

		types, err := s.leaveTypes.List(ctx, true)
		if err != nil {
			return err
		}
		year := hireDate.Year()
		for _, lt := range types {
			if _, err := s.leaveBalances.Create(ctx, leave.LeaveBalance{
				EmployeeID:  created.ID,
				LeaveTypeID: lt.ID,
				Year:        year,
				Allocated:   lt.DefaultAnnualQuota,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	created, err = s.EmployeeRepository.GetByID(ctx, created.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return employee.ToResponse(created), nil
}

// GetByID implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(emp), nil
}

// GetByUserID implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetByUserID(ctx context.Context, userID string) (employee.EmployeeResponse, error) {
	emp, err := s.EmployeeRepository.GetByUserID(ctx, userID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(emp), nil
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context, filter employee.ListFilter) (employee.ListEmployeesResponse, error) {
	if err := filter.Validate(); err != nil {
		return employee.ListEmployeesResponse{}, err
	}

	employees, total, err := s.EmployeeRepository.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeesResponse{}, err
	}

	resp := employee.ListEmployeesResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Employees:  make([]employee.EmployeeResponse, 0, len(employees)),
	}
	for _, emp := range employees {
		resp.Employees = append(resp.Employees, employee.ToResponse(emp))
	}
	return resp, nil
}

// ListByManager implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListByManager(ctx context.Context, managerID string) ([]employee.EmployeeResponse, error) {
	employees, err := s.EmployeeRepository.ListByManager(ctx, managerID)
	if err != nil {
		return nil, err
	}

	resp := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		resp = append(resp, employee.ToResponse(emp))
	}
	return resp, nil
}

// Update implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.ManagerID != nil {
		if *req.ManagerID == req.ID {
			return employee.EmployeeResponse{}, employee.ErrSelfManager
		}
		if _, err := s.EmployeeRepository.GetByID(ctx, *req.ManagerID); err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				return employee.EmployeeResponse{}, employee.ErrManagerNotFound
			}
			return employee.EmployeeResponse{}, err
		}
	}

	if err := s.EmployeeRepository.Update(ctx, req); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return employee.ToResponse(emp), nil
}

// Delete implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Delete(ctx context.Context, id string) error {
	return s.EmployeeRepository.Delete(ctx, id)
}
