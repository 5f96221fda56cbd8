package user

import (
	"context"
	"time"

	"github.com/workstead/hr-backend-go/internal/domain/attendance"
	"github.com/workstead/hr-backend-go/internal/domain/department"
	"github.com/workstead/hr-backend-go/internal/domain/employee"
	"github.com/workstead/hr-backend-go/internal/domain/leave"
	"github.com/workstead/hr-backend-go/internal/domain/user"
)

type UserServiceImpl struct {
	user.UserRepository
	user.RoleRepository
	employee.EmployeeRepository
	department.DepartmentRepository
	attendance.AttendanceRepository
	leave.LeaveRequestRepository
}

func NewUserService(
	userRepository user.UserRepository,
	roleRepository user.RoleRepository,
	employeeRepository employee.EmployeeRepository,
	departmentRepository department.DepartmentRepository,
	attendanceRepository attendance.AttendanceRepository,
	leaveRequestRepository leave.LeaveRequestRepository,
) user.UserService {
	return &UserServiceImpl{
		UserRepository:         userRepository,
		RoleRepository:         roleRepository,
		EmployeeRepository:     employeeRepository,
		DepartmentRepository:   departmentRepository,
		AttendanceRepository:   attendanceRepository,
		LeaveRequestRepository: leaveRequestRepository,
	}
}

// List implements user.UserService.
func (s *UserServiceImpl) List(ctx context.Context, page, limit int) (user.ListUsersResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	users, total, err := s.UserRepository.List(ctx, page, limit)
	if err != nil {
		return user.ListUsersResponse{}, err
	}

	resp := user.ListUsersResponse{
		TotalCount: total,
		Page:       page,
		Limit:      limit,
		Users:      make([]user.UserResponse, 0, len(users)),
	}
	for _, u := range users {
		resp.Users = append(resp.Users, user.ToResponse(u))
	}
	return resp, nil
}

// GetByID implements user.UserService.
func (s *UserServiceImpl) GetByID(ctx context.Context, id string) (user.UserResponse, error) {
	u, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.ToResponse(u), nil
}

// SetActive implements user.UserService.
func (s *UserServiceImpl) SetActive(ctx context.Context, id string, active bool) error {
	return s.UserRepository.SetActive(ctx, id, active)
}

// AssignRole implements user.UserService.
func (s *UserServiceImpl) AssignRole(ctx context.Context, userID string, req user.AssignRoleRequest, assignedBy string) error {
	if err := req.Validate(); err != nil {
		return err
	}

	if _, err := s.UserRepository.GetByID(ctx, userID); err != nil {
		return err
	}

	return s.RoleRepository.Assign(ctx, user.RoleAssignment{
		UserID:     userID,
		Role:       user.Role(req.Role),
		AssignedBy: &assignedBy,
	})
}

// UnassignRole implements user.UserService.
func (s *UserServiceImpl) UnassignRole(ctx context.Context, userID string, role string) error {
	r := user.Role(role)
	if !r.IsValid() {
		return user.ErrInvalidRole
	}
	return s.RoleRepository.Unassign(ctx, userID, r)
}

// Roles implements user.UserService.
func (s *UserServiceImpl) Roles(ctx context.Context) []user.RoleInfo {
	return user.DescribeRoles()
}

// Stats implements user.UserService.
func (s *UserServiceImpl) Stats(ctx context.Context) (user.AdminStats, error) {
	var stats user.AdminStats
	var err error

	if stats.TotalUsers, err = s.UserRepository.Count(ctx); err != nil {
		return user.AdminStats{}, err
	}
	if stats.TotalEmployees, err = s.EmployeeRepository.Count(ctx); err != nil {
		return user.AdminStats{}, err
	}
	if stats.TotalDepartments, err = s.DepartmentRepository.Count(ctx); err != nil {
		return user.AdminStats{}, err
	}

	today := time.Now().Truncate(24 * time.Hour)
	if stats.PresentToday, err = s.AttendanceRepository.CountByDate(ctx, today); err != nil {
		return user.AdminStats{}, err
	}
	if stats.PendingLeaves, err = s.LeaveRequestRepository.CountByStatus(ctx, leave.StatusPending); err != nil {
		return user.AdminStats{}, err
	}

	return stats, nil
}
