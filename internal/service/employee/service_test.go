package employee

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workstead/hr-backend-go/internal/domain/department"
	"github.com/workstead/hr-backend-go/internal/domain/employee"
	"github.com/workstead/hr-backend-go/internal/domain/leave"
	"github.com/workstead/hr-backend-go/internal/domain/user"
	departmentService "github.com/workstead/hr-backend-go/internal/service/department"
)

type fakeTransactor struct{}

func (fakeTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
	nextID    int
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{employees: make(map[string]employee.Employee)}
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	f.nextID++
	emp.ID = fmt.Sprintf("emp-%d", f.nextID)
	f.employees[emp.ID] = emp
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	for _, emp := range f.employees {
		if emp.UserID == userID {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetByCode(ctx context.Context, code string) (employee.Employee, error) {
	for _, emp := range f.employees {
		if emp.EmployeeCode == code {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) List(ctx context.Context, filter employee.ListFilter) ([]employee.Employee, int64, error) {
	return nil, 0, nil
}

func (f *fakeEmployeeRepo) ListByManager(ctx context.Context, managerID string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, emp := range f.employees {
		if emp.ManagerID != nil && *emp.ManagerID == managerID {
			out = append(out, emp)
		}
	}
	return out, nil
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, req employee.UpdateEmployeeRequest) error {
	emp, ok := f.employees[req.ID]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	if req.DepartmentID != nil {
		emp.DepartmentID = *req.DepartmentID
	}
	if req.Position != nil {
		emp.Position = req.Position
	}
	if req.ManagerID != nil {
		emp.ManagerID = req.ManagerID
	}
	f.employees[req.ID] = emp
	return nil
}

func (f *fakeEmployeeRepo) Delete(ctx context.Context, id string) error {
	delete(f.employees, id)
	return nil
}

func (f *fakeEmployeeRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.employees)), nil
}

type fakeUserRepo struct {
	users map[string]user.User
}

func (f *fakeUserRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) List(ctx context.Context, page, limit int) ([]user.User, int64, error) {
	return nil, 0, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, u user.User) error { return nil }

func (f *fakeUserRepo) SetActive(ctx context.Context, id string, active bool) error { return nil }

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	return nil
}

func (f *fakeUserRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

type fakeTypeRepo struct {
	types []leave.LeaveType
}

func (f *fakeTypeRepo) Create(ctx context.Context, lt leave.LeaveType) (leave.LeaveType, error) {
	f.types = append(f.types, lt)
	return lt, nil
}

func (f *fakeTypeRepo) GetByID(ctx context.Context, id string) (leave.LeaveType, error) {
	for _, lt := range f.types {
		if lt.ID == id {
			return lt, nil
		}
	}
	return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
}

func (f *fakeTypeRepo) GetByCode(ctx context.Context, code string) (leave.LeaveType, error) {
	for _, lt := range f.types {
		if lt.Code == code {
			return lt, nil
		}
	}
	return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
}

func (f *fakeTypeRepo) List(ctx context.Context, activeOnly bool) ([]leave.LeaveType, error) {
	var out []leave.LeaveType
	for _, lt := range f.types {
		if activeOnly && !lt.IsActive {
			continue
		}
		out = append(out, lt)
	}
	return out, nil
}

func (f *fakeTypeRepo) Update(ctx context.Context, lt leave.LeaveType) error { return nil }

func (f *fakeTypeRepo) Delete(ctx context.Context, id string) error { return nil }

type fakeBalanceRepo struct {
	created []leave.LeaveBalance
}

func (f *fakeBalanceRepo) Create(ctx context.Context, balance leave.LeaveBalance) (leave.LeaveBalance, error) {
	f.created = append(f.created, balance)
	return balance, nil
}

func (f *fakeBalanceRepo) GetByEmployeeTypeYear(ctx context.Context, employeeID, leaveTypeID string, year int) (leave.LeaveBalance, error) {
	return leave.LeaveBalance{}, leave.ErrBalanceNotFound
}

func (f *fakeBalanceRepo) GetByEmployeeYear(ctx context.Context, employeeID string, year int) ([]leave.LeaveBalance, error) {
	return nil, nil
}

func (f *fakeBalanceRepo) ListByYear(ctx context.Context, year int) ([]leave.LeaveBalance, error) {
	return nil, nil
}

func (f *fakeBalanceRepo) AddPending(ctx context.Context, balanceID string, delta float64) error {
	return nil
}

func (f *fakeBalanceRepo) MovePendingToUsed(ctx context.Context, balanceID string, days float64) error {
	return nil
}

func (f *fakeBalanceRepo) ReleaseUsed(ctx context.Context, balanceID string, days float64) error {
	return nil
}

type employeeFixture struct {
	service   employee.EmployeeService
	employees *fakeEmployeeRepo
	users     *fakeUserRepo
	types     *fakeTypeRepo
	balances  *fakeBalanceRepo
}

func newEmployeeFixture() *employeeFixture {
	f := &employeeFixture{
		employees: newFakeEmployeeRepo(),
		users:     &fakeUserRepo{users: make(map[string]user.User)},
		types:     &fakeTypeRepo{},
		balances:  &fakeBalanceRepo{},
	}
	f.users.users["user-1"] = user.User{ID: "user-1", Email: "dana@example.com", IsActive: true}
	f.types.types = []leave.LeaveType{
		{ID: "lt-annual", Name: "Annual Leave", Code: "ANNUAL", DefaultAnnualQuota: 12, IsActive: true},
		{ID: "lt-sick", Name: "Sick Leave", Code: "SICK", DefaultAnnualQuota: 10, IsActive: true},
		{ID: "lt-old", Name: "Retired Type", Code: "OLD", DefaultAnnualQuota: 5, IsActive: false},
	}
	f.service = NewEmployeeService(fakeTransactor{}, f.employees, f.users, f.types, f.balances)
	return f
}

func TestEmployeeService_Create_SeedsBalances(t *testing.T) {
	f := newEmployeeFixture()

	resp, err := f.service.Create(context.Background(), employee.CreateEmployeeRequest{
		UserID:       "user-1",
		DepartmentID: "dept-1",
		EmployeeCode: "EMP-0001",
		HireDate:     "2026-02-16",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, time.Date(2026, time.February, 16, 0, 0, 0, 0, time.UTC), resp.HireDate)

	// One balance per active leave type, allocated from the type quota.
	require.Len(t, f.balances.created, 2)
	for _, b := range f.balances.created {
		assert.Equal(t, resp.ID, b.EmployeeID)
		assert.Equal(t, 2026, b.Year)
	}
	assert.Equal(t, 12.0, f.balances.created[0].Allocated)
}

func TestEmployeeService_Create_UserNotFound(t *testing.T) {
	f := newEmployeeFixture()

	_, err := f.service.Create(context.Background(), employee.CreateEmployeeRequest{
		UserID:       "user-missing",
		DepartmentID: "dept-1",
		EmployeeCode: "EMP-0001",
		HireDate:     "2026-02-16",
	})

	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestEmployeeService_Create_UserAlreadyLinked(t *testing.T) {
	f := newEmployeeFixture()

	_, err := f.service.Create(context.Background(), employee.CreateEmployeeRequest{
		UserID:       "user-1",
		DepartmentID: "dept-1",
		EmployeeCode: "EMP-0001",
		HireDate:     "2026-02-16",
	})
	require.NoError(t, err)

	_, err = f.service.Create(context.Background(), employee.CreateEmployeeRequest{
		UserID:       "user-1",
		DepartmentID: "dept-1",
		EmployeeCode: "EMP-0002",
		HireDate:     "2026-02-16",
	})
	assert.ErrorIs(t, err, employee.ErrUserAlreadyLinked)
}

func TestEmployeeService_Create_ManagerNotFound(t *testing.T) {
	f := newEmployeeFixture()
	missing := "emp-missing"

	_, err := f.service.Create(context.Background(), employee.CreateEmployeeRequest{
		UserID:       "user-1",
		DepartmentID: "dept-1",
		EmployeeCode: "EMP-0001",
		HireDate:     "2026-02-16",
		ManagerID:    &missing,
	})

	assert.ErrorIs(t, err, employee.ErrManagerNotFound)
}

func TestEmployeeService_Create_InvalidCode(t *testing.T) {
	f := newEmployeeFixture()

	_, err := f.service.Create(context.Background(), employee.CreateEmployeeRequest{
		UserID:       "user-1",
		DepartmentID: "dept-1",
		EmployeeCode: "BADCODE",
		HireDate:     "2026-02-16",
	})

	assert.Error(t, err)
}

// fakeDepartmentRepo counts employees through the same employee store the
// employee service writes to.
type fakeDepartmentRepo struct {
	departments map[string]department.Department
	employees   *fakeEmployeeRepo
	nextID      int
}

func (f *fakeDepartmentRepo) Create(ctx context.Context, dept department.Department) (department.Department, error) {
	f.nextID++
	dept.ID = fmt.Sprintf("dept-%d", f.nextID)
	f.departments[dept.ID] = dept
	return dept, nil
}

func (f *fakeDepartmentRepo) GetByID(ctx context.Context, id string) (department.Department, error) {
	dept, ok := f.departments[id]
	if !ok {
		return department.Department{}, department.ErrDepartmentNotFound
	}
	dept.EmployeeCount, _ = f.CountEmployees(ctx, id)
	return dept, nil
}

func (f *fakeDepartmentRepo) GetByName(ctx context.Context, name string) (department.Department, error) {
	for _, dept := range f.departments {
		if dept.Name == name {
			return dept, nil
		}
	}
	return department.Department{}, department.ErrDepartmentNotFound
}

func (f *fakeDepartmentRepo) List(ctx context.Context) ([]department.Department, error) {
	out := make([]department.Department, 0, len(f.departments))
	for _, dept := range f.departments {
		out = append(out, dept)
	}
	return out, nil
}

func (f *fakeDepartmentRepo) Update(ctx context.Context, dept department.Department) error {
	f.departments[dept.ID] = dept
	return nil
}

func (f *fakeDepartmentRepo) Delete(ctx context.Context, id string) error {
	delete(f.departments, id)
	return nil
}

func (f *fakeDepartmentRepo) CountEmployees(ctx context.Context, id string) (int64, error) {
	var n int64
	for _, emp := range f.employees.employees {
		if emp.DepartmentID == id {
			n++
		}
	}
	return n, nil
}

func (f *fakeDepartmentRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.departments)), nil
}

func TestEmployeeService_Delete_LeavesDepartmentIntact(t *testing.T) {
	f := newEmployeeFixture()
	deptRepo := &fakeDepartmentRepo{
		departments: make(map[string]department.Department),
		employees:   f.employees,
	}
	departments := departmentService.NewDepartmentService(deptRepo)

	dept, err := departments.Create(context.Background(), department.CreateDepartmentRequest{Name: "Engineering"})
	require.NoError(t, err)

	created, err := f.service.Create(context.Background(), employee.CreateEmployeeRequest{
		UserID:       "user-1",
		DepartmentID: dept.ID,
		EmployeeCode: "EMP-0001",
		HireDate:     "2026-02-16",
	})
	require.NoError(t, err)

	got, err := departments.GetByID(context.Background(), dept.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.EmployeeCount)

	before, err := f.employees.Count(context.Background())
	require.NoError(t, err)

	require.NoError(t, f.service.Delete(context.Background(), created.ID))

	// The department survives the employee and its count drops by one.
	got, err = departments.GetByID(context.Background(), dept.ID)
	require.NoError(t, err)
	assert.Equal(t, "Engineering", got.Name)
	assert.Equal(t, int64(0), got.EmployeeCount)

	after, err := f.employees.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, before-1, after)

	_, err = f.service.GetByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestEmployeeService_Update_SelfManager(t *testing.T) {
	f := newEmployeeFixture()

	created, err := f.service.Create(context.Background(), employee.CreateEmployeeRequest{
		UserID:       "user-1",
		DepartmentID: "dept-1",
		EmployeeCode: "EMP-0001",
		HireDate:     "2026-02-16",
	})
	require.NoError(t, err)

	self := created.ID
	_, err = f.service.Update(context.Background(), employee.UpdateEmployeeRequest{
		ID:        created.ID,
		ManagerID: &self,
	})

	assert.ErrorIs(t, err, employee.ErrSelfManager)
}
