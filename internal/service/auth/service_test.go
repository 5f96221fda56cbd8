package auth

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workstead/hr-backend-go/internal/domain/auth"
	"github.com/workstead/hr-backend-go/internal/domain/employee"
	"github.com/workstead/hr-backend-go/internal/domain/user"
	"github.com/workstead/hr-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

const (
	testSecret     = "test-secret-key-for-jwt"
	testAccessExp  = "1h"
	testRefreshExp = "24h"
)

type fakeTransactor struct{}

func (fakeTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeUserRepo struct {
	users  map[string]user.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]user.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return user.User{}, user.ErrEmailExists
		}
	}
	f.nextID++
	u.ID = fmt.Sprintf("user-%d", f.nextID)
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

func (f *fakeUserRepo) Update(ctx context.Context, u user.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return user.ErrUserNotFound
	}
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) SetActive(ctx context.Context, id string, active bool) error {
	u, ok := f.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.IsActive = active
	f.users[id] = u
	return nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	u, ok := f.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	f.users[id] = u
	return nil
}

func (f *fakeUserRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

type fakeRoleRepo struct {
	assignments []user.RoleAssignment
}

func (f *fakeRoleRepo) Assign(ctx context.Context, assignment user.RoleAssignment) error {
	for _, a := range f.assignments {
		if a.UserID == assignment.UserID && a.Role == assignment.Role {
			return user.ErrRoleAlreadyAssigned
		}
	}
	f.assignments = append(f.assignments, assignment)
	return nil
}

func (f *fakeRoleRepo) Unassign(ctx context.Context, userID string, role user.Role) error {
	for i, a := range f.assignments {
		if a.UserID == userID && a.Role == role {
			f.assignments = append(f.assignments[:i], f.assignments[i+1:]...)
			return nil
		}
	}
	return user.ErrRoleNotAssigned
}

func (f *fakeRoleRepo) GetByUserID(ctx context.Context, userID string) ([]user.RoleAssignment, error) {
	var out []user.RoleAssignment
	for _, a := range f.assignments {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeEmployeeRepo struct {
	byUserID map[string]employee.Employee
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	f.byUserID[emp.UserID] = emp
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	for _, emp := range f.byUserID {
		if emp.ID == id {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	emp, ok := f.byUserID[userID]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByCode(ctx context.Context, code string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) List(ctx context.Context, filter employee.ListFilter) ([]employee.Employee, int64, error) {
	return nil, 0, nil
}

func (f *fakeEmployeeRepo) ListByManager(ctx context.Context, managerID string) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, req employee.UpdateEmployeeRequest) error {
	return nil
}

func (f *fakeEmployeeRepo) Delete(ctx context.Context, id string) error { return nil }

func (f *fakeEmployeeRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.byUserID)), nil
}

type authFixture struct {
	service   auth.AuthService
	users     *fakeUserRepo
	roles     *fakeRoleRepo
	employees *fakeEmployeeRepo
	jwt       jwt.Service
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		users:     newFakeUserRepo(),
		roles:     &fakeRoleRepo{},
		employees: &fakeEmployeeRepo{byUserID: make(map[string]employee.Employee)},
		jwt:       jwt.NewJWTService(testSecret, testAccessExp, testRefreshExp),
	}
	f.service = NewAuthService(fakeTransactor{}, f.users, f.roles, f.employees, f.jwt, nil)
	return f
}

func (f *authFixture) seedUser(t *testing.T, email, password string, active bool) user.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	u, err := f.users.Create(context.Background(), user.User{
		Email:        email,
		Name:         "Test User",
		PasswordHash: string(hash),
		IsActive:     active,
	})
	require.NoError(t, err)
	return u
}

func TestAuthService_Register(t *testing.T) {
	f := newAuthFixture()

	resp, err := f.service.Register(context.Background(), auth.RegisterRequest{
		Email:    "dana@example.com",
		Name:     "Dana Wu",
		Password: "password123",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, user.RoleEmployee, resp.User.Role)

	// The default role was persisted, not just returned.
	assignments, err := f.roles.GetByUserID(context.Background(), resp.User.ID)
	require.NoError(t, err)
	require.Len(t, assignments, 1)
	assert.Equal(t, user.RoleEmployee, assignments[0].Role)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	f := newAuthFixture()
	f.seedUser(t, "dana@example.com", "password123", true)

	_, err := f.service.Register(context.Background(), auth.RegisterRequest{
		Email:    "dana@example.com",
		Name:     "Dana Wu",
		Password: "password123",
	})

	assert.ErrorIs(t, err, user.ErrEmailExists)
}

func TestAuthService_Login(t *testing.T) {
	f := newAuthFixture()
	f.seedUser(t, "dana@example.com", "password123", true)

	resp, err := f.service.Login(context.Background(), auth.LoginRequest{
		Email:    "dana@example.com",
		Password: "password123",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Greater(t, resp.AccessTokenExpiresIn, int64(0))
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	f := newAuthFixture()
	f.seedUser(t, "dana@example.com", "password123", true)

	_, err := f.service.Login(context.Background(), auth.LoginRequest{
		Email:    "dana@example.com",
		Password: "wrongpassword",
	})

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	f := newAuthFixture()

	_, err := f.service.Login(context.Background(), auth.LoginRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	})

	// Unknown email and wrong password are indistinguishable to the caller.
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	f := newAuthFixture()
	f.seedUser(t, "dana@example.com", "password123", false)

	_, err := f.service.Login(context.Background(), auth.LoginRequest{
		Email:    "dana@example.com",
		Password: "password123",
	})

	assert.ErrorIs(t, err, user.ErrUserInactive)
}

func TestAuthService_RefreshToken_Rotation(t *testing.T) {
	f := newAuthFixture()
	f.seedUser(t, "dana@example.com", "password123", true)

	login, err := f.service.Login(context.Background(), auth.LoginRequest{
		Email:    "dana@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	refreshed, err := f.service.RefreshToken(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	// The old refresh token was revoked by the rotation.
	_, err = f.service.RefreshToken(context.Background(), login.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestAuthService_Logout_RevokesBothTokens(t *testing.T) {
	f := newAuthFixture()
	f.seedUser(t, "dana@example.com", "password123", true)

	login, err := f.service.Login(context.Background(), auth.LoginRequest{
		Email:    "dana@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	require.NoError(t, f.service.Logout(context.Background(), login.AccessToken, login.RefreshToken))

	assert.True(t, f.jwt.IsTokenRevoked(login.AccessToken))
	assert.True(t, f.jwt.IsTokenRevoked(login.RefreshToken))

	// The refresh token can no longer be rotated.
	_, err = f.service.RefreshToken(context.Background(), login.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestAuthService_ChangePassword(t *testing.T) {
	f := newAuthFixture()
	u := f.seedUser(t, "dana@example.com", "password123", true)

	err := f.service.ChangePassword(context.Background(), u.ID, auth.ChangePasswordRequest{
		CurrentPassword: "password123",
		NewPassword:     "newpassword456",
	})
	require.NoError(t, err)

	// Old password no longer works, the new one does.
	_, err = f.service.Login(context.Background(), auth.LoginRequest{
		Email: "dana@example.com", Password: "password123",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = f.service.Login(context.Background(), auth.LoginRequest{
		Email: "dana@example.com", Password: "newpassword456",
	})
	assert.NoError(t, err)
}

func TestAuthService_ChangePassword_WrongCurrent(t *testing.T) {
	f := newAuthFixture()
	u := f.seedUser(t, "dana@example.com", "password123", true)

	err := f.service.ChangePassword(context.Background(), u.ID, auth.ChangePasswordRequest{
		CurrentPassword: "wrongpassword",
		NewPassword:     "newpassword456",
	})

	assert.ErrorIs(t, err, auth.ErrPasswordMismatch)
}
