package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/workstead/hr-backend-go/internal/domain/auth"
	"github.com/workstead/hr-backend-go/internal/domain/employee"
	"github.com/workstead/hr-backend-go/internal/domain/user"
	"github.com/workstead/hr-backend-go/internal/pkg/database"
	"github.com/workstead/hr-backend-go/internal/pkg/jwt"
	"github.com/workstead/hr-backend-go/internal/pkg/oauth"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	transactor database.Transactor
	user.UserRepository
	user.RoleRepository
	employee.EmployeeRepository
	jwt.Service
	google oauth.GoogleService
}

func NewAuthService(
	transactor database.Transactor,
	userRepository user.UserRepository,
	roleRepository user.RoleRepository,
	employeeRepository employee.EmployeeRepository,
	jwtService jwt.Service,
	googleService oauth.GoogleService,
) auth.AuthService {
	return &AuthServiceImpl{
		transactor:         transactor,
		UserRepository:     userRepository,
		RoleRepository:     roleRepository,
		EmployeeRepository: employeeRepository,
		Service:            jwtService,
		google:             googleService,
	}
}

func (a *AuthServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Register implements auth.AuthService. New accounts always start as
// EMPLOYEE; elevated roles are assigned by an admin afterwards.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	hash, err := a.hashPassword(req.Password)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	var created user.User
	err = a.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		created, err = a.UserRepository.Create(ctx, user.User{
			Email:        req.Email,
			Name:         req.Name,
			PasswordHash: hash,
			IsActive:     true,
		})
		if err != nil {
			return err
		}

		if err := a.RoleRepository.Assign(ctx, user.RoleAssignment{
			UserID: created.ID,
			Role:   user.RoleEmployee,
		}); err != nil {
			return err
		}
		created.Roles = []user.Role{user.RoleEmployee}
		return nil
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return a.issueTokens(ctx, created)
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	userData, err := a.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	if !userData.IsActive {
		return auth.TokenResponse{}, user.ErrUserInactive
	}

	return a.issueTokens(ctx, userData)
}

// RefreshToken implements auth.AuthService. The old refresh token is revoked
// so each token is good for one rotation.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (auth.TokenResponse, error) {
	userID, err := a.Service.ValidateRefreshToken(refreshToken)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return auth.TokenResponse{}, err
	}
	if !userData.IsActive {
		return auth.TokenResponse{}, user.ErrUserInactive
	}

	a.Service.RevokeToken(refreshToken)

	return a.issueTokens(ctx, userData)
}

// Logout implements auth.AuthService. Both tokens of the session are revoked
// so a logged-out access token stops working before it expires.
func (a *AuthServiceImpl) Logout(ctx context.Context, accessToken, refreshToken string) error {
	if accessToken != "" {
		a.Service.RevokeToken(accessToken)
	}
	if refreshToken != "" {
		a.Service.RevokeToken(refreshToken)
	}
	return nil
}

// GetProfile implements auth.AuthService.
func (a *AuthServiceImpl) GetProfile(ctx context.Context, userID string) (user.UserResponse, error) {
	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.ToResponse(userData), nil
}

// UpdateProfile implements auth.AuthService.
func (a *AuthServiceImpl) UpdateProfile(ctx context.Context, userID string, req auth.UpdateProfileRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return user.UserResponse{}, err
	}

	if req.Name != nil {
		userData.Name = *req.Name
	}
	if req.Email != nil {
		userData.Email = *req.Email
	}

	if err := a.UserRepository.Update(ctx, userData); err != nil {
		return user.UserResponse{}, err
	}

	return user.ToResponse(userData), nil
}

// ChangePassword implements auth.AuthService.
func (a *AuthServiceImpl) ChangePassword(ctx context.Context, userID string, req auth.ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return auth.ErrPasswordMismatch
	}

	hash, err := a.hashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	return a.UserRepository.UpdatePassword(ctx, userID, hash)
}

// GoogleLoginURL implements auth.AuthService.
func (a *AuthServiceImpl) GoogleLoginURL(ctx context.Context, userAgent string) (string, string, error) {
	state := a.google.GenerateState(userAgent)
	if state == "" {
		return "", "", fmt.Errorf("failed to generate oauth state")
	}
	return a.google.RedirectURL(state), state, nil
}

// GoogleCallback implements auth.AuthService. A first-time Google login with
// an unknown email creates a fresh EMPLOYEE account with a random password.
func (a *AuthServiceImpl) GoogleCallback(ctx context.Context, code string) (auth.TokenResponse, error) {
	token, err := a.google.VerifyToken(ctx, code)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	info, err := a.google.VerifyUser(ctx, token)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}
	if !info.VerifiedEmail {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	userData, err := a.UserRepository.GetByEmail(ctx, info.Email)
	if err == nil {
		if !userData.IsActive {
			return auth.TokenResponse{}, user.ErrUserInactive
		}
		return a.issueTokens(ctx, userData)
	}
	if !errors.Is(err, user.ErrUserNotFound) {
		return auth.TokenResponse{}, err
	}

	hash, err := a.hashPassword(randomPassword())
	if err != nil {
		return auth.TokenResponse{}, err
	}

	var created user.User
	err = a.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		created, err = a.UserRepository.Create(ctx, user.User{
			Email:        info.Email,
			Name:         info.Name,
			PasswordHash: hash,
			IsActive:     true,
		})
		if err != nil {
			return err
		}
		if err := a.RoleRepository.Assign(ctx, user.RoleAssignment{
			UserID: created.ID,
			Role:   user.RoleEmployee,
		}); err != nil {
			return err
		}
		created.Roles = []user.Role{user.RoleEmployee}
		return nil
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return a.issueTokens(ctx, created)
}

func (a *AuthServiceImpl) issueTokens(ctx context.Context, userData user.User) (auth.TokenResponse, error) {
	var employeeID *string
	if emp, err := a.EmployeeRepository.GetByUserID(ctx, userData.ID); err == nil {
		employeeID = &emp.ID
	} else if !errors.Is(err, employee.ErrEmployeeNotFound) {
		return auth.TokenResponse{}, err
	}

	var resp auth.TokenResponse
	var err error

	resp.AccessToken, resp.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(
		userData.ID, userData.Email, employeeID, user.EffectiveRole(userData.Roles))
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	resp.RefreshToken, resp.RefreshTokenExpiresIn, err = a.Service.GenerateRefreshToken(userData.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create refresh token: %w", err)
	}

	resp.User = user.ToResponse(userData)
	return resp, nil
}

func randomPassword() string {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return base64.URLEncoding.EncodeToString([]byte("fallback-entropy-source"))
	}
	return base64.URLEncoding.EncodeToString(b)
}
