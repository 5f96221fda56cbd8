package auth

import (
	"context"

	"github.com/workstead/hr-backend-go/internal/domain/user"
)

// AuthService - interface for authentication operations
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (TokenResponse, error)
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (TokenResponse, error)
	Logout(ctx context.Context, accessToken, refreshToken string) error

	GetProfile(ctx context.Context, userID string) (user.UserResponse, error)
	UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (user.UserResponse, error)
	ChangePassword(ctx context.Context, userID string, req ChangePasswordRequest) error

	GoogleLoginURL(ctx context.Context, userAgent string) (url string, state string, err error)
	GoogleCallback(ctx context.Context, code string) (TokenResponse, error)
}
