package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrInvalidToken       = errors.New("Invalid or missing token")
	ErrTokenExpired       = errors.New("Token expired")
	ErrPasswordMismatch   = errors.New("Current password is incorrect")
	ErrOAuthStateMismatch = errors.New("OAuth state mismatch")
	ErrOAuthEmailTaken    = errors.New("Email already registered with password login")
)
