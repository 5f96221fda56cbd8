package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workstead/hr-backend-go/internal/domain/user"
)

func newTestService() Service {
	return NewJWTService("test-secret-key-for-jwt", "1h", "24h")
}

func TestGenerateAccessToken_Claims(t *testing.T) {
	svc := newTestService()
	employeeID := "emp-1"

	tokenString, expiresAt, err := svc.GenerateAccessToken("user-1", "dana@example.com", &employeeID, user.RoleManager)
	require.NoError(t, err)
	assert.Greater(t, expiresAt, time.Now().Unix())

	token, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	get := func(key string) interface{} {
		v, ok := token.Get(key)
		require.True(t, ok, "missing claim %s", key)
		return v
	}
	assert.Equal(t, "user-1", get("user_id"))
	assert.Equal(t, "dana@example.com", get("email"))
	assert.Equal(t, "emp-1", get("employee_id"))
	assert.Equal(t, "MANAGER", get("role"))
	assert.Equal(t, "access", get("type"))
}

func TestGenerateAccessToken_NoEmployeeProfile(t *testing.T) {
	svc := newTestService()

	tokenString, _, err := svc.GenerateAccessToken("user-1", "dana@example.com", nil, user.RoleAdmin)
	require.NoError(t, err)

	token, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	v, ok := token.Get("employee_id")
	require.True(t, ok)
	assert.Nil(t, v)
}

func TestValidateRefreshToken(t *testing.T) {
	svc := newTestService()

	tokenString, _, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	userID, err := svc.ValidateRefreshToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestValidateRefreshToken_RejectsAccessToken(t *testing.T) {
	svc := newTestService()

	tokenString, _, err := svc.GenerateAccessToken("user-1", "dana@example.com", nil, user.RoleEmployee)
	require.NoError(t, err)

	_, err = svc.ValidateRefreshToken(tokenString)
	assert.Error(t, err)
}

func TestValidateRefreshToken_Revoked(t *testing.T) {
	svc := newTestService()

	tokenString, _, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	svc.RevokeToken(tokenString)

	_, err = svc.ValidateRefreshToken(tokenString)
	assert.Error(t, err)
	assert.True(t, svc.IsTokenRevoked(tokenString))
}

func TestGenerateRefreshToken_Unique(t *testing.T) {
	svc := newTestService()

	first, _, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)
	second, _, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	// Same user, same second: the jti still keeps them distinct.
	assert.NotEqual(t, first, second)
}

func TestRefreshTokenCookie(t *testing.T) {
	svc := newTestService()
	expiresAt := time.Now().Add(24 * time.Hour).Unix()

	cookie := svc.RefreshTokenCookie("some-token", expiresAt)

	assert.Equal(t, "refresh_token", cookie.Name)
	assert.Equal(t, "some-token", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "/api/v1/auth", cookie.Path)
	assert.Equal(t, time.Unix(expiresAt, 0), cookie.Expires)
}
