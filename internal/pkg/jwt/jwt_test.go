package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt"

func TestGenerateAccessToken(t *testing.T) {
	svc := NewJWTService(testSecret, "1h", "24h")

	tokenString, expiresAt, err := svc.GenerateAccessToken("user-1", "user@example.com", true)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)
	assert.Greater(t, expiresAt, time.Now().Unix())

	token, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	userID, _ := token.Get("user_id")
	assert.Equal(t, "user-1", userID)
	isAdmin, _ := token.Get("is_admin")
	assert.Equal(t, true, isAdmin)
	tokenType, _ := token.Get("type")
	assert.Equal(t, "access", tokenType)
}

func TestGenerateAccessToken_BadExpiration(t *testing.T) {
	svc := NewJWTService(testSecret, "not-a-duration", "24h")

	_, _, err := svc.GenerateAccessToken("user-1", "user@example.com", false)
	assert.Error(t, err)
}

func TestGenerateRefreshToken(t *testing.T) {
	svc := NewJWTService(testSecret, "1h", "168h")

	tokenString, expiresAt, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	token, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	tokenType, _ := token.Get("type")
	assert.Equal(t, "refresh", tokenType)
	assert.Greater(t, expiresAt, time.Now().Add(167*time.Hour).Unix())
}

func TestRefreshTokenCookie(t *testing.T) {
	svc := NewJWTService(testSecret, "1h", "24h")

	expiresAt := time.Now().Add(24 * time.Hour).Unix()
	cookie := svc.RefreshTokenCookie("sometoken", expiresAt)

	assert.Equal(t, "refresh_token", cookie.Name)
	assert.Equal(t, "sometoken", cookie.Value)
	assert.Equal(t, "/api/v1/auth", cookie.Path)
	assert.True(t, cookie.HttpOnly)
}

func TestStreamTokenRoundTrip(t *testing.T) {
	svc := NewJWTService(testSecret, "1h", "24h")

	tokenString, expiresIn, err := svc.GenerateStreamToken("user-42")
	require.NoError(t, err)
	assert.Equal(t, 300, expiresIn)

	userID, err := svc.ValidateStreamToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "user-42", userID)
}

func TestValidateStreamToken_RejectsAccessToken(t *testing.T) {
	svc := NewJWTService(testSecret, "1h", "24h")

	accessToken, _, err := svc.GenerateAccessToken("user-1", "user@example.com", false)
	require.NoError(t, err)

	_, err = svc.ValidateStreamToken(accessToken)
	assert.Error(t, err)
}

func TestValidateStreamToken_RejectsWrongSecret(t *testing.T) {
	svc := NewJWTService(testSecret, "1h", "24h")
	otherSvc := NewJWTService("a-different-secret", "1h", "24h")

	tokenString, _, err := otherSvc.GenerateStreamToken("user-1")
	require.NoError(t, err)

	_, err = svc.ValidateStreamToken(tokenString)
	assert.Error(t, err)
}
