package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corehr/hr-backend-go/internal/pkg/jwt"
)

func newChain(jwtService jwt.Service, adminOnly bool) http.Handler {
	var final http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, err := Principal(r.Context())
		if err != nil {
			http.Error(w, "no principal", http.StatusInternalServerError)
			return
		}
		w.Write([]byte(principal.UserID))
	})

	if adminOnly {
		final = AdminOnly(final)
	}
	auth := jwtService.JWTAuth()
	return jwtauth.Verifier(auth)(AuthRequired(auth)(final))
}

func doRequest(t *testing.T, handler http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestAuthRequired(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret", "1h", "24h")
	handler := newChain(jwtService, false)

	t.Run("missing token", func(t *testing.T) {
		rec := doRequest(t, handler, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid access token", func(t *testing.T) {
		token, _, err := jwtService.GenerateAccessToken("user-1", "u@example.com", false)
		require.NoError(t, err)

		rec := doRequest(t, handler, token)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "user-1", rec.Body.String())
	})

	t.Run("refresh token rejected", func(t *testing.T) {
		token, _, err := jwtService.GenerateRefreshToken("user-1")
		require.NoError(t, err)

		rec := doRequest(t, handler, token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong secret rejected", func(t *testing.T) {
		otherService := jwt.NewJWTService("other-secret", "1h", "24h")
		token, _, err := otherService.GenerateAccessToken("user-1", "u@example.com", false)
		require.NoError(t, err)

		rec := doRequest(t, handler, token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAdminOnly(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret", "1h", "24h")
	handler := newChain(jwtService, true)

	t.Run("admin passes", func(t *testing.T) {
		token, _, err := jwtService.GenerateAccessToken("admin-1", "a@example.com", true)
		require.NoError(t, err)

		rec := doRequest(t, handler, token)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("non admin forbidden", func(t *testing.T) {
		token, _, err := jwtService.GenerateAccessToken("user-1", "u@example.com", false)
		require.NoError(t, err)

		rec := doRequest(t, handler, token)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
