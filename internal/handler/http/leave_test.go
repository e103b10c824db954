package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corehr/hr-backend-go/internal/domain/leave"
	"github.com/corehr/hr-backend-go/internal/domain/user"
	"github.com/corehr/hr-backend-go/internal/handler/http/middleware"
	"github.com/corehr/hr-backend-go/internal/pkg/jwt"
)

// captureLeaveService records what the handler hands to the service layer.
type captureLeaveService struct {
	leave.LeaveService

	principal user.Principal
	req       leave.CreateLeaveRequest
}

func (c *captureLeaveService) CreateLeave(ctx context.Context, principal user.Principal, req leave.CreateLeaveRequest) (leave.LeaveRecordResponse, error) {
	c.principal = principal
	c.req = req
	return leave.LeaveRecordResponse{
		ID:         "rec-1",
		EmployeeID: req.EmployeeID,
		Status:     leave.StatusRequested,
	}, nil
}

func leaveTestRouter(jwtService jwt.Service, svc leave.LeaveService) http.Handler {
	auth := jwtService.JWTAuth()
	handler := NewLeaveHandler(svc)

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(auth))
		r.Use(middleware.AuthRequired(auth))
		r.Post("/leaves", handler.CreateLeave)
	})
	return r
}

func postLeave(t *testing.T, router http.Handler, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateLeaveHandler_AttachesPrincipal(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret", "1h", "24h")

	body := `{"leave_type_id":"vacation","start_date":"2026-04-10","end_date":"2026-04-15","reason":"trip"}`

	t.Run("employee becomes the record owner", func(t *testing.T) {
		svc := &captureLeaveService{}
		router := leaveTestRouter(jwtService, svc)

		token, _, err := jwtService.GenerateAccessToken("user-1", "u@example.com", false)
		require.NoError(t, err)

		rec := postLeave(t, router, token, body)
		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "user-1", svc.req.EmployeeID)
		assert.Equal(t, "user-1", svc.principal.UserID)
	})

	t.Run("employee cannot file for someone else", func(t *testing.T) {
		svc := &captureLeaveService{}
		router := leaveTestRouter(jwtService, svc)

		token, _, err := jwtService.GenerateAccessToken("user-1", "u@example.com", false)
		require.NoError(t, err)

		spoofed := `{"employee_id":"user-2","leave_type_id":"vacation","start_date":"2026-04-10","end_date":"2026-04-15"}`
		rec := postLeave(t, router, token, spoofed)
		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "user-1", svc.req.EmployeeID)
	})

	t.Run("administrator may file on behalf", func(t *testing.T) {
		svc := &captureLeaveService{}
		router := leaveTestRouter(jwtService, svc)

		token, _, err := jwtService.GenerateAccessToken("admin-1", "a@example.com", true)
		require.NoError(t, err)

		onBehalf := `{"employee_id":"user-2","leave_type_id":"vacation","start_date":"2026-04-10","end_date":"2026-04-15"}`
		rec := postLeave(t, router, token, onBehalf)
		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "user-2", svc.req.EmployeeID)
	})

	t.Run("administrator without explicit employee defaults to self", func(t *testing.T) {
		svc := &captureLeaveService{}
		router := leaveTestRouter(jwtService, svc)

		token, _, err := jwtService.GenerateAccessToken("admin-1", "a@example.com", true)
		require.NoError(t, err)

		rec := postLeave(t, router, token, body)
		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "admin-1", svc.req.EmployeeID)
	})
}
