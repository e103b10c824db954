package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corehr/hr-backend-go/internal/domain/auth"
	"github.com/corehr/hr-backend-go/internal/domain/document"
	"github.com/corehr/hr-backend-go/internal/domain/leave"
	"github.com/corehr/hr-backend-go/internal/domain/user"
	"github.com/corehr/hr-backend-go/internal/pkg/validator"
)

func TestHandleError_StatusCodes(t *testing.T) {
	cases := []struct {
		err        error
		wantStatus int
	}{
		{auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{auth.ErrAccountDisabled, http.StatusForbidden},
		{auth.ErrInvalidToken, http.StatusUnauthorized},
		{auth.ErrRefreshTokenRevoked, http.StatusUnauthorized},
		{user.ErrUserNotFound, http.StatusNotFound},
		{user.ErrUserEmailExists, http.StatusConflict},
		{user.ErrForbidden, http.StatusForbidden},
		{leave.ErrLeaveRecordNotFound, http.StatusNotFound},
		{leave.ErrOverlappingLeave, http.StatusConflict},
		{leave.ErrInvalidTransition, http.StatusConflict},
		{leave.ErrInvalidState, http.StatusConflict},
		{leave.ErrForbidden, http.StatusForbidden},
		{document.ErrDocumentNotFound, http.StatusNotFound},
		{document.ErrAlreadyAcknowledged, http.StatusConflict},
		{document.ErrNotPersonalType, http.StatusBadRequest},
		{errors.New("something unexpected"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, tc.err)
			assert.Equal(t, tc.wantStatus, rec.Code)

			var resp Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.NotEmpty(t, resp.Error.Message)
		})
	}
}

func TestHandleError_WrappedError(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, fmt.Errorf("update leave: %w", leave.ErrOverlappingLeave))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandleError_ValidationErrors(t *testing.T) {
	errs := validator.ValidationErrors{
		{Field: "email", Message: "email is required"},
	}

	rec := httptest.NewRecorder()
	HandleError(rec, errs)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "email is required", resp.Error.Details["email"])
}

func TestHandleError_HidesInternalDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, errors.New("pq: connection refused to 10.0.0.3"))

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.NotContains(t, resp.Error.Message, "10.0.0.3")
}
