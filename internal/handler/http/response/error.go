package response

import (
	"errors"
	"net/http"

	"github.com/corehr/hr-backend-go/internal/domain/auth"
	"github.com/corehr/hr-backend-go/internal/domain/document"
	"github.com/corehr/hr-backend-go/internal/domain/leave"
	"github.com/corehr/hr-backend-go/internal/domain/notification"
	"github.com/corehr/hr-backend-go/internal/domain/user"
	"github.com/corehr/hr-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid credentials")
	case errors.Is(err, auth.ErrAccountDisabled):
		Forbidden(w, "Account is deactivated")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrUserNotFound):
		NotFound(w, "User not found")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrRoleNotFound):
		NotFound(w, "Role not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already registered")
	case errors.Is(err, user.ErrRoleNameExists):
		Conflict(w, "Role name already exists")
	case errors.Is(err, user.ErrUserInactive):
		Forbidden(w, "Account is deactivated")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, user.ErrForbidden):
		Forbidden(w, "Insufficient permissions")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRecordNotFound):
		NotFound(w, "Leave record not found")
	case errors.Is(err, leave.ErrLeaveTypeNotFound):
		NotFound(w, "Leave type not found")
	case errors.Is(err, leave.ErrLeaveTypeNameExists):
		Conflict(w, "Leave type name already exists")
	case errors.Is(err, leave.ErrLeaveTypeInUse):
		Conflict(w, "Leave type is referenced by existing records")
	case errors.Is(err, leave.ErrOverlappingLeave):
		Conflict(w, "Dates overlap an existing requested or approved absence")
	case errors.Is(err, leave.ErrInvalidTransition):
		Conflict(w, "Status transition is not allowed")
	case errors.Is(err, leave.ErrInvalidState):
		Conflict(w, "Operation not allowed in the current status")
	case errors.Is(err, leave.ErrForbidden):
		Forbidden(w, "Insufficient permissions")

	// Document domain errors
	case errors.Is(err, document.ErrDocumentTypeNotFound):
		NotFound(w, "Document type not found")
	case errors.Is(err, document.ErrDocumentTypeNameExists):
		Conflict(w, "Document type name already exists")
	case errors.Is(err, document.ErrDocumentTypeInUse):
		Conflict(w, "Document type is referenced by existing documents")
	case errors.Is(err, document.ErrDocumentNotFound):
		NotFound(w, "Document not found")
	case errors.Is(err, document.ErrAssignmentNotFound):
		NotFound(w, "Document is not assigned to this user")
	case errors.Is(err, document.ErrAlreadyAcknowledged):
		Conflict(w, "Acknowledgment already recorded")
	case errors.Is(err, document.ErrPersonalDocumentNotFound):
		NotFound(w, "Personal document not found")
	case errors.Is(err, document.ErrPersonalDocumentExists):
		Conflict(w, "User already has a document of this type")
	case errors.Is(err, document.ErrNotPersonalType):
		BadRequest(w, "Document type is not a personal document type", nil)
	case errors.Is(err, document.ErrForbidden):
		Forbidden(w, "Insufficient permissions")

	// Notification domain errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
