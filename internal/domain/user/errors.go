package user

import "errors"

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrRoleNotFound           = errors.New("role not found")
	ErrUserEmailExists        = errors.New("email already registered")
	ErrEmployeeCodeExists     = errors.New("employee code already registered")
	ErrRoleNameExists         = errors.New("role name already exists")
	ErrUserInactive           = errors.New("user account is deactivated")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
	ErrForbidden              = errors.New("insufficient permissions")
)
