package leave

import "errors"

var (
	ErrLeaveRecordNotFound = errors.New("leave record not found")
	ErrLeaveTypeNotFound   = errors.New("leave type not found")
	ErrLeaveTypeNameExists = errors.New("leave type name already exists")
	ErrLeaveTypeInUse      = errors.New("leave type is referenced by existing records")
	ErrOverlappingLeave    = errors.New("dates overlap an existing requested or approved absence")
	ErrForbidden           = errors.New("insufficient permissions for this leave operation")
	ErrInvalidTransition   = errors.New("status transition is not allowed")
	ErrInvalidState        = errors.New("operation not allowed in the current status")
)
