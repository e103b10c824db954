package leave

import (
	"context"
	"time"

	"github.com/corehr/hr-backend-go/internal/domain/user"
)

type LeaveService interface {
	CreateLeaveType(ctx context.Context, req CreateLeaveTypeRequest) (LeaveType, error)
	ListLeaveTypes(ctx context.Context) ([]LeaveType, error)
	UpdateLeaveType(ctx context.Context, leaveType LeaveType) error
	DeleteLeaveType(ctx context.Context, id string) error

	CreateLeave(ctx context.Context, principal user.Principal, req CreateLeaveRequest) (LeaveRecordResponse, error)
	GetLeave(ctx context.Context, principal user.Principal, id string) (LeaveRecordResponse, error)
	ListLeaves(ctx context.Context, principal user.Principal, filter LeaveRecordFilter) ([]LeaveRecordResponse, int64, error)
	UpdateLeave(ctx context.Context, principal user.Principal, id string, req UpdateLeaveFields) (LeaveRecordResponse, error)
	DeleteLeave(ctx context.Context, principal user.Principal, id string) error

	// Transition moves a record through the approval state machine:
	// REQUESTED -> APPROVED | REJECTED (administrators),
	// REQUESTED | APPROVED -> CANCELLED (owner or administrator, future start).
	Transition(ctx context.Context, principal user.Principal, id string, target LeaveStatus, req TransitionRequest) (LeaveRecordResponse, error)

	// Calendar returns APPROVED absences intersecting the given inclusive
	// date window, ordered by start date. The whole team view is read-only
	// company data, so it is open to every authenticated user.
	Calendar(ctx context.Context, principal user.Principal, start, end time.Time, employeeID *string) ([]LeaveRecordResponse, error)
}
