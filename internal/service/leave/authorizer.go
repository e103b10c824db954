package leave

import (
	"time"

	"github.com/corehr/hr-backend-go/internal/domain/leave"
	"github.com/corehr/hr-backend-go/internal/domain/user"
)

// validEdge reports whether the state machine allows moving from one status
// to another, regardless of who asks.
func validEdge(from, to leave.LeaveStatus) bool {
	switch from {
	case leave.StatusRequested:
		return to == leave.StatusApproved || to == leave.StatusRejected || to == leave.StatusCancelled
	case leave.StatusApproved:
		return to == leave.StatusCancelled
	default:
		return false
	}
}

// AuthorizeTransition decides whether the principal may move the record to
// the target status at the given moment.
//
// Approval and rejection are administrator decisions. Cancellation is open
// to the record's owner as well, but only while the absence has not started:
// the start date must be strictly after today.
func AuthorizeTransition(principal user.Principal, record leave.LeaveRecord, target leave.LeaveStatus, now time.Time) error {
	if !validEdge(record.Status, target) {
		return leave.ErrInvalidTransition
	}

	switch target {
	case leave.StatusApproved, leave.StatusRejected:
		if !principal.IsAdmin {
			return leave.ErrForbidden
		}
	case leave.StatusCancelled:
		if !principal.IsAdmin && principal.UserID != record.EmployeeID {
			return leave.ErrForbidden
		}
		today := now.Truncate(24 * time.Hour)
		if !record.StartDate.After(today) {
			return leave.ErrInvalidState
		}
	}

	return nil
}

// canModify reports whether the principal may edit or delete the record.
// Both are restricted to the owner or an administrator, and only while the
// record is still waiting for a decision.
func canModify(principal user.Principal, record leave.LeaveRecord) error {
	if !principal.IsAdmin && principal.UserID != record.EmployeeID {
		return leave.ErrForbidden
	}
	if record.Status != leave.StatusRequested {
		return leave.ErrInvalidState
	}
	return nil
}

// canCancel is the read-side companion of AuthorizeTransition, used to
// render the can_cancel flag on responses.
func canCancel(principal user.Principal, record leave.LeaveRecord, now time.Time) bool {
	return AuthorizeTransition(principal, record, leave.StatusCancelled, now) == nil
}
