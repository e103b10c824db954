package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/corehr/hr-backend-go/internal/domain/leave"
	"github.com/corehr/hr-backend-go/internal/domain/user"
)

var (
	admin = user.Principal{UserID: "admin-1", IsAdmin: true}
	owner = user.Principal{UserID: "emp-1", IsAdmin: false}
	other = user.Principal{UserID: "emp-2", IsAdmin: false}
)

func record(status leave.LeaveStatus, start time.Time) leave.LeaveRecord {
	return leave.LeaveRecord{
		ID:         "rec-1",
		EmployeeID: "emp-1",
		Status:     status,
		StartDate:  start,
		EndDate:    start.AddDate(0, 0, 2),
	}
}

func TestAuthorizeTransition_Edges(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	future := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		from   leave.LeaveStatus
		target leave.LeaveStatus
		want   error
	}{
		{"requested to approved", leave.StatusRequested, leave.StatusApproved, nil},
		{"requested to rejected", leave.StatusRequested, leave.StatusRejected, nil},
		{"requested to cancelled", leave.StatusRequested, leave.StatusCancelled, nil},
		{"approved to cancelled", leave.StatusApproved, leave.StatusCancelled, nil},
		{"approved to rejected", leave.StatusApproved, leave.StatusRejected, leave.ErrInvalidTransition},
		{"rejected to approved", leave.StatusRejected, leave.StatusApproved, leave.ErrInvalidTransition},
		{"rejected to cancelled", leave.StatusRejected, leave.StatusCancelled, leave.ErrInvalidTransition},
		{"cancelled to approved", leave.StatusCancelled, leave.StatusApproved, leave.ErrInvalidTransition},
		{"cancelled to cancelled", leave.StatusCancelled, leave.StatusCancelled, leave.ErrInvalidTransition},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := AuthorizeTransition(admin, record(tc.from, future), tc.target, now)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestAuthorizeTransition_ApprovalRequiresAdmin(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	future := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	rec := record(leave.StatusRequested, future)

	assert.ErrorIs(t, AuthorizeTransition(owner, rec, leave.StatusApproved, now), leave.ErrForbidden)
	assert.ErrorIs(t, AuthorizeTransition(owner, rec, leave.StatusRejected, now), leave.ErrForbidden)
	assert.NoError(t, AuthorizeTransition(admin, rec, leave.StatusApproved, now))
	assert.NoError(t, AuthorizeTransition(admin, rec, leave.StatusRejected, now))
}

func TestAuthorizeTransition_CancelOwnership(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	future := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	rec := record(leave.StatusApproved, future)

	assert.NoError(t, AuthorizeTransition(owner, rec, leave.StatusCancelled, now))
	assert.NoError(t, AuthorizeTransition(admin, rec, leave.StatusCancelled, now))
	assert.ErrorIs(t, AuthorizeTransition(other, rec, leave.StatusCancelled, now), leave.ErrForbidden)
}

func TestAuthorizeTransition_CancelRequiresFutureStart(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	// Starts tomorrow: still cancellable.
	tomorrow := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)
	assert.NoError(t, AuthorizeTransition(owner, record(leave.StatusApproved, tomorrow), leave.StatusCancelled, now))

	// Starts today: the absence has begun, no cancellation.
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	assert.ErrorIs(t, AuthorizeTransition(owner, record(leave.StatusApproved, today), leave.StatusCancelled, now), leave.ErrInvalidState)

	// Started in the past.
	past := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.ErrorIs(t, AuthorizeTransition(admin, record(leave.StatusApproved, past), leave.StatusCancelled, now), leave.ErrInvalidState)
}

func TestCanModify(t *testing.T) {
	future := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)

	assert.NoError(t, canModify(owner, record(leave.StatusRequested, future)))
	assert.NoError(t, canModify(admin, record(leave.StatusRequested, future)))
	assert.ErrorIs(t, canModify(other, record(leave.StatusRequested, future)), leave.ErrForbidden)
	assert.ErrorIs(t, canModify(owner, record(leave.StatusApproved, future)), leave.ErrInvalidState)
	assert.ErrorIs(t, canModify(admin, record(leave.StatusRejected, future)), leave.ErrInvalidState)
}

func TestCanCancel(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	future := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	past := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	assert.True(t, canCancel(owner, record(leave.StatusRequested, future), now))
	assert.True(t, canCancel(owner, record(leave.StatusApproved, future), now))
	assert.False(t, canCancel(owner, record(leave.StatusApproved, past), now))
	assert.False(t, canCancel(other, record(leave.StatusApproved, future), now))
	assert.False(t, canCancel(owner, record(leave.StatusRejected, future), now))
}
