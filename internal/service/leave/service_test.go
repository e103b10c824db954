package leave

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corehr/hr-backend-go/internal/domain/entity"
	"github.com/corehr/hr-backend-go/internal/domain/leave"
	"github.com/corehr/hr-backend-go/internal/domain/notification"
	"github.com/corehr/hr-backend-go/internal/domain/user"
	"github.com/corehr/hr-backend-go/internal/pkg/validator"
)

// stubTx runs the callback directly; the fakes below keep all state in
// memory, so there is nothing to commit or roll back.
type stubTx struct{}

func (stubTx) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeLeaveTypes struct {
	leave.LeaveTypeRepository

	types map[string]leave.LeaveType
}

func (f *fakeLeaveTypes) GetByID(ctx context.Context, id string) (leave.LeaveType, error) {
	lt, ok := f.types[id]
	if !ok {
		return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
	}
	return lt, nil
}

type fakeLeaveRecords struct {
	leave.LeaveRecordRepository

	records map[string]leave.LeaveRecord
	locked  []string
	nextID  int
}

func newFakeLeaveRecords(seed ...leave.LeaveRecord) *fakeLeaveRecords {
	f := &fakeLeaveRecords{records: map[string]leave.LeaveRecord{}}
	for _, r := range seed {
		f.records[r.ID] = r
	}
	return f
}

func (f *fakeLeaveRecords) Create(ctx context.Context, r leave.LeaveRecord) (leave.LeaveRecord, error) {
	f.nextID++
	r.ID = fmt.Sprintf("rec-%d", f.nextID)
	r.RequestedAt = time.Now()
	f.records[r.ID] = r
	return r, nil
}

func (f *fakeLeaveRecords) GetByID(ctx context.Context, id string) (leave.LeaveRecord, error) {
	r, ok := f.records[id]
	if !ok {
		return leave.LeaveRecord{}, leave.ErrLeaveRecordNotFound
	}
	return r, nil
}

func (f *fakeLeaveRecords) Update(ctx context.Context, req leave.UpdateLeaveRecordRequest) error {
	r, ok := f.records[req.ID]
	if !ok {
		return leave.ErrLeaveRecordNotFound
	}
	if req.LeaveTypeID != nil {
		r.LeaveTypeID = *req.LeaveTypeID
	}
	if req.StartDate != nil {
		r.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		r.EndDate = *req.EndDate
	}
	if req.Status != nil {
		r.Status = *req.Status
	}
	if req.Reason != nil {
		r.Reason = *req.Reason
	}
	if req.ApprovedByID != nil {
		r.ApprovedByID = req.ApprovedByID
	}
	if req.ProcessedAt != nil {
		r.ProcessedAt = req.ProcessedAt
	}
	f.records[req.ID] = r
	return nil
}

func (f *fakeLeaveRecords) Delete(ctx context.Context, id string) error {
	delete(f.records, id)
	return nil
}

func (f *fakeLeaveRecords) LockEmployee(ctx context.Context, employeeID string) error {
	f.locked = append(f.locked, employeeID)
	return nil
}

func (f *fakeLeaveRecords) HasOverlapping(ctx context.Context, employeeID string, startDate, endDate time.Time, excludeID *string) (bool, error) {
	for id, r := range f.records {
		if r.EmployeeID != employeeID || !r.Status.Active() {
			continue
		}
		if excludeID != nil && id == *excludeID {
			continue
		}
		if leave.RangesIntersect(startDate, endDate, r.StartDate, r.EndDate) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeLeaveRecords) ListApprovedIntersecting(ctx context.Context, windowStart, windowEnd time.Time, employeeID *string) ([]leave.LeaveRecord, error) {
	var out []leave.LeaveRecord
	for _, r := range f.records {
		if r.Status != leave.StatusApproved {
			continue
		}
		if employeeID != nil && r.EmployeeID != *employeeID {
			continue
		}
		if leave.RangesIntersect(windowStart, windowEnd, r.StartDate, r.EndDate) {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeUsers struct {
	user.UserRepository

	adminIDs []string
}

func (f *fakeUsers) ListAdminIDs(ctx context.Context) ([]string, error) {
	return f.adminIDs, nil
}

type recordedNotification struct {
	RecipientID string
	Severity    notification.Severity
	Title       string
	Related     *entity.Ref
}

type stubNotifier struct {
	notification.Service

	sent []recordedNotification
}

func (s *stubNotifier) Notify(ctx context.Context, recipientID string, severity notification.Severity, title, message string, related *entity.Ref) {
	s.sent = append(s.sent, recordedNotification{recipientID, severity, title, related})
}

type serviceFixture struct {
	svc      *LeaveServiceImpl
	records  *fakeLeaveRecords
	notifier *stubNotifier
	now      time.Time
}

func newServiceFixture(seed ...leave.LeaveRecord) *serviceFixture {
	records := newFakeLeaveRecords(seed...)
	notifier := &stubNotifier{}
	types := &fakeLeaveTypes{types: map[string]leave.LeaveType{
		"vacation": {ID: "vacation", Name: "Vacation", IsVacation: true, IsPaid: true},
	}}

	svc := NewLeaveService(stubTx{}, types, records, &fakeUsers{adminIDs: []string{"admin-1"}}, notifier)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	return &serviceFixture{svc: svc, records: records, notifier: notifier, now: now}
}

func createRequest() leave.CreateLeaveRequest {
	return leave.CreateLeaveRequest{
		EmployeeID:  "emp-1",
		LeaveTypeID: "vacation",
		StartDate:   "2026-04-10",
		EndDate:     "2026-04-15",
		Reason:      "spring trip",
	}
}

func TestCreateLeave_AssignsOwner(t *testing.T) {
	fx := newServiceFixture()

	created, err := fx.svc.CreateLeave(context.Background(), owner, createRequest())
	require.NoError(t, err)

	assert.Equal(t, "emp-1", created.EmployeeID)
	assert.Equal(t, leave.StatusRequested, created.Status)
	assert.Equal(t, 6, created.DurationDays)
	assert.Equal(t, []string{"emp-1"}, fx.records.locked, "overlap check must run under the employee lock")

	stored := fx.records.records[created.ID]
	assert.Equal(t, "emp-1", stored.EmployeeID)

	require.Len(t, fx.notifier.sent, 1)
	assert.Equal(t, "admin-1", fx.notifier.sent[0].RecipientID)
}

func TestCreateLeave_RequiresEmployee(t *testing.T) {
	fx := newServiceFixture()

	req := createRequest()
	req.EmployeeID = ""

	_, err := fx.svc.CreateLeave(context.Background(), owner, req)

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Contains(t, verrs.ToMap(), "employee_id")
	assert.Empty(t, fx.records.records, "nothing may be inserted for an unattributed request")
}

func TestCreateLeave_OverlapConflict(t *testing.T) {
	existing := leave.LeaveRecord{
		ID:         "rec-existing",
		EmployeeID: "emp-1",
		Status:     leave.StatusApproved,
		StartDate:  time.Date(2026, 4, 12, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, 4, 20, 0, 0, 0, 0, time.UTC),
	}
	fx := newServiceFixture(existing)

	_, err := fx.svc.CreateLeave(context.Background(), owner, createRequest())
	assert.ErrorIs(t, err, leave.ErrOverlappingLeave)
	assert.Len(t, fx.records.records, 1, "the conflicting request must not be inserted")
}

func TestCreateLeave_OtherEmployeeDoesNotConflict(t *testing.T) {
	existing := leave.LeaveRecord{
		ID:         "rec-existing",
		EmployeeID: "emp-2",
		Status:     leave.StatusApproved,
		StartDate:  time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, 4, 20, 0, 0, 0, 0, time.UTC),
	}
	fx := newServiceFixture(existing)

	_, err := fx.svc.CreateLeave(context.Background(), owner, createRequest())
	assert.NoError(t, err)
}

func TestCreateLeave_UnknownLeaveType(t *testing.T) {
	fx := newServiceFixture()

	req := createRequest()
	req.LeaveTypeID = "missing"

	_, err := fx.svc.CreateLeave(context.Background(), owner, req)
	assert.ErrorIs(t, err, leave.ErrLeaveTypeNotFound)
}

func requested(id string, start, end time.Time) leave.LeaveRecord {
	return leave.LeaveRecord{
		ID:          id,
		EmployeeID:  "emp-1",
		LeaveTypeID: "vacation",
		Status:      leave.StatusRequested,
		StartDate:   start,
		EndDate:     end,
		Reason:      "spring trip",
	}
}

func TestUpdateLeave_ReversedDates(t *testing.T) {
	fx := newServiceFixture(requested("rec-1",
		time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC)))

	start := "2026-04-20"
	_, err := fx.svc.UpdateLeave(context.Background(), owner, "rec-1", leave.UpdateLeaveFields{
		StartDate: &start,
	})

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs), "reversed dates are a validation failure, not a state conflict")
	assert.Contains(t, verrs.ToMap(), "end_date")
}

func TestUpdateLeave_OverlapConflict(t *testing.T) {
	blocker := leave.LeaveRecord{
		ID:         "rec-blocker",
		EmployeeID: "emp-1",
		Status:     leave.StatusApproved,
		StartDate:  time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, 5, 5, 0, 0, 0, 0, time.UTC),
	}
	fx := newServiceFixture(blocker, requested("rec-1",
		time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC)))

	start, end := "2026-05-03", "2026-05-08"
	_, err := fx.svc.UpdateLeave(context.Background(), owner, "rec-1", leave.UpdateLeaveFields{
		StartDate: &start,
		EndDate:   &end,
	})

	assert.ErrorIs(t, err, leave.ErrOverlappingLeave)
	assert.Equal(t, []string{"emp-1"}, fx.records.locked)

	stored := fx.records.records["rec-1"]
	assert.Equal(t, time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC), stored.StartDate, "a rejected move must not change the record")
}

func TestUpdateLeave_OnlyWhileRequested(t *testing.T) {
	approved := requested("rec-1",
		time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC))
	approved.Status = leave.StatusApproved
	fx := newServiceFixture(approved)

	reason := "changed my mind"
	_, err := fx.svc.UpdateLeave(context.Background(), owner, "rec-1", leave.UpdateLeaveFields{
		Reason: &reason,
	})
	assert.ErrorIs(t, err, leave.ErrInvalidState)
}

func TestTransition_ApproveSetsDecisionFields(t *testing.T) {
	fx := newServiceFixture(requested("rec-1",
		time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC)))

	resp, err := fx.svc.Transition(context.Background(), admin, "rec-1", leave.StatusApproved, leave.TransitionRequest{})
	require.NoError(t, err)

	assert.Equal(t, leave.StatusApproved, resp.Status)
	require.NotNil(t, resp.ApprovedByID)
	assert.Equal(t, "admin-1", *resp.ApprovedByID)
	require.NotNil(t, resp.ProcessedAt)
	assert.Equal(t, fx.now, *resp.ProcessedAt)

	stored := fx.records.records["rec-1"]
	assert.Equal(t, leave.StatusApproved, stored.Status)
	require.NotNil(t, stored.ApprovedByID)
	assert.Equal(t, "admin-1", *stored.ApprovedByID)
	require.NotNil(t, stored.ProcessedAt)
	assert.Equal(t, fx.now, *stored.ProcessedAt)

	require.Len(t, fx.notifier.sent, 1)
	assert.Equal(t, "emp-1", fx.notifier.sent[0].RecipientID)
	assert.Equal(t, notification.SeveritySuccess, fx.notifier.sent[0].Severity)
}

func TestTransition_RejectAppendsReason(t *testing.T) {
	fx := newServiceFixture(requested("rec-1",
		time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC)))

	resp, err := fx.svc.Transition(context.Background(), admin, "rec-1", leave.StatusRejected, leave.TransitionRequest{
		Reason: "team is short-staffed that week",
	})
	require.NoError(t, err)

	assert.Equal(t, "spring trip\nteam is short-staffed that week", resp.Reason)
	assert.Equal(t, resp.Reason, fx.records.records["rec-1"].Reason)
}

func TestTransition_EmployeeCannotApprove(t *testing.T) {
	fx := newServiceFixture(requested("rec-1",
		time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC)))

	_, err := fx.svc.Transition(context.Background(), owner, "rec-1", leave.StatusApproved, leave.TransitionRequest{})
	assert.ErrorIs(t, err, leave.ErrForbidden)

	stored := fx.records.records["rec-1"]
	assert.Equal(t, leave.StatusRequested, stored.Status)
	assert.Empty(t, fx.notifier.sent)
}
