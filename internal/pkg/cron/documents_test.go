package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corehr/hr-backend-go/internal/config"
	"github.com/corehr/hr-backend-go/internal/domain/document"
	"github.com/corehr/hr-backend-go/internal/domain/entity"
	"github.com/corehr/hr-backend-go/internal/domain/notification"
)

type sentNotification struct {
	RecipientID string
	Severity    notification.Severity
	Title       string
	Message     string
	Related     *entity.Ref
}

// fakeNotifier records notifications and answers LastRelatedAt from a map.
type fakeNotifier struct {
	sent       []sentNotification
	lastMap    map[string]time.Time
	lastErrs   map[string]error
	notifyErrs map[string]error
}

func (f *fakeNotifier) Notify(ctx context.Context, recipientID string, severity notification.Severity, title, message string, related *entity.Ref) {
	_ = f.NotifyNow(ctx, recipientID, severity, title, message, related)
}

func (f *fakeNotifier) NotifyNow(ctx context.Context, recipientID string, severity notification.Severity, title, message string, related *entity.Ref) error {
	if err := f.notifyErrs[recipientID]; err != nil {
		return err
	}
	f.sent = append(f.sent, sentNotification{recipientID, severity, title, message, related})
	return nil
}

func (f *fakeNotifier) LastRelatedAt(ctx context.Context, recipientID string, related entity.Ref) (time.Time, bool, error) {
	if err := f.lastErrs[recipientID+"/"+related.ID]; err != nil {
		return time.Time{}, false, err
	}
	at, ok := f.lastMap[recipientID+"/"+related.ID]
	return at, ok, nil
}

func (f *fakeNotifier) GetNotifications(ctx context.Context, userID string, page, pageSize int, unreadOnly bool) (*notification.NotificationListResponse, error) {
	return nil, nil
}
func (f *fakeNotifier) GetUnreadCount(ctx context.Context, userID string) (int, error) { return 0, nil }
func (f *fakeNotifier) MarkAsRead(ctx context.Context, userID string, req notification.MarkAsReadRequest) error {
	return nil
}
func (f *fakeNotifier) MarkAllAsRead(ctx context.Context, userID string) error { return nil }
func (f *fakeNotifier) Delete(ctx context.Context, userID string, notificationID string) error {
	return nil
}
func (f *fakeNotifier) Subscribe(ctx context.Context, userID string) (<-chan notification.SSEEvent, func()) {
	return nil, func() {}
}
func (f *fakeNotifier) Stop() {}

type fakePersonalDocs struct {
	document.PersonalDocumentRepository

	candidates []document.ExpiryCandidate
	notified   []string
	markErrs   map[string]error
}

func (f *fakePersonalDocs) ListUnnotified(ctx context.Context) ([]document.ExpiryCandidate, error) {
	// Return a copy so MarkExpiryNotified's in-place removal cannot shift
	// elements under a caller still ranging over the returned slice.
	return append([]document.ExpiryCandidate(nil), f.candidates...), nil
}

func (f *fakePersonalDocs) MarkExpiryNotified(ctx context.Context, id string) error {
	if err := f.markErrs[id]; err != nil {
		return err
	}
	f.notified = append(f.notified, id)
	for i := range f.candidates {
		if f.candidates[i].Document.ID == id {
			f.candidates = append(f.candidates[:i], f.candidates[i+1:]...)
			break
		}
	}
	return nil
}

type fakeAssignments struct {
	document.AssignmentRepository

	pending []document.DocumentAssignment
}

func (f *fakeAssignments) ListPendingWithDeadline(ctx context.Context, now time.Time) ([]document.DocumentAssignment, error) {
	return f.pending, nil
}

func sweepConfig() config.SweepConfig {
	return config.SweepConfig{
		RunHourUTC:        6,
		ExpiryWarningDays: 7,
		UrgentWindow:      24 * time.Hour,
		UrgentRepeat:      6 * time.Hour,
		NoticeWindow:      72 * time.Hour,
		NoticeRepeat:      24 * time.Hour,
	}
}

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func intPtr(v int) *int              { return &v }
func strPtr(s string) *string        { return &s }
func timePtr(v time.Time) *time.Time { return &v }

func candidate(id, userID string, expiry time.Time, window *int) document.ExpiryCandidate {
	return document.ExpiryCandidate{
		Document: document.PersonalDocument{
			ID:             id,
			UserID:         userID,
			DocumentNumber: "AB-123",
			ExpiryDate:     expiry,
		},
		ExpiryTrackingDays: window,
	}
}

func TestSweepExpiry_Severities(t *testing.T) {
	now := time.Date(2026, 3, 10, 6, 0, 0, 0, time.UTC)

	docs := &fakePersonalDocs{candidates: []document.ExpiryCandidate{
		candidate("expired", "u1", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), intPtr(30)),
		candidate("imminent", "u2", time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), intPtr(30)),
		candidate("upcoming", "u3", time.Date(2026, 3, 30, 0, 0, 0, 0, time.UTC), intPtr(30)),
		candidate("distant", "u4", time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC), intPtr(30)),
		candidate("untracked", "u5", time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), nil),
	}}
	notifier := &fakeNotifier{}

	jobs := NewDocumentJobs(docs, &fakeAssignments{}, notifier, sweepConfig())
	jobs.Now = fixedNow(now)

	require.NoError(t, jobs.SweepExpiry(context.Background()))

	require.Len(t, notifier.sent, 3)
	bySeverity := map[string]notification.Severity{}
	for _, n := range notifier.sent {
		bySeverity[n.RecipientID] = n.Severity
		require.NotNil(t, n.Related)
		assert.Equal(t, entity.KindPersonalDocument, n.Related.Kind)
	}
	assert.Equal(t, notification.SeverityError, bySeverity["u1"])
	assert.Equal(t, notification.SeverityWarning, bySeverity["u2"])
	assert.Equal(t, notification.SeverityInfo, bySeverity["u3"])

	// Outside the tracking window or untracked: neither notified nor marked.
	assert.ElementsMatch(t, []string{"expired", "imminent", "upcoming"}, docs.notified)
}

func TestSweepExpiry_Idempotent(t *testing.T) {
	now := time.Date(2026, 3, 10, 6, 0, 0, 0, time.UTC)

	docs := &fakePersonalDocs{candidates: []document.ExpiryCandidate{
		candidate("doc-1", "u1", time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC), intPtr(30)),
	}}
	notifier := &fakeNotifier{}

	jobs := NewDocumentJobs(docs, &fakeAssignments{}, notifier, sweepConfig())
	jobs.Now = fixedNow(now)

	require.NoError(t, jobs.SweepExpiry(context.Background()))
	require.NoError(t, jobs.SweepExpiry(context.Background()))

	assert.Len(t, notifier.sent, 1)
	assert.Equal(t, []string{"doc-1"}, docs.notified)
}

func TestSweepExpiry_ContinuesOnMarkFailure(t *testing.T) {
	now := time.Date(2026, 3, 10, 6, 0, 0, 0, time.UTC)

	docs := &fakePersonalDocs{
		candidates: []document.ExpiryCandidate{
			candidate("doc-broken", "u1", time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC), intPtr(30)),
			candidate("doc-ok", "u2", time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC), intPtr(30)),
		},
		markErrs: map[string]error{"doc-broken": errors.New("connection reset")},
	}
	notifier := &fakeNotifier{}

	jobs := NewDocumentJobs(docs, &fakeAssignments{}, notifier, sweepConfig())
	jobs.Now = fixedNow(now)

	require.NoError(t, jobs.SweepExpiry(context.Background()))

	assert.Len(t, notifier.sent, 2)
	assert.Equal(t, []string{"doc-ok"}, docs.notified)
}

func TestSweepExpiry_FailedNotifyLeavesDocumentUnmarked(t *testing.T) {
	now := time.Date(2026, 3, 10, 6, 0, 0, 0, time.UTC)

	docs := &fakePersonalDocs{candidates: []document.ExpiryCandidate{
		candidate("doc-1", "u1", time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC), intPtr(30)),
		candidate("doc-2", "u2", time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC), intPtr(30)),
	}}
	notifier := &fakeNotifier{notifyErrs: map[string]error{"u1": errors.New("insert failed")}}

	jobs := NewDocumentJobs(docs, &fakeAssignments{}, notifier, sweepConfig())
	jobs.Now = fixedNow(now)

	require.NoError(t, jobs.SweepExpiry(context.Background()))

	// The failed document stays unmarked so the next run retries it.
	assert.Equal(t, []string{"doc-2"}, docs.notified)
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "u2", notifier.sent[0].RecipientID)
}

func TestExpiryWarnings_GatedToRunHour(t *testing.T) {
	docs := &fakePersonalDocs{candidates: []document.ExpiryCandidate{
		candidate("doc-1", "u1", time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC), intPtr(30)),
	}}
	notifier := &fakeNotifier{}

	jobs := NewDocumentJobs(docs, &fakeAssignments{}, notifier, sweepConfig())

	jobs.Now = fixedNow(time.Date(2026, 3, 10, 13, 0, 0, 0, time.UTC))
	require.NoError(t, jobs.ExpiryWarnings(context.Background()))
	assert.Empty(t, notifier.sent)

	jobs.Now = fixedNow(time.Date(2026, 3, 10, 6, 30, 0, 0, time.UTC))
	require.NoError(t, jobs.ExpiryWarnings(context.Background()))
	assert.Len(t, notifier.sent, 1)
}

func assignment(docID, userID string, deadline time.Time) document.DocumentAssignment {
	return document.DocumentAssignment{
		ID:            docID + "/" + userID,
		DocumentID:    docID,
		UserID:        userID,
		DocumentTitle: strPtr("Remote Work Policy"),
		Deadline:      timePtr(deadline),
	}
}

func TestAcknowledgmentReminders_Windows(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	assignments := &fakeAssignments{pending: []document.DocumentAssignment{
		assignment("doc-urgent", "u1", now.Add(10*time.Hour)),
		assignment("doc-notice", "u2", now.Add(48*time.Hour)),
		assignment("doc-far", "u3", now.Add(200*time.Hour)),
	}}
	notifier := &fakeNotifier{}

	jobs := NewDocumentJobs(&fakePersonalDocs{}, assignments, notifier, sweepConfig())
	jobs.Now = fixedNow(now)

	require.NoError(t, jobs.AcknowledgmentReminders(context.Background()))

	require.Len(t, notifier.sent, 2)
	bySeverity := map[string]notification.Severity{}
	for _, n := range notifier.sent {
		bySeverity[n.RecipientID] = n.Severity
		require.NotNil(t, n.Related)
		assert.Equal(t, entity.KindDocument, n.Related.Kind)
	}
	assert.Equal(t, notification.SeverityWarning, bySeverity["u1"])
	assert.Equal(t, notification.SeverityInfo, bySeverity["u2"])
}

func TestAcknowledgmentReminders_Dedup(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	assignments := &fakeAssignments{pending: []document.DocumentAssignment{
		assignment("doc-1", "u1", now.Add(10*time.Hour)),
		assignment("doc-2", "u2", now.Add(10*time.Hour)),
	}}

	// u1 was reminded two hours ago, inside the urgent repeat interval;
	// u2 was reminded seven hours ago, outside it.
	notifier := &fakeNotifier{lastMap: map[string]time.Time{
		"u1/doc-1": now.Add(-2 * time.Hour),
		"u2/doc-2": now.Add(-7 * time.Hour),
	}}

	jobs := NewDocumentJobs(&fakePersonalDocs{}, assignments, notifier, sweepConfig())
	jobs.Now = fixedNow(now)

	require.NoError(t, jobs.AcknowledgmentReminders(context.Background()))

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "u2", notifier.sent[0].RecipientID)
}

func TestAcknowledgmentReminders_ContinuesOnLookupFailure(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	assignments := &fakeAssignments{pending: []document.DocumentAssignment{
		assignment("doc-1", "u1", now.Add(10*time.Hour)),
		assignment("doc-2", "u2", now.Add(10*time.Hour)),
	}}

	notifier := &fakeNotifier{lastErrs: map[string]error{
		"u1/doc-1": errors.New("connection reset"),
	}}

	jobs := NewDocumentJobs(&fakePersonalDocs{}, assignments, notifier, sweepConfig())
	jobs.Now = fixedNow(now)

	require.NoError(t, jobs.AcknowledgmentReminders(context.Background()))

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "u2", notifier.sent[0].RecipientID)
}

func TestAcknowledgmentReminders_NoticeRepeat(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	assignments := &fakeAssignments{pending: []document.DocumentAssignment{
		assignment("doc-1", "u1", now.Add(48*time.Hour)),
	}}

	// Reminded twelve hours ago: inside the 24h notice repeat, skipped.
	notifier := &fakeNotifier{lastMap: map[string]time.Time{
		"u1/doc-1": now.Add(-12 * time.Hour),
	}}

	jobs := NewDocumentJobs(&fakePersonalDocs{}, assignments, notifier, sweepConfig())
	jobs.Now = fixedNow(now)

	require.NoError(t, jobs.AcknowledgmentReminders(context.Background()))
	assert.Empty(t, notifier.sent)
}
