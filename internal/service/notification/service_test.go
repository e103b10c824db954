package notification

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corehr/hr-backend-go/internal/domain/entity"
	"github.com/corehr/hr-backend-go/internal/domain/notification"
	"github.com/corehr/hr-backend-go/internal/pkg/sse"
)

// fakeRepo keeps inserted notifications in memory so LastRelatedAt can be
// answered against exactly what has been committed.
type fakeRepo struct {
	notification.Repository

	mu   sync.Mutex
	rows []*notification.Notification
}

func (f *fakeRepo) Create(ctx context.Context, n *notification.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows = append(f.rows, n)
	return nil
}

func (f *fakeRepo) CreateBatch(ctx context.Context, notifications []*notification.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows = append(f.rows, notifications...)
	return nil
}

func (f *fakeRepo) LastRelatedAt(ctx context.Context, recipientID string, related entity.Ref) (time.Time, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var last time.Time
	found := false
	for _, n := range f.rows {
		if n.RecipientID != recipientID || n.Related == nil || *n.Related != related {
			continue
		}
		if n.CreatedAt.After(last) {
			last = n.CreatedAt
			found = true
		}
	}
	return last, found, nil
}

func newTestService(t *testing.T, repo *fakeRepo, hub *sse.Hub) notification.Service {
	t.Helper()
	svc := NewNotificationService(repo, hub, slog.New(slog.DiscardHandler), Config{
		FlushInterval: time.Hour, // keep the batch queue out of the way
	})
	t.Cleanup(svc.Stop)
	return svc
}

func TestNotifyNowVisibleImmediately(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(t, repo, sse.NewHub())

	related := &entity.Ref{Kind: entity.KindPersonalDocument, ID: "doc-1"}
	err := svc.NotifyNow(context.Background(), "u1", notification.SeverityWarning,
		"Document expiring soon", "Your document expires in 5 days.", related)
	require.NoError(t, err)

	// The row must be committed before NotifyNow returns: the reminder
	// dedup reads it on the very next sweep run.
	_, ok, err := svc.LastRelatedAt(context.Background(), "u1", *related)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNotifyNowPublishesToSubscriber(t *testing.T) {
	repo := &fakeRepo{}
	hub := sse.NewHub()
	svc := newTestService(t, repo, hub)

	ch, cleanup := hub.Subscribe("u1")
	defer cleanup()

	related := &entity.Ref{Kind: entity.KindDocument, ID: "doc-2"}
	require.NoError(t, svc.NotifyNow(context.Background(), "u1", notification.SeverityInfo,
		"Acknowledgment pending", "Please acknowledge the handbook.", related))

	select {
	case event := <-ch:
		resp, ok := event.Data.(notification.NotificationResponse)
		require.True(t, ok)
		assert.Equal(t, "Acknowledgment pending", resp.Title)
	case <-time.After(time.Second):
		t.Fatal("no event published")
	}
}

func TestNotifyQueuedIsNotVisibleUntilFlush(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(t, repo, sse.NewHub())

	related := &entity.Ref{Kind: entity.KindPersonalDocument, ID: "doc-3"}
	svc.Notify(context.Background(), "u1", notification.SeverityInfo, "t", "m", related)

	_, ok, err := svc.LastRelatedAt(context.Background(), "u1", *related)
	require.NoError(t, err)
	assert.False(t, ok, "queued notifications are only committed on flush")
}
