package notification

import (
	"context"
	"time"

	"github.com/corehr/hr-backend-go/internal/domain/entity"
)

// Service defines the notification service interface
type Service interface {
	// Notify queues a notification for the recipient. Fire-and-forget:
	// delivery failures are logged, never returned to business callers.
	Notify(ctx context.Context, recipientID string, severity Severity, title, message string, related *entity.Ref)

	// NotifyNow inserts synchronously, so the notification is visible to
	// LastRelatedAt as soon as it returns. Used by the sweeps, whose dedup
	// reads would miss rows still sitting in the batch queue.
	NotifyNow(ctx context.Context, recipientID string, severity Severity, title, message string, related *entity.Ref) error

	// LastRelatedAt exposes the dedup lookup used by the reminder sweep.
	LastRelatedAt(ctx context.Context, recipientID string, related entity.Ref) (time.Time, bool, error)

	GetNotifications(ctx context.Context, userID string, page, pageSize int, unreadOnly bool) (*NotificationListResponse, error)
	GetUnreadCount(ctx context.Context, userID string) (int, error)
	MarkAsRead(ctx context.Context, userID string, req MarkAsReadRequest) error
	MarkAllAsRead(ctx context.Context, userID string) error
	Delete(ctx context.Context, userID string, notificationID string) error

	// SSE subscription
	Subscribe(ctx context.Context, userID string) (<-chan SSEEvent, func())

	// Lifecycle
	Stop()
}
