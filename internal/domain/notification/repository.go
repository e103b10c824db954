package notification

import (
	"context"
	"time"

	"github.com/corehr/hr-backend-go/internal/domain/entity"
)

// Repository - interface for notifications table
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	CreateBatch(ctx context.Context, notifications []*Notification) error
	GetByUserID(ctx context.Context, userID string, page, pageSize int, unreadOnly bool) ([]*Notification, int, error)
	GetUnreadCount(ctx context.Context, userID string) (int, error)
	MarkAsRead(ctx context.Context, ids []string, userID string) error
	MarkAllAsRead(ctx context.Context, userID string) error
	Delete(ctx context.Context, id, userID string) error

	// LastRelatedAt returns the creation time of the most recent notification
	// for the recipient about the referenced entity; ok is false when none
	// exists. Used to suppress repeat reminders.
	LastRelatedAt(ctx context.Context, recipientID string, related entity.Ref) (time.Time, bool, error)
}
