package notification

import (
	"time"

	"github.com/corehr/hr-backend-go/internal/domain/entity"
)

type NotificationResponse struct {
	ID        string      `json:"id"`
	Severity  Severity    `json:"severity"`
	Title     string      `json:"title"`
	Message   string      `json:"message"`
	IsRead    bool        `json:"is_read"`
	ReadAt    *time.Time  `json:"read_at,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	Related   *entity.Ref `json:"related,omitempty"`
}

type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	Total         int                    `json:"total"`
	UnreadCount   int                    `json:"unread_count"`
	Page          int                    `json:"page"`
	PageSize      int                    `json:"page_size"`
}

type MarkAsReadRequest struct {
	NotificationIDs []string `json:"notification_ids"`
}

type UnreadCountResponse struct {
	UnreadCount int `json:"unread_count"`
}

type StreamTokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

type SSEEvent struct {
	Event string               `json:"event"`
	Data  NotificationResponse `json:"data"`
}
