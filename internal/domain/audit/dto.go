package audit

import (
	"time"

	"github.com/corehr/hr-backend-go/internal/domain/entity"
)

type EntryResponse struct {
	ID          string      `json:"id"`
	UserID      *string     `json:"user_id,omitempty"`
	UserEmail   *string     `json:"user_email,omitempty"`
	Action      string      `json:"action"`
	OccurredAt  time.Time   `json:"occurred_at"`
	IPAddress   *string     `json:"ip_address,omitempty"`
	UserAgent   string      `json:"user_agent"`
	Description string      `json:"description"`
	Related     *entity.Ref `json:"related,omitempty"`
}

func ToResponse(e Entry) EntryResponse {
	return EntryResponse{
		ID:          e.ID,
		UserID:      e.UserID,
		UserEmail:   e.UserEmail,
		Action:      e.Action,
		OccurredAt:  e.OccurredAt,
		IPAddress:   e.IPAddress,
		UserAgent:   e.UserAgent,
		Description: e.Description,
		Related:     e.Related,
	}
}
