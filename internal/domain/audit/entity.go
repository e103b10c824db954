package audit

import (
	"time"

	"github.com/corehr/hr-backend-go/internal/domain/entity"
)

// Entry is one audit-trail record of a mutating API request.
type Entry struct {
	ID          string
	UserID      *string
	Action      string
	OccurredAt  time.Time
	IPAddress   *string
	UserAgent   string
	Description string
	Related     *entity.Ref

	// Join
	UserEmail *string
}
