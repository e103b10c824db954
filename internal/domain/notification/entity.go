package notification

import (
	"time"

	"github.com/corehr/hr-backend-go/internal/domain/entity"
)

type Severity string

const (
	SeverityInfo    Severity = "INFO"
	SeverityWarning Severity = "WARNING"
	SeverityError   Severity = "ERROR"
	SeveritySuccess Severity = "SUCCESS"
)

// Notification entity
type Notification struct {
	ID          string
	RecipientID string
	Severity    Severity
	Title       string
	Message     string
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
	Related     *entity.Ref
}
