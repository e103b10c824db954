package audit

import "context"

// Repository - interface for audit_log table
type Repository interface {
	Create(ctx context.Context, e Entry) error
	List(ctx context.Context, filter Filter) ([]Entry, int64, error)
}

type Filter struct {
	UserID *string
	Action *string
	Page   int
	Limit  int
}
