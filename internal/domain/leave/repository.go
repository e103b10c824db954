package leave

import (
	"context"
	"time"
)

// LeaveTypeRepository - interface for leave_types table
type LeaveTypeRepository interface {
	Create(ctx context.Context, leaveType LeaveType) (LeaveType, error)
	GetByID(ctx context.Context, id string) (LeaveType, error)
	List(ctx context.Context) ([]LeaveType, error)
	Update(ctx context.Context, leaveType LeaveType) error
	Delete(ctx context.Context, id string) error
}

// LeaveRecordRepository - interface for leave_records table
type LeaveRecordRepository interface {
	Create(ctx context.Context, record LeaveRecord) (LeaveRecord, error)
	GetByID(ctx context.Context, id string) (LeaveRecord, error)
	List(ctx context.Context, filter LeaveRecordFilter) ([]LeaveRecord, int64, error)
	Update(ctx context.Context, req UpdateLeaveRecordRequest) error
	Delete(ctx context.Context, id string) error

	// HasOverlapping reports whether any REQUESTED or APPROVED record for the
	// employee intersects [startDate, endDate] inclusively. excludeID skips
	// the record being updated.
	HasOverlapping(ctx context.Context, employeeID string, startDate, endDate time.Time, excludeID *string) (bool, error)

	// LockEmployee serializes check-then-write sequences for one employee's
	// records. Must be called inside a transaction; the lock is released on
	// commit or rollback.
	LockEmployee(ctx context.Context, employeeID string) error

	// ListApprovedIntersecting returns APPROVED records intersecting the
	// window, ordered by start date ascending.
	ListApprovedIntersecting(ctx context.Context, windowStart, windowEnd time.Time, employeeID *string) ([]LeaveRecord, error)
}
