package leave

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/corehr/hr-backend-go/internal/domain/entity"
	"github.com/corehr/hr-backend-go/internal/domain/leave"
	"github.com/corehr/hr-backend-go/internal/domain/notification"
	"github.com/corehr/hr-backend-go/internal/domain/user"
	"github.com/corehr/hr-backend-go/internal/pkg/database"
	"github.com/corehr/hr-backend-go/internal/pkg/validator"
)

type LeaveServiceImpl struct {
	tx database.TxRunner
	leave.LeaveTypeRepository
	leave.LeaveRecordRepository
	user.UserRepository
	notifier notification.Service
	now      func() time.Time
}

func NewLeaveService(
	tx database.TxRunner,
	leaveTypeRepository leave.LeaveTypeRepository,
	leaveRecordRepository leave.LeaveRecordRepository,
	userRepository user.UserRepository,
	notifier notification.Service,
) *LeaveServiceImpl {
	return &LeaveServiceImpl{
		tx:                    tx,
		LeaveTypeRepository:   leaveTypeRepository,
		LeaveRecordRepository: leaveRecordRepository,
		UserRepository:        userRepository,
		notifier:              notifier,
		now:                   time.Now,
	}
}

// CreateLeaveType implements leave.LeaveService.
func (l *LeaveServiceImpl) CreateLeaveType(ctx context.Context, req leave.CreateLeaveTypeRequest) (leave.LeaveType, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveType{}, err
	}

	return l.LeaveTypeRepository.Create(ctx, leave.LeaveType{
		Name:       req.Name,
		IsVacation: req.IsVacation,
		IsPaid:     req.IsPaid,
	})
}

// ListLeaveTypes implements leave.LeaveService.
func (l *LeaveServiceImpl) ListLeaveTypes(ctx context.Context) ([]leave.LeaveType, error) {
	return l.LeaveTypeRepository.List(ctx)
}

// UpdateLeaveType implements leave.LeaveService.
func (l *LeaveServiceImpl) UpdateLeaveType(ctx context.Context, leaveType leave.LeaveType) error {
	return l.LeaveTypeRepository.Update(ctx, leaveType)
}

// DeleteLeaveType implements leave.LeaveService.
func (l *LeaveServiceImpl) DeleteLeaveType(ctx context.Context, id string) error {
	return l.LeaveTypeRepository.Delete(ctx, id)
}

// CreateLeave implements leave.LeaveService. The overlap check and the
// insert run in one transaction holding a per-employee advisory lock, so
// concurrent submissions cannot both pass the check.
func (l *LeaveServiceImpl) CreateLeave(ctx context.Context, principal user.Principal, req leave.CreateLeaveRequest) (leave.LeaveRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRecordResponse{}, err
	}

	startDate, _ := time.Parse("2006-01-02", req.StartDate)
	endDate, _ := time.Parse("2006-01-02", req.EndDate)

	leaveType, err := l.LeaveTypeRepository.GetByID(ctx, req.LeaveTypeID)
	if err != nil {
		return leave.LeaveRecordResponse{}, err
	}

	var created leave.LeaveRecord
	err = l.tx.InTx(ctx, func(txCtx context.Context) error {
		if err := l.LockEmployee(txCtx, req.EmployeeID); err != nil {
			return fmt.Errorf("failed to lock employee records: %w", err)
		}

		overlapping, err := l.HasOverlapping(txCtx, req.EmployeeID, startDate, endDate, nil)
		if err != nil {
			return fmt.Errorf("failed to check overlapping absences: %w", err)
		}
		if overlapping {
			return leave.ErrOverlappingLeave
		}

		created, err = l.LeaveRecordRepository.Create(txCtx, leave.LeaveRecord{
			EmployeeID:  req.EmployeeID,
			LeaveTypeID: req.LeaveTypeID,
			StartDate:   startDate,
			EndDate:     endDate,
			Status:      leave.StatusRequested,
			Reason:      req.Reason,
		})
		return err
	})
	if err != nil {
		return leave.LeaveRecordResponse{}, err
	}

	created.LeaveTypeName = &leaveType.Name
	l.notifyAdmins(ctx, created, notification.SeverityInfo,
		"New leave request",
		fmt.Sprintf("A leave request for %s through %s is waiting for a decision.", req.StartDate, req.EndDate))

	return leave.ToResponse(created, canCancel(principal, created, l.now())), nil
}

// GetLeave implements leave.LeaveService.
func (l *LeaveServiceImpl) GetLeave(ctx context.Context, principal user.Principal, id string) (leave.LeaveRecordResponse, error) {
	record, err := l.LeaveRecordRepository.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRecordResponse{}, err
	}

	if !principal.IsAdmin && principal.UserID != record.EmployeeID {
		return leave.LeaveRecordResponse{}, leave.ErrForbidden
	}

	return leave.ToResponse(record, canCancel(principal, record, l.now())), nil
}

// ListLeaves implements leave.LeaveService. Non-administrators are pinned to
// their own records regardless of the requested filter.
func (l *LeaveServiceImpl) ListLeaves(ctx context.Context, principal user.Principal, filter leave.LeaveRecordFilter) ([]leave.LeaveRecordResponse, int64, error) {
	if !principal.IsAdmin {
		filter.EmployeeID = &principal.UserID
	}

	records, total, err := l.LeaveRecordRepository.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	now := l.now()
	responses := make([]leave.LeaveRecordResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, leave.ToResponse(record, canCancel(principal, record, now)))
	}
	return responses, total, nil
}

// UpdateLeave implements leave.LeaveService. Only the owner or an
// administrator may edit, and only while the record is still REQUESTED.
// Date changes re-run the overlap check under the employee lock.
func (l *LeaveServiceImpl) UpdateLeave(ctx context.Context, principal user.Principal, id string, req leave.UpdateLeaveFields) (leave.LeaveRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRecordResponse{}, err
	}

	if req.LeaveTypeID != nil {
		if _, err := l.LeaveTypeRepository.GetByID(ctx, *req.LeaveTypeID); err != nil {
			return leave.LeaveRecordResponse{}, err
		}
	}

	err := l.tx.InTx(ctx, func(txCtx context.Context) error {
		record, err := l.LeaveRecordRepository.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if err := canModify(principal, record); err != nil {
			return err
		}

		update := leave.UpdateLeaveRecordRequest{
			ID:          id,
			LeaveTypeID: req.LeaveTypeID,
			Reason:      req.Reason,
		}

		startDate := record.StartDate
		endDate := record.EndDate
		datesChanged := false
		if req.StartDate != nil {
			startDate, _ = time.Parse("2006-01-02", *req.StartDate)
			update.StartDate = &startDate
			datesChanged = true
		}
		if req.EndDate != nil {
			endDate, _ = time.Parse("2006-01-02", *req.EndDate)
			update.EndDate = &endDate
			datesChanged = true
		}
		if startDate.After(endDate) {
			return validator.ValidationErrors{
				{Field: "end_date", Message: "end_date must not be before start_date"},
			}
		}

		if datesChanged {
			if err := l.LockEmployee(txCtx, record.EmployeeID); err != nil {
				return fmt.Errorf("failed to lock employee records: %w", err)
			}
			overlapping, err := l.HasOverlapping(txCtx, record.EmployeeID, startDate, endDate, &id)
			if err != nil {
				return fmt.Errorf("failed to check overlapping absences: %w", err)
			}
			if overlapping {
				return leave.ErrOverlappingLeave
			}
		}

		return l.LeaveRecordRepository.Update(txCtx, update)
	})
	if err != nil {
		return leave.LeaveRecordResponse{}, err
	}

	updated, err := l.LeaveRecordRepository.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRecordResponse{}, err
	}
	return leave.ToResponse(updated, canCancel(principal, updated, l.now())), nil
}

// DeleteLeave implements leave.LeaveService. Same authorization as editing:
// decided records stay in history and can only be cancelled.
func (l *LeaveServiceImpl) DeleteLeave(ctx context.Context, principal user.Principal, id string) error {
	return l.tx.InTx(ctx, func(txCtx context.Context) error {
		record, err := l.LeaveRecordRepository.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if err := canModify(principal, record); err != nil {
			return err
		}

		return l.LeaveRecordRepository.Delete(txCtx, id)
	})
}

// Transition implements leave.LeaveService.
func (l *LeaveServiceImpl) Transition(ctx context.Context, principal user.Principal, id string, target leave.LeaveStatus, req leave.TransitionRequest) (leave.LeaveRecordResponse, error) {
	now := l.now()

	var record leave.LeaveRecord
	err := l.tx.InTx(ctx, func(txCtx context.Context) error {
		var err error
		record, err = l.LeaveRecordRepository.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		if err := AuthorizeTransition(principal, record, target, now); err != nil {
			return err
		}

		update := leave.UpdateLeaveRecordRequest{
			ID:           id,
			Status:       &target,
			ProcessedAt:  &now,
			ApprovedByID: &principal.UserID,
		}
		if req.Reason != "" {
			combined := strings.TrimSpace(record.Reason + "\n" + req.Reason)
			update.Reason = &combined
			record.Reason = combined
		}

		return l.LeaveRecordRepository.Update(txCtx, update)
	})
	if err != nil {
		return leave.LeaveRecordResponse{}, err
	}

	record.Status = target
	record.ProcessedAt = &now
	record.ApprovedByID = &principal.UserID

	l.notifyTransition(ctx, principal, record, target, req.Reason)

	return leave.ToResponse(record, canCancel(principal, record, now)), nil
}

// Calendar implements leave.LeaveService.
func (l *LeaveServiceImpl) Calendar(ctx context.Context, principal user.Principal, start, end time.Time, employeeID *string) ([]leave.LeaveRecordResponse, error) {
	if end.Before(start) {
		return nil, leave.ErrInvalidState
	}

	records, err := l.ListApprovedIntersecting(ctx, start, end, employeeID)
	if err != nil {
		return nil, err
	}

	now := l.now()
	responses := make([]leave.LeaveRecordResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, leave.ToResponse(record, canCancel(principal, record, now)))
	}
	return responses, nil
}

func (l *LeaveServiceImpl) notifyAdmins(ctx context.Context, record leave.LeaveRecord, severity notification.Severity, title, message string) {
	adminIDs, err := l.UserRepository.ListAdminIDs(ctx)
	if err != nil {
		return
	}

	related := &entity.Ref{Kind: entity.KindLeaveRecord, ID: record.ID}
	for _, adminID := range adminIDs {
		if adminID == record.EmployeeID {
			continue
		}
		l.notifier.Notify(ctx, adminID, severity, title, message, related)
	}
}

func (l *LeaveServiceImpl) notifyTransition(ctx context.Context, principal user.Principal, record leave.LeaveRecord, target leave.LeaveStatus, reason string) {
	related := &entity.Ref{Kind: entity.KindLeaveRecord, ID: record.ID}
	dates := fmt.Sprintf("%s through %s",
		record.StartDate.Format("2006-01-02"), record.EndDate.Format("2006-01-02"))

	switch target {
	case leave.StatusApproved:
		l.notifier.Notify(ctx, record.EmployeeID, notification.SeveritySuccess,
			"Leave request approved",
			fmt.Sprintf("Your absence %s has been approved.", dates), related)
	case leave.StatusRejected:
		message := fmt.Sprintf("Your request %s has been rejected.", dates)
		if reason != "" {
			message = fmt.Sprintf("%s Reason: %s", message, reason)
		}
		l.notifier.Notify(ctx, record.EmployeeID, notification.SeverityWarning,
			"Leave request rejected", message, related)
	case leave.StatusCancelled:
		if principal.UserID == record.EmployeeID {
			l.notifyAdmins(ctx, record, notification.SeverityInfo,
				"Leave cancelled",
				fmt.Sprintf("A previously submitted absence %s was cancelled by the employee.", dates))
		} else {
			l.notifier.Notify(ctx, record.EmployeeID, notification.SeverityWarning,
				"Leave cancelled",
				fmt.Sprintf("Your absence %s was cancelled by an administrator.", dates), related)
		}
	}
}
