package leave

import (
	"time"

	"github.com/corehr/hr-backend-go/internal/pkg/validator"
)

type CreateLeaveTypeRequest struct {
	Name       string `json:"name"`
	IsVacation bool   `json:"is_vacation"`
	IsPaid     bool   `json:"is_paid"`
}

func (r *CreateLeaveTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if len(r.Name) > 100 {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name must not exceed 100 characters"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateLeaveRequest struct {
	// EmployeeID is forced to the authenticated principal by the handler;
	// only administrators may submit on behalf of another employee.
	EmployeeID  string `json:"employee_id"`
	LeaveTypeID string `json:"leave_type_id"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Reason      string `json:"reason"`
}

func (r *CreateLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{Field: "leave_type_id", Message: "leave_type_id is required"})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be in YYYY-MM-DD format"})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be in YYYY-MM-DD format"})
	}
	if startOK && endOK && start.After(end) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must not be before start_date"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateLeaveFields carries the employee-editable fields of a REQUESTED record.
type UpdateLeaveFields struct {
	LeaveTypeID *string `json:"leave_type_id,omitempty"`
	StartDate   *string `json:"start_date,omitempty"`
	EndDate     *string `json:"end_date,omitempty"`
	Reason      *string `json:"reason,omitempty"`
}

func (r *UpdateLeaveFields) Validate() error {
	var errs validator.ValidationErrors

	if r.StartDate != nil {
		if _, ok := validator.IsValidDate(*r.StartDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be in YYYY-MM-DD format"})
		}
	}
	if r.EndDate != nil {
		if _, ok := validator.IsValidDate(*r.EndDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be in YYYY-MM-DD format"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TransitionRequest struct {
	Reason string `json:"reason"`
}

// UpdateLeaveRecordRequest is the repository-level partial update.
type UpdateLeaveRecordRequest struct {
	ID           string
	LeaveTypeID  *string
	StartDate    *time.Time
	EndDate      *time.Time
	Status       *LeaveStatus
	Reason       *string
	ApprovedByID *string
	ProcessedAt  *time.Time
}

type LeaveRecordFilter struct {
	EmployeeID   *string
	LeaveTypeID  *string
	Status       *LeaveStatus
	StartDateGTE *time.Time
	EndDateLTE   *time.Time
	Page         int
	Limit        int
	SortBy       string
	SortOrder    string
}

type LeaveRecordResponse struct {
	ID            string      `json:"id"`
	EmployeeID    string      `json:"employee_id"`
	EmployeeName  *string     `json:"employee_name,omitempty"`
	LeaveTypeID   string      `json:"leave_type_id"`
	LeaveTypeName *string     `json:"leave_type_name,omitempty"`
	StartDate     string      `json:"start_date"`
	EndDate       string      `json:"end_date"`
	DurationDays  int         `json:"duration_days"`
	Status        LeaveStatus `json:"status"`
	Reason        string      `json:"reason"`
	RequestedAt   time.Time   `json:"requested_at"`
	ApprovedByID  *string     `json:"approved_by_id,omitempty"`
	ProcessedAt   *time.Time  `json:"processed_at,omitempty"`
	CanCancel     bool        `json:"can_cancel"`
}

// ToResponse renders a record for the API; canCancel is evaluated against
// the acting principal by the service.
func ToResponse(r LeaveRecord, canCancel bool) LeaveRecordResponse {
	return LeaveRecordResponse{
		ID:            r.ID,
		EmployeeID:    r.EmployeeID,
		EmployeeName:  r.EmployeeName,
		LeaveTypeID:   r.LeaveTypeID,
		LeaveTypeName: r.LeaveTypeName,
		StartDate:     r.StartDate.Format("2006-01-02"),
		EndDate:       r.EndDate.Format("2006-01-02"),
		DurationDays:  r.DurationDays(),
		Status:        r.Status,
		Reason:        r.Reason,
		RequestedAt:   r.RequestedAt,
		ApprovedByID:  r.ApprovedByID,
		ProcessedAt:   r.ProcessedAt,
		CanCancel:     canCancel,
	}
}
