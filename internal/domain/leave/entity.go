package leave

import "time"

// LeaveType entity. Immutable reference data maintained by administrators.
type LeaveType struct {
	ID         string
	Name       string
	IsVacation bool
	IsPaid     bool
}

type LeaveStatus string

const (
	StatusRequested LeaveStatus = "REQUESTED"
	StatusApproved  LeaveStatus = "APPROVED"
	StatusRejected  LeaveStatus = "REJECTED"
	StatusCancelled LeaveStatus = "CANCELLED"
)

// Active reports whether records in this status block overlapping requests.
func (s LeaveStatus) Active() bool {
	return s == StatusRequested || s == StatusApproved
}

// LeaveRecord entity. Dates are inclusive calendar days; the status field is
// a directed state machine mutated only through LeaveService.Transition.
type LeaveRecord struct {
	ID           string
	EmployeeID   string
	LeaveTypeID  string
	StartDate    time.Time
	EndDate      time.Time
	Status       LeaveStatus
	Reason       string
	RequestedAt  time.Time
	ApprovedByID *string
	ProcessedAt  *time.Time

	// Joins
	LeaveTypeName *string
	EmployeeName  *string
}

// DurationDays returns the inclusive length of the absence in days, always >= 1
// for a valid record.
func (r *LeaveRecord) DurationDays() int {
	return int(r.EndDate.Sub(r.StartDate).Hours()/24) + 1
}

// RangesIntersect reports whether two inclusive date ranges share at least
// one day: [s1,e1] and [s2,e2] intersect iff s1 <= e2 && s2 <= e1.
func RangesIntersect(s1, e1, s2, e2 time.Time) bool {
	return !s1.After(e2) && !s2.After(e1)
}
