package document

import "time"

// DocumentType entity. is_personal types describe employee credentials with
// expiry tracking; the rest are company-wide documents that may require
// acknowledgment.
type DocumentType struct {
	ID                     string
	Name                   string
	Description            string
	IsPersonal             bool
	RequiresAcknowledgment bool
	ExpiryTrackingDays     *int
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// Document entity: a company-wide document distributed to assignees.
type Document struct {
	ID                     string
	DocumentTypeID         string
	Title                  string
	FileURL                string
	CreatedByID            *string
	AcknowledgmentDeadline *time.Time
	CreatedAt              time.Time
	UpdatedAt              time.Time

	// Joins
	DocumentTypeName *string
	CreatedByName    *string
}

// DocumentAssignment tracks one user's obligation to review a document.
type DocumentAssignment struct {
	ID             string
	DocumentID     string
	UserID         string
	AssignedAt     time.Time
	IsAcknowledged bool
	AcknowledgedAt *time.Time

	// Joins
	UserName      *string
	DocumentTitle *string
	Deadline      *time.Time
}

// PersonalDocument entity: an employee credential with an expiry date.
type PersonalDocument struct {
	ID               string
	UserID           string
	DocumentTypeID   string
	DocumentNumber   string
	IssueDate        *time.Time
	ExpiryDate       time.Time
	FileURL          *string
	Notes            string
	UploadedByID     *string
	UploadedAt       time.Time
	IsExpiryNotified bool

	// Joins
	DocumentTypeName *string
	UserName         *string
}

// IsExpired reports whether the document's expiry date is earlier than today.
func (d *PersonalDocument) IsExpired(today time.Time) bool {
	return d.ExpiryDate.Before(today)
}

// DaysUntilExpiry returns the number of whole days left before expiry, 0 if
// already expired.
func (d *PersonalDocument) DaysUntilExpiry(today time.Time) int {
	if d.IsExpired(today) {
		return 0
	}
	return int(d.ExpiryDate.Sub(today).Hours() / 24)
}
