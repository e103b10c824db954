package document

import (
	"time"

	"github.com/corehr/hr-backend-go/internal/pkg/validator"
)

type CreateDocumentTypeRequest struct {
	Name                   string `json:"name"`
	Description            string `json:"description"`
	IsPersonal             bool   `json:"is_personal"`
	RequiresAcknowledgment bool   `json:"requires_acknowledgment"`
	ExpiryTrackingDays     *int   `json:"expiry_tracking_days,omitempty"`
}

func (r *CreateDocumentTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name must not exceed 255 characters"})
	}
	if r.ExpiryTrackingDays != nil && *r.ExpiryTrackingDays <= 0 {
		errs = append(errs, validator.ValidationError{Field: "expiry_tracking_days", Message: "expiry_tracking_days must be positive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateDocumentTypeRequest struct {
	ID                     string  `json:"-"`
	Name                   *string `json:"name,omitempty"`
	Description            *string `json:"description,omitempty"`
	RequiresAcknowledgment *bool   `json:"requires_acknowledgment,omitempty"`
	ExpiryTrackingDays     *int    `json:"expiry_tracking_days,omitempty"`
}

type CreateDocumentRequest struct {
	DocumentTypeID         string   `json:"document_type_id"`
	Title                  string   `json:"title"`
	AssigneeIDs            []string `json:"assignee_ids,omitempty"`
	AssigneeRoleIDs        []string `json:"assignee_role_ids,omitempty"`
	AcknowledgmentDeadline *string  `json:"acknowledgment_deadline,omitempty"`
}

func (r *CreateDocumentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.DocumentTypeID) {
		errs = append(errs, validator.ValidationError{Field: "document_type_id", Message: "document_type_id is required"})
	}
	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{Field: "title", Message: "title is required"})
	}
	if len(r.Title) > 255 {
		errs = append(errs, validator.ValidationError{Field: "title", Message: "title must not exceed 255 characters"})
	}
	if r.AcknowledgmentDeadline != nil {
		if _, ok := validator.IsValidDateTime(*r.AcknowledgmentDeadline); !ok {
			errs = append(errs, validator.ValidationError{Field: "acknowledgment_deadline", Message: "acknowledgment_deadline must be an ISO8601 timestamp"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DocumentFilter struct {
	DocumentTypeID *string
	CreatedByID    *string
	// AssignedToID restricts results to documents assigned to this user
	// (directly or via role). Always set for non-administrators.
	AssignedToID *string
	Acknowledged *bool
	Search       *string
	Page         int
	Limit        int
	SortBy       string
	SortOrder    string
}

type CreatePersonalDocumentRequest struct {
	UserID         string  `json:"user_id,omitempty"`
	DocumentTypeID string  `json:"document_type_id"`
	DocumentNumber string  `json:"document_number"`
	IssueDate      *string `json:"issue_date,omitempty"`
	ExpiryDate     string  `json:"expiry_date"`
	Notes          string  `json:"notes"`
}

func (r *CreatePersonalDocumentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.DocumentTypeID) {
		errs = append(errs, validator.ValidationError{Field: "document_type_id", Message: "document_type_id is required"})
	}
	if _, ok := validator.IsValidDate(r.ExpiryDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "expiry_date", Message: "expiry_date must be in YYYY-MM-DD format"})
	}
	if r.IssueDate != nil {
		if _, ok := validator.IsValidDate(*r.IssueDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "issue_date", Message: "issue_date must be in YYYY-MM-DD format"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdatePersonalDocumentRequest struct {
	ID             string  `json:"-"`
	DocumentNumber *string `json:"document_number,omitempty"`
	IssueDate      *string `json:"issue_date,omitempty"`
	ExpiryDate     *string `json:"expiry_date,omitempty"`
	Notes          *string `json:"notes,omitempty"`
	FileURL        *string `json:"-"`

	// Set by the service when the expiry date moves, so a renewed document
	// becomes eligible for expiry warnings again.
	ResetExpiryNotified bool `json:"-"`
}

func (r *UpdatePersonalDocumentRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ExpiryDate != nil {
		if _, ok := validator.IsValidDate(*r.ExpiryDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "expiry_date", Message: "expiry_date must be in YYYY-MM-DD format"})
		}
	}
	if r.IssueDate != nil {
		if _, ok := validator.IsValidDate(*r.IssueDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "issue_date", Message: "issue_date must be in YYYY-MM-DD format"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PersonalDocumentFilter struct {
	UserID         *string
	DocumentTypeID *string
	ExpiryBefore   *time.Time
	Page           int
	Limit          int
}

type PersonalDocumentResponse struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	UserName         *string   `json:"user_name,omitempty"`
	DocumentTypeID   string    `json:"document_type_id"`
	DocumentTypeName *string   `json:"document_type_name,omitempty"`
	DocumentNumber   string    `json:"document_number"`
	IssueDate        *string   `json:"issue_date,omitempty"`
	ExpiryDate       string    `json:"expiry_date"`
	FileURL          *string   `json:"file_url,omitempty"`
	Notes            string    `json:"notes"`
	UploadedAt       time.Time `json:"uploaded_at"`
	IsExpired        bool      `json:"is_expired"`
	DaysUntilExpiry  int       `json:"days_until_expiry"`
	IsExpiryNotified bool      `json:"is_expiry_notified"`
}

func ToPersonalResponse(d PersonalDocument, today time.Time) PersonalDocumentResponse {
	resp := PersonalDocumentResponse{
		ID:               d.ID,
		UserID:           d.UserID,
		UserName:         d.UserName,
		DocumentTypeID:   d.DocumentTypeID,
		DocumentTypeName: d.DocumentTypeName,
		DocumentNumber:   d.DocumentNumber,
		ExpiryDate:       d.ExpiryDate.Format("2006-01-02"),
		FileURL:          d.FileURL,
		Notes:            d.Notes,
		UploadedAt:       d.UploadedAt,
		IsExpired:        d.IsExpired(today),
		DaysUntilExpiry:  d.DaysUntilExpiry(today),
		IsExpiryNotified: d.IsExpiryNotified,
	}
	if d.IssueDate != nil {
		issue := d.IssueDate.Format("2006-01-02")
		resp.IssueDate = &issue
	}
	return resp
}
