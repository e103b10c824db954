package document

import (
	"context"
	"time"
)

// DocumentTypeRepository - interface for document_types table
type DocumentTypeRepository interface {
	Create(ctx context.Context, dt DocumentType) (DocumentType, error)
	GetByID(ctx context.Context, id string) (DocumentType, error)
	List(ctx context.Context, personalOnly *bool) ([]DocumentType, error)
	Update(ctx context.Context, dt DocumentType) error
	Delete(ctx context.Context, id string) error
}

// DocumentRepository - interface for documents table
type DocumentRepository interface {
	Create(ctx context.Context, doc Document) (Document, error)
	GetByID(ctx context.Context, id string) (Document, error)
	List(ctx context.Context, filter DocumentFilter) ([]Document, int64, error)
	Delete(ctx context.Context, id string) error
}

// AssignmentRepository - interface for document_assignments table
type AssignmentRepository interface {
	CreateBatch(ctx context.Context, documentID string, userIDs []string) error
	Get(ctx context.Context, documentID, userID string) (DocumentAssignment, error)
	ListByDocument(ctx context.Context, documentID string) ([]DocumentAssignment, error)
	ListPendingWithDeadline(ctx context.Context, now time.Time) ([]DocumentAssignment, error)
	Acknowledge(ctx context.Context, documentID, userID string, at time.Time) error
}

// PersonalDocumentRepository - interface for personal_documents table
type PersonalDocumentRepository interface {
	Create(ctx context.Context, doc PersonalDocument) (PersonalDocument, error)
	GetByID(ctx context.Context, id string) (PersonalDocument, error)
	List(ctx context.Context, filter PersonalDocumentFilter) ([]PersonalDocument, int64, error)
	Update(ctx context.Context, req UpdatePersonalDocumentRequest) error
	Delete(ctx context.Context, id string) error

	// ListUnnotified returns documents whose expiry notification has not been
	// sent yet, together with the tracking window of their type.
	ListUnnotified(ctx context.Context) ([]ExpiryCandidate, error)
	MarkExpiryNotified(ctx context.Context, id string) error
}

// ExpiryCandidate pairs a personal document with its type's tracking window
// for the expiry sweep.
type ExpiryCandidate struct {
	Document           PersonalDocument
	ExpiryTrackingDays *int
}
