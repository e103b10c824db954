package document

import (
	"context"
	"io"

	"github.com/corehr/hr-backend-go/internal/domain/user"
)

type DocumentService interface {
	CreateDocumentType(ctx context.Context, req CreateDocumentTypeRequest) (DocumentType, error)
	ListDocumentTypes(ctx context.Context, personalOnly *bool) ([]DocumentType, error)
	UpdateDocumentType(ctx context.Context, req UpdateDocumentTypeRequest) error
	DeleteDocumentType(ctx context.Context, id string) error

	// CreateDocument stores the file, creates the document and fans
	// assignments out to the listed users and every user holding one of the
	// listed roles. Assignees are notified.
	CreateDocument(ctx context.Context, principal user.Principal, req CreateDocumentRequest, filename string, file io.Reader) (Document, error)
	GetDocument(ctx context.Context, principal user.Principal, id string) (Document, []DocumentAssignment, error)
	ListDocuments(ctx context.Context, principal user.Principal, filter DocumentFilter) ([]Document, int64, error)
	DeleteDocument(ctx context.Context, id string) error

	// Acknowledge records that the principal has reviewed the document.
	// Idempotence is rejected with ErrAlreadyAcknowledged.
	Acknowledge(ctx context.Context, principal user.Principal, documentID string) error

	CreatePersonalDocument(ctx context.Context, principal user.Principal, req CreatePersonalDocumentRequest, filename string, file io.Reader) (PersonalDocumentResponse, error)
	GetPersonalDocument(ctx context.Context, principal user.Principal, id string) (PersonalDocumentResponse, error)
	ListPersonalDocuments(ctx context.Context, principal user.Principal, filter PersonalDocumentFilter) ([]PersonalDocumentResponse, int64, error)
	UpdatePersonalDocument(ctx context.Context, principal user.Principal, req UpdatePersonalDocumentRequest) error
	DeletePersonalDocument(ctx context.Context, principal user.Principal, id string) error

	// AckExpiry marks the expiry notification for a personal document as
	// handled so the sweep stops repeating it.
	AckExpiry(ctx context.Context, principal user.Principal, id string) error
}
