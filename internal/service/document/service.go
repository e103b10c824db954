package document

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/corehr/hr-backend-go/internal/domain/document"
	"github.com/corehr/hr-backend-go/internal/domain/entity"
	"github.com/corehr/hr-backend-go/internal/domain/notification"
	"github.com/corehr/hr-backend-go/internal/domain/user"
	"github.com/corehr/hr-backend-go/internal/pkg/database"
	"github.com/corehr/hr-backend-go/internal/pkg/validator"
	"github.com/corehr/hr-backend-go/internal/service/file"
)

type DocumentServiceImpl struct {
	tx database.TxRunner
	document.DocumentTypeRepository
	document.DocumentRepository
	document.AssignmentRepository
	document.PersonalDocumentRepository
	user.UserRepository
	fileService file.FileService
	notifier    notification.Service
	now         func() time.Time
}

func NewDocumentService(
	tx database.TxRunner,
	documentTypeRepository document.DocumentTypeRepository,
	documentRepository document.DocumentRepository,
	assignmentRepository document.AssignmentRepository,
	personalDocumentRepository document.PersonalDocumentRepository,
	userRepository user.UserRepository,
	fileService file.FileService,
	notifier notification.Service,
) *DocumentServiceImpl {
	return &DocumentServiceImpl{
		tx:                         tx,
		DocumentTypeRepository:     documentTypeRepository,
		DocumentRepository:         documentRepository,
		AssignmentRepository:       assignmentRepository,
		PersonalDocumentRepository: personalDocumentRepository,
		UserRepository:             userRepository,
		fileService:                fileService,
		notifier:                   notifier,
		now:                        time.Now,
	}
}

// CreateDocumentType implements document.DocumentService.
func (s *DocumentServiceImpl) CreateDocumentType(ctx context.Context, req document.CreateDocumentTypeRequest) (document.DocumentType, error) {
	if err := req.Validate(); err != nil {
		return document.DocumentType{}, err
	}

	if req.ExpiryTrackingDays != nil && !req.IsPersonal {
		return document.DocumentType{}, validator.ValidationErrors{{
			Field:   "expiry_tracking_days",
			Message: "expiry tracking applies only to personal document types",
		}}
	}

	return s.DocumentTypeRepository.Create(ctx, document.DocumentType{
		Name:                   req.Name,
		Description:            req.Description,
		IsPersonal:             req.IsPersonal,
		RequiresAcknowledgment: req.RequiresAcknowledgment,
		ExpiryTrackingDays:     req.ExpiryTrackingDays,
	})
}

// ListDocumentTypes implements document.DocumentService.
func (s *DocumentServiceImpl) ListDocumentTypes(ctx context.Context, personalOnly *bool) ([]document.DocumentType, error) {
	return s.DocumentTypeRepository.List(ctx, personalOnly)
}

// UpdateDocumentType implements document.DocumentService. The is_personal
// flag is immutable once documents of the type exist, so it is not part of
// the update request at all.
func (s *DocumentServiceImpl) UpdateDocumentType(ctx context.Context, req document.UpdateDocumentTypeRequest) error {
	dt, err := s.DocumentTypeRepository.GetByID(ctx, req.ID)
	if err != nil {
		return err
	}

	if req.Name != nil {
		dt.Name = *req.Name
	}
	if req.Description != nil {
		dt.Description = *req.Description
	}
	if req.RequiresAcknowledgment != nil {
		dt.RequiresAcknowledgment = *req.RequiresAcknowledgment
	}
	if req.ExpiryTrackingDays != nil {
		if !dt.IsPersonal {
			return validator.ValidationErrors{{
				Field:   "expiry_tracking_days",
				Message: "expiry tracking applies only to personal document types",
			}}
		}
		dt.ExpiryTrackingDays = req.ExpiryTrackingDays
	}

	return s.DocumentTypeRepository.Update(ctx, dt)
}

// DeleteDocumentType implements document.DocumentService.
func (s *DocumentServiceImpl) DeleteDocumentType(ctx context.Context, id string) error {
	return s.DocumentTypeRepository.Delete(ctx, id)
}

// CreateDocument implements document.DocumentService.
func (s *DocumentServiceImpl) CreateDocument(ctx context.Context, principal user.Principal, req document.CreateDocumentRequest, filename string, fileReader io.Reader) (document.Document, error) {
	if err := req.Validate(); err != nil {
		return document.Document{}, err
	}

	dt, err := s.DocumentTypeRepository.GetByID(ctx, req.DocumentTypeID)
	if err != nil {
		return document.Document{}, err
	}
	if dt.IsPersonal {
		return document.Document{}, validator.ValidationErrors{{
			Field:   "document_type_id",
			Message: "company documents cannot use a personal document type",
		}}
	}

	var deadline *time.Time
	if req.AcknowledgmentDeadline != nil {
		parsed, ok := validator.IsValidDateTime(*req.AcknowledgmentDeadline)
		if !ok {
			return document.Document{}, validator.ValidationErrors{{
				Field:   "acknowledgment_deadline",
				Message: "acknowledgment_deadline must be an ISO8601 timestamp",
			}}
		}
		deadline = &parsed
	}

	assigneeIDs, err := s.resolveAssignees(ctx, req.AssigneeIDs, req.AssigneeRoleIDs)
	if err != nil {
		return document.Document{}, err
	}

	fileURL, err := s.fileService.UploadCompanyDocument(ctx, fileReader, filename)
	if err != nil {
		return document.Document{}, fmt.Errorf("failed to store document file: %w", err)
	}

	var created document.Document
	err = s.tx.InTx(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.DocumentRepository.Create(txCtx, document.Document{
			DocumentTypeID:         req.DocumentTypeID,
			Title:                  req.Title,
			FileURL:                fileURL,
			CreatedByID:            &principal.UserID,
			AcknowledgmentDeadline: deadline,
		})
		if err != nil {
			return err
		}

		return s.AssignmentRepository.CreateBatch(txCtx, created.ID, assigneeIDs)
	})
	if err != nil {
		// The transaction rolled back; drop the orphaned file.
		_ = s.fileService.DeleteFile(ctx, fileURL)
		return document.Document{}, err
	}

	related := &entity.Ref{Kind: entity.KindDocument, ID: created.ID}
	message := fmt.Sprintf("You have been assigned the document %q.", req.Title)
	if deadline != nil {
		message = fmt.Sprintf("%s Please acknowledge it before %s.", message, deadline.Format(time.RFC3339))
	}
	for _, assigneeID := range assigneeIDs {
		s.notifier.Notify(ctx, assigneeID, notification.SeverityInfo, "New document assigned", message, related)
	}

	created.DocumentTypeName = &dt.Name
	return created, nil
}

// resolveAssignees merges directly listed users with every active member of
// the listed roles, deduplicated.
func (s *DocumentServiceImpl) resolveAssignees(ctx context.Context, userIDs, roleIDs []string) ([]string, error) {
	seen := make(map[string]struct{}, len(userIDs))
	result := make([]string, 0, len(userIDs))

	add := func(id string) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}

	for _, id := range userIDs {
		if _, err := s.UserRepository.GetByID(ctx, id); err != nil {
			return nil, err
		}
		add(id)
	}
	for _, roleID := range roleIDs {
		members, err := s.UserRepository.ListIDsByRole(ctx, roleID)
		if err != nil {
			return nil, err
		}
		for _, id := range members {
			add(id)
		}
	}

	return result, nil
}

// GetDocument implements document.DocumentService. Administrators see the
// full assignment list; assignees see the document and their own assignment.
func (s *DocumentServiceImpl) GetDocument(ctx context.Context, principal user.Principal, id string) (document.Document, []document.DocumentAssignment, error) {
	doc, err := s.DocumentRepository.GetByID(ctx, id)
	if err != nil {
		return document.Document{}, nil, err
	}

	if principal.IsAdmin {
		assignments, err := s.AssignmentRepository.ListByDocument(ctx, id)
		if err != nil {
			return document.Document{}, nil, err
		}
		return doc, assignments, nil
	}

	assignment, err := s.AssignmentRepository.Get(ctx, id, principal.UserID)
	if err != nil {
		if err == document.ErrAssignmentNotFound {
			return document.Document{}, nil, document.ErrForbidden
		}
		return document.Document{}, nil, err
	}
	return doc, []document.DocumentAssignment{assignment}, nil
}

// ListDocuments implements document.DocumentService. Non-administrators see
// only documents assigned to them.
func (s *DocumentServiceImpl) ListDocuments(ctx context.Context, principal user.Principal, filter document.DocumentFilter) ([]document.Document, int64, error) {
	if !principal.IsAdmin {
		filter.AssignedToID = &principal.UserID
	}
	return s.DocumentRepository.List(ctx, filter)
}

// DeleteDocument implements document.DocumentService.
func (s *DocumentServiceImpl) DeleteDocument(ctx context.Context, id string) error {
	doc, err := s.DocumentRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.DocumentRepository.Delete(ctx, id); err != nil {
		return err
	}

	// Best effort; the row is already gone.
	_ = s.fileService.DeleteFile(ctx, doc.FileURL)
	return nil
}

// Acknowledge implements document.DocumentService.
func (s *DocumentServiceImpl) Acknowledge(ctx context.Context, principal user.Principal, documentID string) error {
	if _, err := s.DocumentRepository.GetByID(ctx, documentID); err != nil {
		return err
	}
	return s.AssignmentRepository.Acknowledge(ctx, documentID, principal.UserID, s.now())
}

// CreatePersonalDocument implements document.DocumentService. Employees file
// their own credentials; administrators may file them for anyone.
func (s *DocumentServiceImpl) CreatePersonalDocument(ctx context.Context, principal user.Principal, req document.CreatePersonalDocumentRequest, filename string, fileReader io.Reader) (document.PersonalDocumentResponse, error) {
	if err := req.Validate(); err != nil {
		return document.PersonalDocumentResponse{}, err
	}

	ownerID := req.UserID
	if ownerID == "" {
		ownerID = principal.UserID
	}
	if !principal.IsAdmin && ownerID != principal.UserID {
		return document.PersonalDocumentResponse{}, document.ErrForbidden
	}

	dt, err := s.DocumentTypeRepository.GetByID(ctx, req.DocumentTypeID)
	if err != nil {
		return document.PersonalDocumentResponse{}, err
	}
	if !dt.IsPersonal {
		return document.PersonalDocumentResponse{}, document.ErrNotPersonalType
	}

	expiryDate, _ := time.Parse("2006-01-02", req.ExpiryDate)
	var issueDate *time.Time
	if req.IssueDate != nil {
		parsed, _ := time.Parse("2006-01-02", *req.IssueDate)
		issueDate = &parsed
	}

	var fileURL *string
	if fileReader != nil {
		stored, err := s.fileService.UploadPersonalDocument(ctx, ownerID, fileReader, filename)
		if err != nil {
			return document.PersonalDocumentResponse{}, fmt.Errorf("failed to store document file: %w", err)
		}
		fileURL = &stored
	}

	created, err := s.PersonalDocumentRepository.Create(ctx, document.PersonalDocument{
		UserID:         ownerID,
		DocumentTypeID: req.DocumentTypeID,
		DocumentNumber: req.DocumentNumber,
		IssueDate:      issueDate,
		ExpiryDate:     expiryDate,
		FileURL:        fileURL,
		Notes:          req.Notes,
		UploadedByID:   &principal.UserID,
	})
	if err != nil {
		if fileURL != nil {
			_ = s.fileService.DeleteFile(ctx, *fileURL)
		}
		return document.PersonalDocumentResponse{}, err
	}

	created.DocumentTypeName = &dt.Name
	return document.ToPersonalResponse(created, s.now()), nil
}

// GetPersonalDocument implements document.DocumentService.
func (s *DocumentServiceImpl) GetPersonalDocument(ctx context.Context, principal user.Principal, id string) (document.PersonalDocumentResponse, error) {
	doc, err := s.PersonalDocumentRepository.GetByID(ctx, id)
	if err != nil {
		return document.PersonalDocumentResponse{}, err
	}

	if !principal.IsAdmin && principal.UserID != doc.UserID {
		return document.PersonalDocumentResponse{}, document.ErrForbidden
	}

	return document.ToPersonalResponse(doc, s.now()), nil
}

// ListPersonalDocuments implements document.DocumentService.
func (s *DocumentServiceImpl) ListPersonalDocuments(ctx context.Context, principal user.Principal, filter document.PersonalDocumentFilter) ([]document.PersonalDocumentResponse, int64, error) {
	if !principal.IsAdmin {
		filter.UserID = &principal.UserID
	}

	docs, total, err := s.PersonalDocumentRepository.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	now := s.now()
	responses := make([]document.PersonalDocumentResponse, 0, len(docs))
	for _, doc := range docs {
		responses = append(responses, document.ToPersonalResponse(doc, now))
	}
	return responses, total, nil
}

// UpdatePersonalDocument implements document.DocumentService. Moving the
// expiry date re-arms the expiry warning for the renewed credential.
func (s *DocumentServiceImpl) UpdatePersonalDocument(ctx context.Context, principal user.Principal, req document.UpdatePersonalDocumentRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	doc, err := s.PersonalDocumentRepository.GetByID(ctx, req.ID)
	if err != nil {
		return err
	}
	if !principal.IsAdmin && principal.UserID != doc.UserID {
		return document.ErrForbidden
	}

	if req.ExpiryDate != nil {
		newExpiry, _ := time.Parse("2006-01-02", *req.ExpiryDate)
		if !newExpiry.Equal(doc.ExpiryDate) {
			req.ResetExpiryNotified = true
		}
	}

	return s.PersonalDocumentRepository.Update(ctx, req)
}

// DeletePersonalDocument implements document.DocumentService.
func (s *DocumentServiceImpl) DeletePersonalDocument(ctx context.Context, principal user.Principal, id string) error {
	doc, err := s.PersonalDocumentRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !principal.IsAdmin && principal.UserID != doc.UserID {
		return document.ErrForbidden
	}

	if err := s.PersonalDocumentRepository.Delete(ctx, id); err != nil {
		return err
	}

	if doc.FileURL != nil {
		_ = s.fileService.DeleteFile(ctx, *doc.FileURL)
	}
	return nil
}

// AckExpiry implements document.DocumentService.
func (s *DocumentServiceImpl) AckExpiry(ctx context.Context, principal user.Principal, id string) error {
	doc, err := s.PersonalDocumentRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !principal.IsAdmin && principal.UserID != doc.UserID {
		return document.ErrForbidden
	}

	return s.PersonalDocumentRepository.MarkExpiryNotified(ctx, id)
}
