package document

import "errors"

var (
	ErrDocumentTypeNotFound     = errors.New("document type not found")
	ErrDocumentTypeNameExists   = errors.New("document type name already exists")
	ErrDocumentTypeInUse        = errors.New("document type is referenced by existing documents")
	ErrDocumentNotFound         = errors.New("document not found")
	ErrAssignmentNotFound       = errors.New("document is not assigned to this user")
	ErrAlreadyAcknowledged      = errors.New("acknowledgment already recorded")
	ErrPersonalDocumentNotFound = errors.New("personal document not found")
	ErrPersonalDocumentExists   = errors.New("user already has a document of this type")
	ErrNotPersonalType          = errors.New("document type is not a personal document type")
	ErrForbidden                = errors.New("insufficient permissions for this document operation")
)
