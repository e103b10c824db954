package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/corehr/hr-backend-go/internal/domain/document"
	"github.com/corehr/hr-backend-go/internal/handler/http/middleware"
	"github.com/corehr/hr-backend-go/internal/handler/http/response"
	"github.com/corehr/hr-backend-go/internal/pkg/validator"
)

type DocumentHandler interface {
	CreateDocumentType(w http.ResponseWriter, r *http.Request)
	ListDocumentTypes(w http.ResponseWriter, r *http.Request)
	UpdateDocumentType(w http.ResponseWriter, r *http.Request)
	DeleteDocumentType(w http.ResponseWriter, r *http.Request)

	CreateDocument(w http.ResponseWriter, r *http.Request)
	GetDocument(w http.ResponseWriter, r *http.Request)
	ListDocuments(w http.ResponseWriter, r *http.Request)
	DeleteDocument(w http.ResponseWriter, r *http.Request)
	Acknowledge(w http.ResponseWriter, r *http.Request)

	CreatePersonalDocument(w http.ResponseWriter, r *http.Request)
	GetPersonalDocument(w http.ResponseWriter, r *http.Request)
	ListPersonalDocuments(w http.ResponseWriter, r *http.Request)
	UpdatePersonalDocument(w http.ResponseWriter, r *http.Request)
	DeletePersonalDocument(w http.ResponseWriter, r *http.Request)
	AckExpiry(w http.ResponseWriter, r *http.Request)
}

type DocumentHandlerImpl struct {
	documentService document.DocumentService
}

func NewDocumentHandler(documentService document.DocumentService) DocumentHandler {
	return &DocumentHandlerImpl{documentService: documentService}
}

// CreateDocumentType implements DocumentHandler.
func (h *DocumentHandlerImpl) CreateDocumentType(w http.ResponseWriter, r *http.Request) {
	var req document.CreateDocumentTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.documentService.CreateDocumentType(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Document type created successfully", created)
}

// ListDocumentTypes implements DocumentHandler.
func (h *DocumentHandlerImpl) ListDocumentTypes(w http.ResponseWriter, r *http.Request) {
	var personalOnly *bool
	if p := r.URL.Query().Get("is_personal"); p != "" {
		if parsed, err := strconv.ParseBool(p); err == nil {
			personalOnly = &parsed
		}
	}

	types, err := h.documentService.ListDocumentTypes(r.Context(), personalOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, types)
}

// UpdateDocumentType implements DocumentHandler.
func (h *DocumentHandlerImpl) UpdateDocumentType(w http.ResponseWriter, r *http.Request) {
	var req document.UpdateDocumentTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := h.documentService.UpdateDocumentType(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Document type updated successfully", nil)
}

// DeleteDocumentType implements DocumentHandler.
func (h *DocumentHandlerImpl) DeleteDocumentType(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.documentService.DeleteDocumentType(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Document type deleted successfully", nil)
}

// CreateDocument implements DocumentHandler.
func (h *DocumentHandlerImpl) CreateDocument(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.Principal(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	dataJSON := r.FormValue("data")
	if dataJSON == "" {
		response.BadRequest(w, "Field 'data' is required", nil)
		return
	}

	var req document.CreateDocumentRequest
	if err := json.Unmarshal([]byte(dataJSON), &req); err != nil {
		slog.Error("Failed to unmarshal JSON data", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Field 'file' is required", nil)
		return
	}
	defer file.Close()

	created, err := h.documentService.CreateDocument(r.Context(), principal, req, fileHeader.Filename, file)
	if err != nil {
		slog.Error("CreateDocument service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Document created successfully", created)
}

// GetDocument implements DocumentHandler.
func (h *DocumentHandlerImpl) GetDocument(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.Principal(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	doc, assignments, err := h.documentService.GetDocument(r.Context(), principal, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]interface{}{
		"document":    doc,
		"assignments": assignments,
	})
}

// ListDocuments implements DocumentHandler.
func (h *DocumentHandlerImpl) ListDocuments(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.Principal(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filter := document.DocumentFilter{}

	if typeID := r.URL.Query().Get("document_type_id"); typeID != "" {
		filter.DocumentTypeID = &typeID
	}
	if createdBy := r.URL.Query().Get("created_by"); createdBy != "" {
		filter.CreatedByID = &createdBy
	}
	if assignedTo := r.URL.Query().Get("assigned_to"); assignedTo != "" {
		filter.AssignedToID = &assignedTo
	}
	if ack := r.URL.Query().Get("acknowledged"); ack != "" {
		if parsed, err := strconv.ParseBool(ack); err == nil {
			filter.Acknowledged = &parsed
		}
	}
	if search := r.URL.Query().Get("search"); search != "" {
		filter.Search = &search
	}

	filter.Page = 1
	if p := r.URL.Query().Get("page"); p != "" {
		if pageNum, err := strconv.Atoi(p); err == nil && pageNum > 0 {
			filter.Page = pageNum
		}
	}
	filter.Limit = 20
	if l := r.URL.Query().Get("limit"); l != "" {
		if limitNum, err := strconv.Atoi(l); err == nil && limitNum > 0 && limitNum <= 100 {
			filter.Limit = limitNum
		}
	}
	filter.SortBy = r.URL.Query().Get("sort_by")
	filter.SortOrder = r.URL.Query().Get("sort_order")

	docs, total, err := h.documentService.ListDocuments(r.Context(), principal, filter)
	if err != nil {
		slog.Error("ListDocuments service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, docs, response.NewMeta(filter.Page, filter.Limit, total))
}

// DeleteDocument implements DocumentHandler.
func (h *DocumentHandlerImpl) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.documentService.DeleteDocument(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Document deleted successfully", nil)
}

// Acknowledge implements DocumentHandler.
func (h *DocumentHandlerImpl) Acknowledge(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.Principal(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.documentService.Acknowledge(r.Context(), principal, chi.URLParam(r, "id")); err != nil {
		slog.Error("Acknowledge service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Document acknowledged", nil)
}

// personalDocumentFile extracts the optional file part from a multipart
// request. A plain JSON body is also accepted when no file accompanies the
// document.
func personalDocumentFile(r *http.Request) (string, io.Reader, func(), error) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		return "", nil, nil, err
	}

	file, fileHeader, err := r.FormFile("file")
	if err == http.ErrMissingFile {
		return "", nil, func() {}, nil
	}
	if err != nil {
		return "", nil, nil, err
	}
	return fileHeader.Filename, file, func() { file.Close() }, nil
}

// CreatePersonalDocument implements DocumentHandler.
func (h *DocumentHandlerImpl) CreatePersonalDocument(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.Principal(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req document.CreatePersonalDocumentRequest
	var filename string
	var file io.Reader

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		name, f, closeFn, err := personalDocumentFile(r)
		if err != nil {
			slog.Error("Failed to parse multipart form", "error", err)
			response.BadRequest(w, "Failed to parse form data", nil)
			return
		}
		defer closeFn()
		filename, file = name, f

		dataJSON := r.FormValue("data")
		if dataJSON == "" {
			response.BadRequest(w, "Field 'data' is required", nil)
			return
		}
		if err := json.Unmarshal([]byte(dataJSON), &req); err != nil {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	created, err := h.documentService.CreatePersonalDocument(r.Context(), principal, req, filename, file)
	if err != nil {
		slog.Error("CreatePersonalDocument service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Personal document created successfully", created)
}

// GetPersonalDocument implements DocumentHandler.
func (h *DocumentHandlerImpl) GetPersonalDocument(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.Principal(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.documentService.GetPersonalDocument(r.Context(), principal, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// ListPersonalDocuments implements DocumentHandler.
func (h *DocumentHandlerImpl) ListPersonalDocuments(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.Principal(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filter := document.PersonalDocumentFilter{}

	if userID := r.URL.Query().Get("user_id"); userID != "" {
		filter.UserID = &userID
	}
	if typeID := r.URL.Query().Get("document_type_id"); typeID != "" {
		filter.DocumentTypeID = &typeID
	}
	if before := r.URL.Query().Get("expiry_before"); before != "" {
		if parsed, ok := validator.IsValidDate(before); ok {
			filter.ExpiryBefore = &parsed
		}
	}

	filter.Page = 1
	if p := r.URL.Query().Get("page"); p != "" {
		if pageNum, err := strconv.Atoi(p); err == nil && pageNum > 0 {
			filter.Page = pageNum
		}
	}
	filter.Limit = 20
	if l := r.URL.Query().Get("limit"); l != "" {
		if limitNum, err := strconv.Atoi(l); err == nil && limitNum > 0 && limitNum <= 100 {
			filter.Limit = limitNum
		}
	}

	docs, total, err := h.documentService.ListPersonalDocuments(r.Context(), principal, filter)
	if err != nil {
		slog.Error("ListPersonalDocuments service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, docs, response.NewMeta(filter.Page, filter.Limit, total))
}

// UpdatePersonalDocument implements DocumentHandler.
func (h *DocumentHandlerImpl) UpdatePersonalDocument(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.Principal(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req document.UpdatePersonalDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := h.documentService.UpdatePersonalDocument(r.Context(), principal, req); err != nil {
		slog.Error("UpdatePersonalDocument service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Personal document updated successfully", nil)
}

// DeletePersonalDocument implements DocumentHandler.
func (h *DocumentHandlerImpl) DeletePersonalDocument(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.Principal(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.documentService.DeletePersonalDocument(r.Context(), principal, chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Personal document deleted successfully", nil)
}

// AckExpiry implements DocumentHandler.
func (h *DocumentHandlerImpl) AckExpiry(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.Principal(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.documentService.AckExpiry(r.Context(), principal, chi.URLParam(r, "id")); err != nil {
		slog.Error("AckExpiry service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Expiry notification acknowledged", nil)
}
