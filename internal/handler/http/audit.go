package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/corehr/hr-backend-go/internal/domain/audit"
	"github.com/corehr/hr-backend-go/internal/handler/http/response"
)

type AuditHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type auditHandlerImpl struct {
	auditRepo audit.Repository
}

func NewAuditHandler(auditRepo audit.Repository) AuditHandler {
	return &auditHandlerImpl{auditRepo: auditRepo}
}

// List returns the audit trail, newest first. Administrators only.
func (h *auditHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := audit.Filter{}

	if userID := r.URL.Query().Get("user_id"); userID != "" {
		filter.UserID = &userID
	}
	if action := r.URL.Query().Get("action"); action != "" {
		filter.Action = &action
	}

	filter.Page = 1
	if p := r.URL.Query().Get("page"); p != "" {
		if pageNum, err := strconv.Atoi(p); err == nil && pageNum > 0 {
			filter.Page = pageNum
		}
	}
	filter.Limit = 50
	if l := r.URL.Query().Get("limit"); l != "" {
		if limitNum, err := strconv.Atoi(l); err == nil && limitNum > 0 && limitNum <= 200 {
			filter.Limit = limitNum
		}
	}

	entries, total, err := h.auditRepo.List(r.Context(), filter)
	if err != nil {
		slog.Error("List audit entries error", "error", err)
		response.HandleError(w, err)
		return
	}

	responses := make([]audit.EntryResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, audit.ToResponse(e))
	}

	response.SuccessWithMeta(w, responses, response.NewMeta(filter.Page, filter.Limit, total))
}
