package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/corehr/hr-backend-go/internal/domain/user"
	"github.com/corehr/hr-backend-go/internal/handler/http/middleware"
	"github.com/corehr/hr-backend-go/internal/handler/http/response"
)

type UserHandler interface {
	CreateUser(w http.ResponseWriter, r *http.Request)
	GetUser(w http.ResponseWriter, r *http.Request)
	GetMe(w http.ResponseWriter, r *http.Request)
	ListUsers(w http.ResponseWriter, r *http.Request)
	UpdateUser(w http.ResponseWriter, r *http.Request)
	DeactivateUser(w http.ResponseWriter, r *http.Request)

	CreateRole(w http.ResponseWriter, r *http.Request)
	ListRoles(w http.ResponseWriter, r *http.Request)
	UpdateRole(w http.ResponseWriter, r *http.Request)
	DeleteRole(w http.ResponseWriter, r *http.Request)
}

type UserHandlerImpl struct {
	userService user.UserService
}

func NewUserHandler(userService user.UserService) UserHandler {
	return &UserHandlerImpl{userService: userService}
}

// CreateUser implements UserHandler.
func (h *UserHandlerImpl) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req user.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.userService.CreateUser(r.Context(), req)
	if err != nil {
		slog.Error("CreateUser service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "User created successfully", created)
}

// GetUser implements UserHandler.
func (h *UserHandlerImpl) GetUser(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.Principal(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	resp, err := h.userService.GetUser(r.Context(), principal, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// GetMe implements UserHandler.
func (h *UserHandlerImpl) GetMe(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.Principal(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := h.userService.GetUser(r.Context(), principal, principal.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// ListUsers implements UserHandler.
func (h *UserHandlerImpl) ListUsers(w http.ResponseWriter, r *http.Request) {
	filter := user.ListUsersFilter{}

	if search := r.URL.Query().Get("search"); search != "" {
		filter.Search = &search
	}
	if roleID := r.URL.Query().Get("role_id"); roleID != "" {
		filter.RoleID = &roleID
	}
	if active := r.URL.Query().Get("is_active"); active != "" {
		if parsed, err := strconv.ParseBool(active); err == nil {
			filter.IsActive = &parsed
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
	filter.SortBy = r.URL.Query().Get("sort_by")
	filter.SortOrder = r.URL.Query().Get("sort_order")

	users, total, err := h.userService.ListUsers(r.Context(), filter)
	if err != nil {
		slog.Error("ListUsers service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, users, response.NewMeta(filter.Page, filter.Limit, total))
}

// UpdateUser implements UserHandler.
func (h *UserHandlerImpl) UpdateUser(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.Principal(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req user.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	updated, err := h.userService.UpdateUser(r.Context(), principal, req)
	if err != nil {
		slog.Error("UpdateUser service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "User updated successfully", updated)
}

// DeactivateUser implements UserHandler.
func (h *UserHandlerImpl) DeactivateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.userService.DeactivateUser(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "User deactivated successfully", nil)
}

// CreateRole implements UserHandler.
func (h *UserHandlerImpl) CreateRole(w http.ResponseWriter, r *http.Request) {
	var req user.CreateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	role, err := h.userService.CreateRole(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Role created successfully", role)
}

// ListRoles implements UserHandler.
func (h *UserHandlerImpl) ListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.userService.ListRoles(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, roles)
}

// UpdateRole implements UserHandler.
func (h *UserHandlerImpl) UpdateRole(w http.ResponseWriter, r *http.Request) {
	var role user.Role
	if err := json.NewDecoder(r.Body).Decode(&role); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	role.ID = chi.URLParam(r, "id")

	if err := h.userService.UpdateRole(r.Context(), role); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Role updated successfully", role)
}

// DeleteRole implements UserHandler.
func (h *UserHandlerImpl) DeleteRole(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.userService.DeleteRole(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Role deleted successfully", nil)
}
