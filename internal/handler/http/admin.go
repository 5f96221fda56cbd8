package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/workstead/hr-backend-go/internal/domain/user"
	"github.com/workstead/hr-backend-go/internal/handler/http/middleware"
	"github.com/workstead/hr-backend-go/internal/handler/http/response"
)

type AdminHandler interface {
	ListUsers(w http.ResponseWriter, r *http.Request)
	GetUser(w http.ResponseWriter, r *http.Request)
	ActivateUser(w http.ResponseWriter, r *http.Request)
	DeactivateUser(w http.ResponseWriter, r *http.Request)
	AssignRole(w http.ResponseWriter, r *http.Request)
	UnassignRole(w http.ResponseWriter, r *http.Request)
	ListRoles(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, r *http.Request)
}

type AdminHandlerImpl struct {
	userService user.UserService
}

func NewAdminHandler(userService user.UserService) AdminHandler {
	return &AdminHandlerImpl{userService: userService}
}

// ListUsers implements AdminHandler.
func (a *AdminHandlerImpl) ListUsers(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	users, err := a.userService.List(r.Context(), page, limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, users.Users, &response.Meta{
		Page:       users.Page,
		Limit:      users.Limit,
		TotalItems: users.TotalCount,
		TotalPages: totalPages(users.TotalCount, users.Limit),
	})
}

// GetUser implements AdminHandler.
func (a *AdminHandlerImpl) GetUser(w http.ResponseWriter, r *http.Request) {
	userData, err := a.userService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, userData)
}

// ActivateUser implements AdminHandler.
func (a *AdminHandlerImpl) ActivateUser(w http.ResponseWriter, r *http.Request) {
	if err := a.userService.SetActive(r.Context(), chi.URLParam(r, "id"), true); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "User activated", nil)
}

// DeactivateUser implements AdminHandler.
func (a *AdminHandlerImpl) DeactivateUser(w http.ResponseWriter, r *http.Request) {
	if err := a.userService.SetActive(r.Context(), chi.URLParam(r, "id"), false); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "User deactivated", nil)
}

// AssignRole implements AdminHandler.
func (a *AdminHandlerImpl) AssignRole(w http.ResponseWriter, r *http.Request) {
	var req user.AssignRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("AssignRole decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	err := a.userService.AssignRole(r.Context(), chi.URLParam(r, "id"), req, middleware.UserID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Role assigned", nil)
}

// UnassignRole implements AdminHandler.
func (a *AdminHandlerImpl) UnassignRole(w http.ResponseWriter, r *http.Request) {
	err := a.userService.UnassignRole(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "role"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Role removed", nil)
}

// ListRoles implements AdminHandler.
func (a *AdminHandlerImpl) ListRoles(w http.ResponseWriter, r *http.Request) {
	response.Success(w, a.userService.Roles(r.Context()))
}

// Stats implements AdminHandler.
func (a *AdminHandlerImpl) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := a.userService.Stats(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, stats)
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	return pages
}
