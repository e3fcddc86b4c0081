package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nada/admin/internal/middleware"
	"github.com/nada/admin/internal/models"
	"github.com/nada/admin/internal/services"
)

type UserHandler struct {
	users *services.UserAdminService
}

func NewUserHandler(users *services.UserAdminService) *UserHandler {
	return &UserHandler{users: users}
}

// List handles GET /users?filter=&level=&q=
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	resp, err := h.users.List(r.Context(), q.Get("filter"), models.ArtistLevel(q.Get("level")), q.Get("q"))
	if err != nil {
		writeServiceError(w, "ListUsers", "Failed to list users", err)
		return
	}
	writeJSON(w, http.StatusOK, models.NewListResponse(resp, len(resp.Users)))
}

func (h *UserHandler) ListSuspended(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListSuspended(r.Context())
	if err != nil {
		writeServiceError(w, "ListSuspended", "Failed to list suspended users", err)
		return
	}
	writeJSON(w, http.StatusOK, models.NewListResponse(users, len(users)))
}

func (h *UserHandler) Suspend(w http.ResponseWriter, r *http.Request) {
	var req models.SuspendRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Duration == "" {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(map[string]string{
			"duration": "Duration is required",
		}))
		return
	}
	user, err := h.users.Suspend(r.Context(), chi.URLParam(r, "userId"), req.Duration)
	if err != nil {
		writeServiceError(w, "SuspendUser", "Failed to suspend user", err)
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(user))
}

func (h *UserHandler) Ban(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.BanPermanently(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		writeServiceError(w, "BanUser", "Failed to ban user", err)
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(user))
}

func (h *UserHandler) Unban(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.Unban(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		writeServiceError(w, "UnbanUser", "Failed to unban user", err)
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(user))
}

func (h *UserHandler) SetArtistLevel(w http.ResponseWriter, r *http.Request) {
	var req models.ArtistLevelRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	user, err := h.users.SetArtistLevel(r.Context(), chi.URLParam(r, "userId"), req.Level)
	if err != nil {
		writeServiceError(w, "SetArtistLevel", "Failed to set artist level", err)
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(user))
}

func (h *UserHandler) SetAdmin(w http.ResponseWriter, r *http.Request) {
	var req models.AdminRoleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	actorID := middleware.GetUserID(r.Context())
	user, err := h.users.SetAdmin(r.Context(), actorID, chi.URLParam(r, "userId"), req.Admin)
	if err != nil {
		writeServiceError(w, "SetAdmin", "Failed to change admin role", err)
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(user))
}
