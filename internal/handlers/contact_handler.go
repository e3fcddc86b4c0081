package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/nada/admin/internal/middleware"
	"github.com/nada/admin/internal/models"
	"github.com/nada/admin/internal/services"
)

type ContactHandler struct {
	contact *services.ContactService
}

func NewContactHandler(contact *services.ContactService) *ContactHandler {
	return &ContactHandler{contact: contact}
}

// List handles GET /contact?all=true
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	all, _ := strconv.ParseBool(r.URL.Query().Get("all"))
	msgs, err := h.contact.List(r.Context(), all)
	if err != nil {
		writeServiceError(w, "ListContact", "Failed to list messages", err)
		return
	}
	writeJSON(w, http.StatusOK, models.NewListResponse(msgs, len(msgs)))
}

func (h *ContactHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	err := h.contact.Resolve(r.Context(), chi.URLParam(r, "messageId"), middleware.GetUserID(r.Context()))
	if err != nil {
		writeServiceError(w, "ResolveContact", "Failed to resolve message", err)
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(nil))
}

func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.contact.Delete(r.Context(), chi.URLParam(r, "messageId")); err != nil {
		writeServiceError(w, "DeleteContact", "Failed to delete message", err)
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(nil))
}
