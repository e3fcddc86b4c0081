package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nada/admin/internal/models"
	"github.com/nada/admin/internal/services"
)

type ApplicationHandler struct {
	apps *services.ApplicationService
}

func NewApplicationHandler(apps *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{apps: apps}
}

func rejectedTab(r *http.Request) bool {
	return r.URL.Query().Get("tab") == models.ApplicationStatusRejected
}

// List handles GET /applications?tab=pending|rejected
func (h *ApplicationHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		apps []models.ArtistApplication
		err  error
	)
	if rejectedTab(r) {
		apps, err = h.apps.ListRejected(r.Context())
	} else {
		apps, err = h.apps.ListPending(r.Context())
	}
	if err != nil {
		writeServiceError(w, "ListApplications", "Failed to list applications", err)
		return
	}
	writeJSON(w, http.StatusOK, models.NewListResponse(apps, len(apps)))
}

func (h *ApplicationHandler) Count(w http.ResponseWriter, r *http.Request) {
	n, err := h.apps.PendingCount(r.Context())
	if err != nil {
		writeServiceError(w, "CountApplications", "Failed to count applications", err)
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(map[string]int64{"pending": n}))
}

// Act handles POST /applications/{applicationId}/{action}.
func (h *ApplicationHandler) Act(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "applicationId")
	ctx, cancel := contextWithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var (
		data interface{}
		err  error
	)
	switch chi.URLParam(r, "action") {
	case "approve":
		err = h.apps.Approve(ctx, id)
	case "reject":
		err = h.apps.Reject(ctx, id)
	case "reapply":
		data, err = h.apps.Reapply(ctx, id)
	default:
		writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Unknown action"))
		return
	}
	if err != nil {
		writeServiceError(w, "ApplicationAction", "Failed to update application", err)
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(data))
}

// Delete handles DELETE /applications/{applicationId}?tab=
func (h *ApplicationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.apps.Delete(r.Context(), chi.URLParam(r, "applicationId"), rejectedTab(r)); err != nil {
		writeServiceError(w, "DeleteApplication", "Failed to delete application", err)
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(nil))
}
