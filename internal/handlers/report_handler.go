package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nada/admin/internal/middleware"
	"github.com/nada/admin/internal/models"
	"github.com/nada/admin/internal/services"
)

type ReportHandler struct {
	moderation *services.ModerationService
}

func NewReportHandler(moderation *services.ModerationService) *ReportHandler {
	return &ReportHandler{moderation: moderation}
}

// contentTypeParam treats "all" and an empty value as no filter.
func contentTypeParam(r *http.Request, key string) models.ContentType {
	v := r.URL.Query().Get(key)
	if v == "all" {
		return ""
	}
	return models.ContentType(v)
}

// List handles GET /reports?type=
func (h *ReportHandler) List(w http.ResponseWriter, r *http.Request) {
	views, err := h.moderation.ListReports(r.Context(), contentTypeParam(r, "type"))
	if err != nil {
		writeServiceError(w, "ListReports", "Failed to list reports", err)
		return
	}
	writeJSON(w, http.StatusOK, models.NewListResponse(views, len(views)))
}

func (h *ReportHandler) Innocent(w http.ResponseWriter, r *http.Request) {
	if err := h.moderation.Innocent(r.Context(), chi.URLParam(r, "reportId")); err != nil {
		writeServiceError(w, "Innocent", "Failed to dismiss report", err)
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(nil))
}

func (h *ReportHandler) Guilty(w http.ResponseWriter, r *http.Request) {
	var req models.VerdictRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Duration == "" {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(map[string]string{
			"duration": "Duration is required",
		}))
		return
	}

	ctx, cancel := contextWithTimeout(r.Context(), requestTimeout)
	defer cancel()

	guilty, err := h.moderation.Guilty(ctx, chi.URLParam(r, "reportId"), req.Duration, middleware.GetUserID(r.Context()))
	if err != nil {
		writeServiceError(w, "Guilty", "Failed to apply verdict", err)
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(guilty))
}

// ListGuilty handles GET /reports/guilty?filter=&q=
func (h *ReportHandler) ListGuilty(w http.ResponseWriter, r *http.Request) {
	resp, err := h.moderation.ListGuilty(r.Context(), contentTypeParam(r, "filter"), r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(w, "ListGuilty", "Failed to list guilty reports", err)
		return
	}
	writeJSON(w, http.StatusOK, models.NewListResponse(resp, len(resp.Reports)))
}

func (h *ReportHandler) DeleteGuilty(w http.ResponseWriter, r *http.Request) {
	if err := h.moderation.DeleteGuilty(r.Context(), chi.URLParam(r, "reportId")); err != nil {
		writeServiceError(w, "DeleteGuilty", "Failed to delete guilty report", err)
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(nil))
}
