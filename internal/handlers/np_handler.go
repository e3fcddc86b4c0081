package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nada/admin/internal/middleware"
	"github.com/nada/admin/internal/models"
	"github.com/nada/admin/internal/services"
)

type NPHandler struct {
	np *services.NPService
}

func NewNPHandler(np *services.NPService) *NPHandler {
	return &NPHandler{np: np}
}

// FindUser handles GET /np/users?nickname=
func (h *NPHandler) FindUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.np.FindUserByNickname(r.Context(), r.URL.Query().Get("nickname"))
	if err != nil {
		writeServiceError(w, "FindNPUser", "Failed to find user", err)
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(user))
}

func (h *NPHandler) Ledger(w http.ResponseWriter, r *http.Request) {
	ledger, err := h.np.Ledger(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		writeServiceError(w, "Ledger", "Failed to load ledger", err)
		return
	}
	writeJSON(w, http.StatusOK, models.NewListResponse(ledger, len(ledger.Entries)))
}

func (h *NPHandler) Charge(w http.ResponseWriter, r *http.Request) {
	var req models.NPAdjustRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := h.np.Charge(r.Context(), chi.URLParam(r, "userId"), req.Amount, middleware.GetUserID(r.Context()))
	if err != nil {
		writeServiceError(w, "ChargeNP", "Failed to charge NP", err)
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(resp))
}

func (h *NPHandler) Deduct(w http.ResponseWriter, r *http.Request) {
	var req models.NPAdjustRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := h.np.Deduct(r.Context(), chi.URLParam(r, "userId"), req.Amount, middleware.GetUserID(r.Context()))
	if err != nil {
		writeServiceError(w, "DeductNP", "Failed to deduct NP", err)
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(resp))
}
