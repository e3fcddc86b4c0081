package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/nada/admin/internal/models"
	"github.com/nada/admin/internal/services"
)

const requestTimeout = 15 * time.Second

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func contextWithTimeout(parent context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, d)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return false
	}
	return true
}

var (
	notFoundErrors = []error{
		services.ErrUserNotFound,
		services.ErrReportNotFound,
		services.ErrGuiltyReportNotFound,
		services.ErrSongNotFound,
		services.ErrApplicationNotFound,
		services.ErrContactNotFound,
	}
	conflictErrors = []error{
		services.ErrReportAlreadyProcessed,
		services.ErrInvalidTransition,
		services.ErrInsufficientNP,
		services.ErrReapplyTooSoon,
	}
	badRequestErrors = []error{
		services.ErrInvalidReport,
		services.ErrInvalidDuration,
		services.ErrInvalidAmount,
		services.ErrInvalidLevel,
		services.ErrInvalidStatus,
		services.ErrNotArtist,
	}
	forbiddenErrors = []error{
		services.ErrForbidden,
		services.ErrSelfDemotion,
	}
)

func matchesAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

// writeServiceError maps service errors to a status. Anything unrecognized
// is logged under tag and answered with failMsg.
func writeServiceError(w http.ResponseWriter, tag, failMsg string, err error) {
	switch {
	case matchesAny(err, notFoundErrors):
		writeJSON(w, http.StatusNotFound, models.NewErrorResponse(err.Error()))
	case matchesAny(err, conflictErrors):
		writeJSON(w, http.StatusConflict, models.NewErrorResponse(err.Error()))
	case matchesAny(err, badRequestErrors):
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse(err.Error()))
	case matchesAny(err, forbiddenErrors):
		writeJSON(w, http.StatusForbidden, models.NewErrorResponse(err.Error()))
	default:
		log.Printf("[%s] error: %v", tag, err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse(failMsg))
	}
}
