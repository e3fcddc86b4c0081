package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nada/admin/internal/models"
	"github.com/nada/admin/internal/services"
)

type SongHandler struct {
	songs *services.SongService
}

func NewSongHandler(songs *services.SongService) *SongHandler {
	return &SongHandler{songs: songs}
}

// List handles GET /songs?status=&genre=&q=
func (h *SongHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	status := models.SongStatus(q.Get("status"))
	if status == "all" {
		status = ""
	}
	songs, err := h.songs.List(r.Context(), status, q.Get("genre"), q.Get("q"))
	if err != nil {
		writeServiceError(w, "ListSongs", "Failed to list songs", err)
		return
	}
	writeJSON(w, http.StatusOK, models.NewListResponse(songs, len(songs)))
}

// Transition handles POST /songs/{songId}/{action}.
func (h *SongHandler) Transition(w http.ResponseWriter, r *http.Request) {
	action := services.SongAction(chi.URLParam(r, "action"))
	song, err := h.songs.Apply(r.Context(), chi.URLParam(r, "songId"), action)
	if err != nil {
		writeServiceError(w, "SongAction", "Failed to update song", err)
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(song))
}

func (h *SongHandler) Purge(w http.ResponseWriter, r *http.Request) {
	if err := h.songs.Purge(r.Context(), chi.URLParam(r, "songId")); err != nil {
		writeServiceError(w, "PurgeSong", "Failed to purge song", err)
		return
	}
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(nil))
}
