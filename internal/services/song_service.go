package services

import (
	"context"
	"fmt"
	"log"

	"github.com/nada/admin/internal/models"
)

type SongAction string

const (
	SongApprove SongAction = "approve"
	SongReject  SongAction = "reject"
	SongPause   SongAction = "pause"
	SongDelete  SongAction = "delete"
	SongRestore SongAction = "restore"
)

type songTransition struct {
	from    []models.SongStatus
	to      models.SongStatus
	message string
}

var songTransitions = map[SongAction]songTransition{
	SongApprove: {from: []models.SongStatus{models.SongPending, models.SongPaused}, to: models.SongApproved, message: "Your song \"%s\" is now live."},
	SongReject:  {from: []models.SongStatus{models.SongPending}, to: models.SongDeleted, message: "Your song \"%s\" was not approved."},
	SongPause:   {from: []models.SongStatus{models.SongApproved}, to: models.SongPaused, message: "Your song \"%s\" has been paused."},
	SongDelete:  {from: []models.SongStatus{models.SongApproved, models.SongPaused}, to: models.SongDeleted, message: "Your song \"%s\" has been removed."},
	SongRestore: {from: []models.SongStatus{models.SongDeleted}, to: models.SongApproved, message: "Your song \"%s\" has been restored."},
}

// SongService moves uploaded songs through review and visibility states.
type SongService struct {
	songs    SongStore
	blobs    BlobStore
	notifier Notifier
}

func NewSongService(songs SongStore, blobs BlobStore, notifier Notifier) *SongService {
	return &SongService{songs: songs, blobs: blobs, notifier: notifier}
}

// List returns songs in status (every song when empty) filtered by genre and
// a title or nickname search.
func (s *SongService) List(ctx context.Context, status models.SongStatus, genre, search string) ([]models.Song, error) {
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	songs, err := s.songs.ListSongs(ctx, status)
	if err != nil {
		return nil, err
	}
	out := make([]models.Song, 0, len(songs))
	for i := range songs {
		if songs[i].Matches(genre, search) {
			out = append(out, songs[i])
		}
	}
	return out, nil
}

// Apply runs a visibility transition and notifies the owner. Notification
// failures never undo the transition.
func (s *SongService) Apply(ctx context.Context, songID string, action SongAction) (*models.Song, error) {
	t, ok := songTransitions[action]
	if !ok {
		return nil, fmt.Errorf("%w: unknown action %q", ErrInvalidTransition, action)
	}
	song, err := s.songs.GetSong(ctx, songID)
	if err != nil {
		return nil, err
	}
	current := song.Status()
	if !statusIn(current, t.from) {
		return nil, fmt.Errorf("%w: cannot %s a %s song", ErrInvalidTransition, action, current)
	}
	if err := s.songs.SetSongStatus(ctx, songID, t.to); err != nil {
		return nil, err
	}

	song.IsPending, song.IsVisible, song.IsDeleted = t.to.Flags()
	log.Printf("[songs] %s song=%s %s->%s", action, songID, current, t.to)
	if s.notifier != nil {
		s.notifier.Notify(song.UserID, fmt.Sprintf(t.message, song.Title))
	}
	return song, nil
}

// Purge permanently removes a soft-deleted song and its audio and artwork.
func (s *SongService) Purge(ctx context.Context, songID string) error {
	song, err := s.songs.GetSong(ctx, songID)
	if err != nil {
		return err
	}
	if song.Status() != models.SongDeleted {
		return fmt.Errorf("%w: only deleted songs can be purged", ErrInvalidTransition)
	}
	if err := s.songs.DeleteSong(ctx, songID); err != nil {
		return err
	}
	deleteBlobs(ctx, s.blobs, []string{song.AudioURL, song.ImageURL})
	log.Printf("[songs] purge song=%s", songID)
	return nil
}

func statusIn(s models.SongStatus, set []models.SongStatus) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
