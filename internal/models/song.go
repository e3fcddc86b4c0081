package models

import "strings"

type SongStatus string

const (
	SongPending  SongStatus = "pending"
	SongApproved SongStatus = "approved"
	SongPaused   SongStatus = "paused"
	SongDeleted  SongStatus = "deleted"
)

func (s SongStatus) Valid() bool {
	switch s {
	case SongPending, SongApproved, SongPaused, SongDeleted:
		return true
	}
	return false
}

type Song struct {
	ID        string `json:"id" bson:"_id"`
	UserID    string `json:"user_id" bson:"user_id"`
	Title     string `json:"title" bson:"title"`
	Nickname  string `json:"nickname" bson:"nickname"`
	AudioURL  string `json:"audio_url" bson:"audio_url"`
	ImageURL  string `json:"image_url" bson:"image_url"`
	Genre     string `json:"genre,omitempty" bson:"genre,omitempty"`
	LikeCount int    `json:"like_count" bson:"like_count"`
	IsPending bool   `json:"is_pending" bson:"is_pending"`
	IsVisible bool   `json:"is_visible" bson:"is_visible"`
	IsDeleted bool   `json:"is_deleted" bson:"is_deleted"`
}

// Status derives the lifecycle state from the stored flags.
func (s *Song) Status() SongStatus {
	switch {
	case s.IsDeleted:
		return SongDeleted
	case s.IsPending:
		return SongPending
	case s.IsVisible:
		return SongApproved
	default:
		return SongPaused
	}
}

// Flags returns the stored flag set for a status.
func (s SongStatus) Flags() (pending, visible, deleted bool) {
	switch s {
	case SongPending:
		return true, false, false
	case SongApproved:
		return false, true, false
	case SongPaused:
		return false, false, false
	default:
		return false, false, true
	}
}

func (s *Song) Matches(genre, search string) bool {
	if genre != "" && genre != "all" && s.Genre != genre {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(search))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s.Title), q) ||
		strings.Contains(strings.ToLower(s.Nickname), q)
}
