package models

import "time"

const (
	ApplicationStatusPending  = "pending"
	ApplicationStatusRejected = "rejected"
)

// ArtistApplication is a request to become an artist. Rejected applications
// are stored keyed by the applicant's user id.
type ArtistApplication struct {
	ID              string     `json:"id" bson:"_id"`
	UserID          string     `json:"user_id" bson:"user_id"`
	Nickname        string     `json:"nickname" bson:"nickname"`
	ProfileImageURL string     `json:"profile_image_url" bson:"profile_image_url"`
	Introduction    string     `json:"introduction" bson:"introduction"`
	MusicURLs       []string   `json:"music_urls" bson:"music_urls"`
	CreatedAt       time.Time  `json:"created_at" bson:"created_at"`
	Status          string     `json:"status,omitempty" bson:"status,omitempty"`
	RejectedAt      *time.Time `json:"rejected_at,omitempty" bson:"rejected_at,omitempty"`
	CanReapplyAfter *time.Time `json:"can_reapply_after,omitempty" bson:"can_reapply_after,omitempty"`
}
