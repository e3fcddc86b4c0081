package models

import (
	"strings"
	"time"
)

type ArtistLevel string

const (
	ArtistLevelRookie  ArtistLevel = "rookie"
	ArtistLevelAmateur ArtistLevel = "amateur"
	ArtistLevelPro     ArtistLevel = "pro"
)

func (l ArtistLevel) Valid() bool {
	switch l {
	case ArtistLevelRookie, ArtistLevelAmateur, ArtistLevelPro:
		return true
	}
	return false
}

// UserStatus is the suspension state as seen by an admin at a given instant.
type UserStatus string

const (
	UserStatusNormal    UserStatus = "normal"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusExpired   UserStatus = "expired"
	UserStatusBanned    UserStatus = "banned"
)

// UserAccount is the platform user document, keyed by Firebase UID.
type UserAccount struct {
	ID                      string      `json:"id" bson:"_id"`
	Email                   string      `json:"email" bson:"email,omitempty"`
	Nickname                string      `json:"nickname" bson:"nickname,omitempty"`
	ProfileImageURL         string      `json:"profile_image_url,omitempty" bson:"profile_image_url,omitempty"`
	NP                      int64       `json:"np" bson:"np"`
	IsArtist                bool        `json:"is_artist" bson:"is_artist"`
	ArtistLevel             ArtistLevel `json:"artist_level,omitempty" bson:"artist_level,omitempty"`
	IsAdmin                 bool        `json:"is_admin" bson:"is_admin"`
	SuspendedUntil          *time.Time  `json:"suspended_until,omitempty" bson:"suspended_until,omitempty"`
	IsPermanentlyBanned     bool        `json:"is_permanently_banned" bson:"is_permanently_banned"`
	SuspensionCount         int         `json:"suspension_count" bson:"suspension_count"`
	ArtistApplicationStatus string      `json:"artist_application_status,omitempty" bson:"artist_application_status,omitempty"`
	RejectedAt              *time.Time  `json:"rejected_at,omitempty" bson:"rejected_at,omitempty"`
}

// HasSuspension reports whether any suspension state is recorded, expired or not.
func (u *UserAccount) HasSuspension() bool {
	return u.IsPermanentlyBanned || u.SuspendedUntil != nil
}

// StatusAt derives the suspension status at now. A timed suspension whose
// expiry has passed reads as expired; the stored record is left untouched.
func (u *UserAccount) StatusAt(now time.Time) UserStatus {
	if u.IsPermanentlyBanned {
		return UserStatusBanned
	}
	if u.SuspendedUntil != nil {
		if now.Before(*u.SuspendedUntil) {
			return UserStatusSuspended
		}
		return UserStatusExpired
	}
	return UserStatusNormal
}

// EffectiveArtistLevel defaults artists without a stored tier to rookie.
func (u *UserAccount) EffectiveArtistLevel() ArtistLevel {
	if !u.IsArtist {
		return ""
	}
	if u.ArtistLevel == "" {
		return ArtistLevelRookie
	}
	return u.ArtistLevel
}

// Matches does a case-insensitive substring search over nickname and email.
func (u *UserAccount) Matches(search string) bool {
	q := strings.ToLower(strings.TrimSpace(search))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(u.Nickname), q) ||
		strings.Contains(strings.ToLower(u.Email), q)
}

// Suspension is the state applied to an account by an admin action.
// A zero Until with Permanent false means no suspension.
type Suspension struct {
	Until     time.Time `json:"until,omitempty" bson:"until,omitempty"`
	Permanent bool      `json:"permanent" bson:"permanent"`
}

// UserSummary is a user row in the admin users screen.
type UserSummary struct {
	UserAccount `bson:",inline"`
	Status      UserStatus `json:"status"`
	FanCount    *int64     `json:"fan_count,omitempty"`
}

type UserCounts struct {
	All       int                 `json:"all"`
	Users     int                 `json:"users"`
	Artists   int                 `json:"artists"`
	Suspended int                 `json:"suspended"`
	ByLevel   map[ArtistLevel]int `json:"by_level"`
}

type UserListResponse struct {
	Users  []UserSummary `json:"users"`
	Counts UserCounts    `json:"counts"`
}

type SuspendRequest struct {
	Duration string `json:"duration"`
}

type ArtistLevelRequest struct {
	Level ArtistLevel `json:"level"`
}

type AdminRoleRequest struct {
	Admin bool `json:"admin"`
}
