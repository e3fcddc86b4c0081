package services

import (
	"context"
	"time"

	"github.com/nada/admin/internal/models"
)

// TxRunner runs fn atomically. Stores must use the ctx handed to fn.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type UserStore interface {
	GetUser(ctx context.Context, id string) (*models.UserAccount, error)
	FindByNickname(ctx context.Context, nickname string) (*models.UserAccount, error)
	ListUsers(ctx context.Context) ([]models.UserAccount, error)
	ListSuspended(ctx context.Context) ([]models.UserAccount, error)
	CountFans(ctx context.Context, artistID string) (int64, error)

	// ApplySuspension records s and increments the suspension count.
	ApplySuspension(ctx context.Context, id string, s models.Suspension) error
	ClearSuspension(ctx context.Context, id string) error
	SetArtistLevel(ctx context.Context, id string, level models.ArtistLevel) error
	SetAdmin(ctx context.Context, id string, admin bool) error

	// AdjustNP adds delta to the balance, clamping at zero, and returns the
	// balance before and after.
	AdjustNP(ctx context.Context, id string, delta int64) (before, after int64, err error)

	PromoteToArtist(ctx context.Context, id string) error
	SetApplicationStatus(ctx context.Context, id string, status string, at *time.Time) error
}

type TransactionStore interface {
	InsertTransaction(ctx context.Context, rec models.TransactionRecord) error
	// ListForUser returns every record with the user as sender or receiver.
	ListForUser(ctx context.Context, userID string) ([]models.TransactionRecord, error)
}

type ReportStore interface {
	ListReports(ctx context.Context, typ models.ContentType) ([]models.ModerationReport, error)
	GetReport(ctx context.Context, id string) (*models.ModerationReport, error)
	CreateReport(ctx context.Context, r models.ModerationReport) error
	DeleteReport(ctx context.Context, id string) (bool, error)

	SaveGuilty(ctx context.Context, g models.GuiltyReport) error
	ListGuilty(ctx context.Context) ([]models.GuiltyReport, error)
	DeleteGuilty(ctx context.Context, id string) (bool, error)
}

// ContentStore resolves posts and comments referenced by reports.
type ContentStore interface {
	// FindContent returns nil without error when the content is gone.
	FindContent(ctx context.Context, r *models.ModerationReport) (*models.ContentPreview, error)
	DeleteContent(ctx context.Context, r *models.ModerationReport) (bool, error)
}

type SongStore interface {
	GetSong(ctx context.Context, id string) (*models.Song, error)
	ListSongs(ctx context.Context, status models.SongStatus) ([]models.Song, error)
	SetSongStatus(ctx context.Context, id string, status models.SongStatus) error
	DeleteSong(ctx context.Context, id string) error
}

type ApplicationStore interface {
	ListPending(ctx context.Context) ([]models.ArtistApplication, error)
	ListRejected(ctx context.Context) ([]models.ArtistApplication, error)
	CountPending(ctx context.Context) (int64, error)
	GetPending(ctx context.Context, id string) (*models.ArtistApplication, error)
	GetRejected(ctx context.Context, userID string) (*models.ArtistApplication, error)
	SavePending(ctx context.Context, a models.ArtistApplication) error
	SaveRejected(ctx context.Context, a models.ArtistApplication) error
	DeletePending(ctx context.Context, id string) (bool, error)
	DeleteRejected(ctx context.Context, userID string) (bool, error)
}

type ContactStore interface {
	ListMessages(ctx context.Context, includeResolved bool) ([]models.ContactMessage, error)
	ResolveMessage(ctx context.Context, id, adminID string, at time.Time) (bool, error)
	DeleteMessage(ctx context.Context, id string) (bool, error)
}

type NotificationStore interface {
	InsertNotification(ctx context.Context, n models.Notification) error
}

// Notifier delivers a message to a user without blocking the caller.
type Notifier interface {
	Notify(userID, message string)
}

type BlobStore interface {
	Delete(ctx context.Context, path string) error
}

// ClaimsSetter mirrors the admin role into the auth provider.
type ClaimsSetter interface {
	SetAdminClaim(ctx context.Context, uid string, admin bool) error
}
