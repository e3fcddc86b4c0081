package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/nada/admin/internal/models"
)

const reapplyCooldown = 24 * time.Hour

// ApplicationService reviews requests to become an artist.
type ApplicationService struct {
	apps     ApplicationStore
	users    UserStore
	blobs    BlobStore
	tx       TxRunner
	notifier Notifier
	now      func() time.Time
}

func NewApplicationService(apps ApplicationStore, users UserStore, blobs BlobStore, tx TxRunner, notifier Notifier) *ApplicationService {
	return &ApplicationService{apps: apps, users: users, blobs: blobs, tx: tx, notifier: notifier, now: time.Now}
}

// ListPending returns pending applications, newest first.
func (s *ApplicationService) ListPending(ctx context.Context) ([]models.ArtistApplication, error) {
	apps, err := s.apps.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(apps, func(i, j int) bool { return apps[i].CreatedAt.After(apps[j].CreatedAt) })
	return apps, nil
}

func (s *ApplicationService) ListRejected(ctx context.Context) ([]models.ArtistApplication, error) {
	return s.apps.ListRejected(ctx)
}

func (s *ApplicationService) PendingCount(ctx context.Context) (int64, error) {
	return s.apps.CountPending(ctx)
}

// Approve promotes the applicant to a rookie artist and discards the
// application along with its demo uploads.
func (s *ApplicationService) Approve(ctx context.Context, id string) error {
	app, err := s.apps.GetPending(ctx, id)
	if err != nil {
		return err
	}
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.users.PromoteToArtist(ctx, app.UserID); err != nil {
			return err
		}
		deleted, err := s.apps.DeletePending(ctx, app.ID)
		if err != nil {
			return err
		}
		if !deleted {
			return ErrApplicationNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("[applications] approve id=%s user=%s", app.ID, app.UserID)
	s.notify(app.UserID, "Your artist application has been approved!")
	deleteBlobs(ctx, s.blobs, app.MusicURLs)
	return nil
}

// Reject archives the application under the applicant's id. The applicant
// may reapply once the cooldown has passed.
func (s *ApplicationService) Reject(ctx context.Context, id string) error {
	app, err := s.apps.GetPending(ctx, id)
	if err != nil {
		return err
	}
	now := s.now().UTC()
	canReapply := now.Add(reapplyCooldown)

	rejected := *app
	rejected.ID = app.UserID
	rejected.Status = models.ApplicationStatusRejected
	rejected.RejectedAt = &now
	rejected.CanReapplyAfter = &canReapply

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.apps.SaveRejected(ctx, rejected); err != nil {
			return err
		}
		if err := s.users.SetApplicationStatus(ctx, app.UserID, models.ApplicationStatusRejected, &now); err != nil {
			return err
		}
		deleted, err := s.apps.DeletePending(ctx, app.ID)
		if err != nil {
			return err
		}
		if !deleted {
			return ErrApplicationNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("[applications] reject id=%s user=%s", app.ID, app.UserID)
	s.notify(app.UserID, "Your artist application was not approved.")
	deleteBlobs(ctx, s.blobs, app.MusicURLs)
	return nil
}

// Reapply moves a rejected application back to the pending queue.
func (s *ApplicationService) Reapply(ctx context.Context, userID string) (*models.ArtistApplication, error) {
	rejected, err := s.apps.GetRejected(ctx, userID)
	if err != nil {
		return nil, err
	}
	if rejected.CanReapplyAfter != nil && s.now().Before(*rejected.CanReapplyAfter) {
		return nil, fmt.Errorf("%w: until %s", ErrReapplyTooSoon, rejected.CanReapplyAfter.UTC().Format(time.RFC3339))
	}
	pending := models.ArtistApplication{
		ID:              rejected.UserID,
		UserID:          rejected.UserID,
		Nickname:        rejected.Nickname,
		ProfileImageURL: rejected.ProfileImageURL,
		Introduction:    rejected.Introduction,
		MusicURLs:       rejected.MusicURLs,
		CreatedAt:       s.now().UTC(),
		Status:          models.ApplicationStatusPending,
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		deleted, err := s.apps.DeleteRejected(ctx, userID)
		if err != nil {
			return err
		}
		if !deleted {
			return ErrApplicationNotFound
		}
		if err := s.apps.SavePending(ctx, pending); err != nil {
			return err
		}
		return s.users.SetApplicationStatus(ctx, userID, models.ApplicationStatusPending, nil)
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[applications] reapply user=%s", userID)
	return &pending, nil
}

// Delete drops an application record and its uploads without touching the
// applicant's account.
func (s *ApplicationService) Delete(ctx context.Context, id string, rejected bool) error {
	var (
		app *models.ArtistApplication
		err error
	)
	if rejected {
		app, err = s.apps.GetRejected(ctx, id)
	} else {
		app, err = s.apps.GetPending(ctx, id)
	}
	if err != nil {
		return err
	}

	var deleted bool
	if rejected {
		deleted, err = s.apps.DeleteRejected(ctx, id)
	} else {
		deleted, err = s.apps.DeletePending(ctx, id)
	}
	if err != nil {
		return err
	}
	if !deleted {
		return ErrApplicationNotFound
	}
	log.Printf("[applications] delete id=%s rejected=%v", id, rejected)
	deleteBlobs(ctx, s.blobs, app.MusicURLs)
	return nil
}

func (s *ApplicationService) notify(userID, msg string) {
	if s.notifier != nil {
		s.notifier.Notify(userID, msg)
	}
}
