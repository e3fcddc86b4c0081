package services

import (
	"context"
	"log"
	"time"

	"github.com/nada/admin/internal/models"
)

const (
	UserFilterAll       = "all"
	UserFilterUser      = "user"
	UserFilterArtist    = "artist"
	UserFilterSuspended = "suspended"
)

// UserAdminService changes account state on behalf of an admin.
type UserAdminService struct {
	users  UserStore
	claims ClaimsSetter
	now    func() time.Time
}

// NewUserAdminService builds the service; claims may be nil when the auth
// provider is not configured.
func NewUserAdminService(users UserStore, claims ClaimsSetter) *UserAdminService {
	return &UserAdminService{users: users, claims: claims, now: time.Now}
}

// IsAdmin reports whether the stored account carries the admin role.
func (s *UserAdminService) IsAdmin(ctx context.Context, userID string) (bool, error) {
	u, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return false, err
	}
	return u.IsAdmin, nil
}

func (s *UserAdminService) List(ctx context.Context, filter string, level models.ArtistLevel, search string) (*models.UserListResponse, error) {
	all, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	counts := models.UserCounts{All: len(all), ByLevel: map[models.ArtistLevel]int{}}
	for i := range all {
		u := &all[i]
		if u.IsArtist {
			counts.Artists++
			counts.ByLevel[u.EffectiveArtistLevel()]++
		} else {
			counts.Users++
		}
		if u.HasSuspension() {
			counts.Suspended++
		}
	}

	now := s.now()
	out := make([]models.UserSummary, 0)
	for i := range all {
		u := &all[i]
		if !matchesUserFilter(u, filter) || !u.Matches(search) {
			continue
		}
		if level != "" && level != "all" && (!u.IsArtist || u.EffectiveArtistLevel() != level) {
			continue
		}
		out = append(out, s.summarize(ctx, u, now))
	}
	return &models.UserListResponse{Users: out, Counts: counts}, nil
}

func matchesUserFilter(u *models.UserAccount, filter string) bool {
	switch filter {
	case "", UserFilterAll:
		return true
	case UserFilterUser:
		return !u.IsArtist
	case UserFilterArtist:
		return u.IsArtist
	case UserFilterSuspended:
		return u.HasSuspension()
	}
	return false
}

func (s *UserAdminService) summarize(ctx context.Context, u *models.UserAccount, now time.Time) models.UserSummary {
	sum := models.UserSummary{UserAccount: *u, Status: u.StatusAt(now)}
	if u.IsArtist {
		if n, err := s.users.CountFans(ctx, u.ID); err != nil {
			log.Printf("[users] fan count user=%s failed: %v", u.ID, err)
		} else {
			sum.FanCount = &n
		}
	}
	return sum
}

func (s *UserAdminService) Get(ctx context.Context, userID string) (*models.UserSummary, error) {
	u, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	sum := s.summarize(ctx, u, s.now())
	return &sum, nil
}

// ListSuspended returns every account with a recorded suspension, including
// timed ones that have already expired.
func (s *UserAdminService) ListSuspended(ctx context.Context) ([]models.UserSummary, error) {
	users, err := s.users.ListSuspended(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	out := make([]models.UserSummary, 0, len(users))
	for i := range users {
		out = append(out, models.UserSummary{UserAccount: users[i], Status: users[i].StatusAt(now)})
	}
	return out, nil
}

func (s *UserAdminService) Suspend(ctx context.Context, userID, duration string) (*models.UserSummary, error) {
	suspension, err := ParseSuspension(duration, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.users.ApplySuspension(ctx, userID, suspension); err != nil {
		return nil, err
	}
	log.Printf("[users] suspend user=%s duration=%s", userID, duration)
	return s.Get(ctx, userID)
}

// Unban clears timed and permanent suspensions alike.
func (s *UserAdminService) Unban(ctx context.Context, userID string) (*models.UserSummary, error) {
	if err := s.users.ClearSuspension(ctx, userID); err != nil {
		return nil, err
	}
	log.Printf("[users] unban user=%s", userID)
	return s.Get(ctx, userID)
}

func (s *UserAdminService) SetArtistLevel(ctx context.Context, userID string, level models.ArtistLevel) (*models.UserSummary, error) {
	if !level.Valid() {
		return nil, ErrInvalidLevel
	}
	u, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !u.IsArtist {
		return nil, ErrNotArtist
	}
	if err := s.users.SetArtistLevel(ctx, userID, level); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID)
}

// SetAdmin grants or revokes the admin role. The acting user must hold the
// role, and cannot revoke it from themself.
func (s *UserAdminService) SetAdmin(ctx context.Context, actorID, userID string, admin bool) (*models.UserSummary, error) {
	isAdmin, err := s.IsAdmin(ctx, actorID)
	if err != nil || !isAdmin {
		return nil, ErrForbidden
	}
	if !admin && actorID == userID {
		return nil, ErrSelfDemotion
	}
	if err := s.users.SetAdmin(ctx, userID, admin); err != nil {
		return nil, err
	}
	if s.claims != nil {
		if err := s.claims.SetAdminClaim(ctx, userID, admin); err != nil {
			log.Printf("[users] admin claim user=%s admin=%v ignored: %v", userID, admin, err)
		}
	}
	log.Printf("[users] admin role user=%s admin=%v by=%s", userID, admin, actorID)
	return s.Get(ctx, userID)
}

// BanPermanently is Suspend with the permanent duration.
func (s *UserAdminService) BanPermanently(ctx context.Context, userID string) (*models.UserSummary, error) {
	return s.Suspend(ctx, userID, PermanentDuration)
}
