package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nada/admin/internal/models"
)

func newUserAdminFixture() (*UserAdminService, *fakeUsers, *fakeClaims) {
	past := t0.Add(-time.Hour)
	future := t0.Add(time.Hour)
	users := newFakeUsers(
		models.UserAccount{ID: "admin", Nickname: "root", IsAdmin: true},
		models.UserAccount{ID: "fan", Nickname: "Mina", Email: "mina@example.com"},
		models.UserAccount{ID: "art1", Nickname: "Beat", IsArtist: true},
		models.UserAccount{ID: "art2", Nickname: "Pro", IsArtist: true, ArtistLevel: models.ArtistLevelPro, SuspendedUntil: &future},
		models.UserAccount{ID: "old", Nickname: "Old", SuspendedUntil: &past},
		models.UserAccount{ID: "ban", Nickname: "Ban", IsPermanentlyBanned: true},
	)
	users.fans["art1"] = 3
	claims := &fakeClaims{}
	svc := NewUserAdminService(users, claims)
	svc.now = fixedClock(t0)
	return svc, users, claims
}

func TestUserStatusAt(t *testing.T) {
	svc, users, _ := newUserAdminFixture()
	want := map[string]models.UserStatus{
		"fan":  models.UserStatusNormal,
		"art2": models.UserStatusSuspended,
		"old":  models.UserStatusExpired,
		"ban":  models.UserStatusBanned,
	}
	for id, status := range want {
		got, err := svc.Get(context.Background(), id)
		if err != nil {
			t.Fatal(err)
		}
		if got.Status != status {
			t.Errorf("%s: status = %s, want %s", id, got.Status, status)
		}
	}

	// A one minute suspension reads as suspended until it lapses.
	if _, err := svc.Suspend(context.Background(), "fan", "1m"); err != nil {
		t.Fatal(err)
	}
	u := users.users["fan"]
	if u.StatusAt(t0.Add(30*time.Second)) != models.UserStatusSuspended {
		t.Error("expected suspended within the minute")
	}
	if u.StatusAt(t0.Add(61*time.Second)) != models.UserStatusExpired {
		t.Error("expected expired after the minute")
	}
}

func TestListUsersCountsAndFilters(t *testing.T) {
	svc, _, _ := newUserAdminFixture()
	ctx := context.Background()

	resp, err := svc.List(ctx, UserFilterAll, "", "")
	if err != nil {
		t.Fatal(err)
	}
	c := resp.Counts
	if c.All != 6 || c.Artists != 2 || c.Users != 4 || c.Suspended != 3 {
		t.Errorf("counts = %+v", c)
	}
	if c.ByLevel[models.ArtistLevelRookie] != 1 || c.ByLevel[models.ArtistLevelPro] != 1 {
		t.Errorf("by level = %v", c.ByLevel)
	}

	resp, _ = svc.List(ctx, UserFilterArtist, models.ArtistLevelRookie, "")
	if len(resp.Users) != 1 || resp.Users[0].ID != "art1" {
		t.Fatalf("rookie artists = %+v", resp.Users)
	}
	if resp.Users[0].FanCount == nil || *resp.Users[0].FanCount != 3 {
		t.Errorf("fan count = %v", resp.Users[0].FanCount)
	}

	resp, _ = svc.List(ctx, UserFilterUser, "", "MINA@")
	if len(resp.Users) != 1 || resp.Users[0].ID != "fan" {
		t.Errorf("search = %+v", resp.Users)
	}
	if resp.Users[0].FanCount != nil {
		t.Error("non-artists carry no fan count")
	}

	resp, _ = svc.List(ctx, UserFilterSuspended, "", "")
	if len(resp.Users) != 3 {
		t.Errorf("suspended filter returned %d users", len(resp.Users))
	}
}

func TestSuspendAndUnban(t *testing.T) {
	svc, users, _ := newUserAdminFixture()
	ctx := context.Background()

	if _, err := svc.BanPermanently(ctx, "fan"); err != nil {
		t.Fatal(err)
	}
	if !users.users["fan"].IsPermanentlyBanned || users.users["fan"].SuspensionCount != 1 {
		t.Errorf("ban not applied: %+v", users.users["fan"])
	}

	got, err := svc.Unban(ctx, "fan")
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != models.UserStatusNormal || users.users["fan"].SuspendedUntil != nil {
		t.Errorf("unban left state %+v", users.users["fan"])
	}

	if _, err := svc.Suspend(ctx, "fan", "soon"); !errors.Is(err, ErrInvalidDuration) {
		t.Errorf("expected ErrInvalidDuration, got %v", err)
	}
	if _, err := svc.Suspend(ctx, "ghost", "1d"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestSetArtistLevel(t *testing.T) {
	svc, users, _ := newUserAdminFixture()
	ctx := context.Background()

	if _, err := svc.SetArtistLevel(ctx, "art1", models.ArtistLevelAmateur); err != nil {
		t.Fatal(err)
	}
	if users.users["art1"].ArtistLevel != models.ArtistLevelAmateur {
		t.Error("level not stored")
	}
	if _, err := svc.SetArtistLevel(ctx, "fan", models.ArtistLevelPro); !errors.Is(err, ErrNotArtist) {
		t.Errorf("expected ErrNotArtist, got %v", err)
	}
	if _, err := svc.SetArtistLevel(ctx, "art1", "legend"); !errors.Is(err, ErrInvalidLevel) {
		t.Errorf("expected ErrInvalidLevel, got %v", err)
	}
}

func TestSetAdminAuthorization(t *testing.T) {
	svc, users, claims := newUserAdminFixture()
	ctx := context.Background()

	if _, err := svc.SetAdmin(ctx, "fan", "art1", true); !errors.Is(err, ErrForbidden) {
		t.Errorf("non-admin actor: expected ErrForbidden, got %v", err)
	}
	if _, err := svc.SetAdmin(ctx, "admin", "admin", false); !errors.Is(err, ErrSelfDemotion) {
		t.Errorf("self demotion: expected ErrSelfDemotion, got %v", err)
	}

	if _, err := svc.SetAdmin(ctx, "admin", "fan", true); err != nil {
		t.Fatal(err)
	}
	if !users.users["fan"].IsAdmin || !claims.set["fan"] {
		t.Error("admin role or claim not set")
	}

	claims.err = errors.New("firebase down")
	if _, err := svc.SetAdmin(ctx, "admin", "fan", false); err != nil {
		t.Fatalf("claim failure must not fail the change: %v", err)
	}
	if users.users["fan"].IsAdmin {
		t.Error("admin role not revoked")
	}
}
