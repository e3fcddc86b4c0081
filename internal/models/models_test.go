package models

import (
	"testing"
	"time"
)

func TestSongStatusFlagsRoundTrip(t *testing.T) {
	for _, st := range []SongStatus{SongPending, SongApproved, SongPaused, SongDeleted} {
		var s Song
		s.IsPending, s.IsVisible, s.IsDeleted = st.Flags()
		if s.Status() != st {
			t.Errorf("%s: derived %s", st, s.Status())
		}
	}
	// The deleted flag wins over everything else.
	s := Song{IsDeleted: true, IsPending: true, IsVisible: true}
	if s.Status() != SongDeleted {
		t.Errorf("got %s, want deleted", s.Status())
	}
}

func TestUserStatusAt(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	later := now.Add(time.Minute)
	u := UserAccount{SuspendedUntil: &later}

	if got := u.StatusAt(now); got != UserStatusSuspended {
		t.Errorf("before expiry: %s", got)
	}
	if got := u.StatusAt(later); got != UserStatusExpired {
		t.Errorf("at expiry: %s", got)
	}
	u.IsPermanentlyBanned = true
	if got := u.StatusAt(later.Add(time.Hour)); got != UserStatusBanned {
		t.Errorf("permanent: %s", got)
	}
	if got := (&UserAccount{}).StatusAt(now); got != UserStatusNormal {
		t.Errorf("clean account: %s", got)
	}
}

func TestCaptureSnapshotFillsOnlyEmptyFields(t *testing.T) {
	r := ModerationReport{Type: ContentComment, CommentContentSnapshot: "first"}
	r.CaptureSnapshot(&ContentPreview{Content: "edited", Nickname: "kim"})
	if r.CommentContentSnapshot != "first" || r.CommentNicknameSnapshot != "kim" {
		t.Errorf("snapshot = %q / %q", r.CommentContentSnapshot, r.CommentNicknameSnapshot)
	}
	r.CaptureSnapshot(nil)
	if r.PostContentSnapshot != "" {
		t.Error("comment report must not fill post fields")
	}
}

func TestEffectiveArtistLevel(t *testing.T) {
	if (&UserAccount{IsArtist: true}).EffectiveArtistLevel() != ArtistLevelRookie {
		t.Error("artist without a tier should read as rookie")
	}
	if (&UserAccount{}).EffectiveArtistLevel() != "" {
		t.Error("non-artists have no tier")
	}
}
