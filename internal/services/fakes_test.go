package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/nada/admin/internal/models"
)

type fakeTx struct{ calls int }

func (f *fakeTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeUsers struct {
	users map[string]*models.UserAccount
	fans  map[string]int64
}

func newFakeUsers(users ...models.UserAccount) *fakeUsers {
	f := &fakeUsers{users: map[string]*models.UserAccount{}, fans: map[string]int64{}}
	for i := range users {
		u := users[i]
		f.users[u.ID] = &u
	}
	return f
}

func (f *fakeUsers) GetUser(_ context.Context, id string) (*models.UserAccount, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) FindByNickname(_ context.Context, nickname string) (*models.UserAccount, error) {
	for _, u := range f.users {
		if u.Nickname == nickname {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrUserNotFound
}

func (f *fakeUsers) ListUsers(context.Context) ([]models.UserAccount, error) {
	out := make([]models.UserAccount, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeUsers) ListSuspended(ctx context.Context) ([]models.UserAccount, error) {
	all, _ := f.ListUsers(ctx)
	out := make([]models.UserAccount, 0)
	for _, u := range all {
		if u.HasSuspension() {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUsers) CountFans(_ context.Context, id string) (int64, error) {
	return f.fans[id], nil
}

func (f *fakeUsers) get(id string) (*models.UserAccount, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUsers) ApplySuspension(_ context.Context, id string, s models.Suspension) error {
	u, err := f.get(id)
	if err != nil {
		return err
	}
	if s.Permanent {
		u.IsPermanentlyBanned = true
		u.SuspendedUntil = nil
	} else {
		until := s.Until
		u.SuspendedUntil = &until
		u.IsPermanentlyBanned = false
	}
	u.SuspensionCount++
	return nil
}

func (f *fakeUsers) ClearSuspension(_ context.Context, id string) error {
	u, err := f.get(id)
	if err != nil {
		return err
	}
	u.SuspendedUntil = nil
	u.IsPermanentlyBanned = false
	return nil
}

func (f *fakeUsers) SetArtistLevel(_ context.Context, id string, level models.ArtistLevel) error {
	u, err := f.get(id)
	if err != nil {
		return err
	}
	u.ArtistLevel = level
	return nil
}

func (f *fakeUsers) SetAdmin(_ context.Context, id string, admin bool) error {
	u, err := f.get(id)
	if err != nil {
		return err
	}
	u.IsAdmin = admin
	return nil
}

func (f *fakeUsers) AdjustNP(_ context.Context, id string, delta int64) (int64, int64, error) {
	u, err := f.get(id)
	if err != nil {
		return 0, 0, err
	}
	before := u.NP
	u.NP += delta
	if u.NP < 0 {
		u.NP = 0
	}
	return before, u.NP, nil
}

func (f *fakeUsers) PromoteToArtist(_ context.Context, id string) error {
	u, err := f.get(id)
	if err != nil {
		return err
	}
	u.IsArtist = true
	u.ArtistLevel = models.ArtistLevelRookie
	u.ArtistApplicationStatus = ""
	return nil
}

func (f *fakeUsers) SetApplicationStatus(_ context.Context, id, status string, at *time.Time) error {
	u, err := f.get(id)
	if err != nil {
		return err
	}
	u.ArtistApplicationStatus = status
	if at != nil {
		u.RejectedAt = at
	}
	return nil
}

type fakeTransactions struct {
	records []models.TransactionRecord
	failErr error
}

func (f *fakeTransactions) InsertTransaction(_ context.Context, rec models.TransactionRecord) error {
	if f.failErr != nil {
		return f.failErr
	}
	f.records = append(f.records, rec)
	return nil
}

func (f *fakeTransactions) ListForUser(_ context.Context, userID string) ([]models.TransactionRecord, error) {
	out := make([]models.TransactionRecord, 0)
	for _, r := range f.records {
		if r.FromUserID == userID || r.ToUserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeReports struct {
	pending map[string]models.ModerationReport
	guilty  map[string]models.GuiltyReport
	// consumeFirst simulates another admin consuming the report between
	// read and delete.
	consumeFirst bool
}

func newFakeReports(reports ...models.ModerationReport) *fakeReports {
	f := &fakeReports{pending: map[string]models.ModerationReport{}, guilty: map[string]models.GuiltyReport{}}
	for _, r := range reports {
		f.pending[r.ID] = r
	}
	return f
}

func (f *fakeReports) ListReports(_ context.Context, typ models.ContentType) ([]models.ModerationReport, error) {
	out := make([]models.ModerationReport, 0)
	for _, r := range f.pending {
		if typ == "" || r.Type == typ {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeReports) GetReport(_ context.Context, id string) (*models.ModerationReport, error) {
	r, ok := f.pending[id]
	if !ok {
		return nil, ErrReportNotFound
	}
	return &r, nil
}

func (f *fakeReports) CreateReport(_ context.Context, r models.ModerationReport) error {
	if _, ok := f.pending[r.ID]; ok {
		return errors.New("duplicate report id")
	}
	f.pending[r.ID] = r
	return nil
}

func (f *fakeReports) DeleteReport(_ context.Context, id string) (bool, error) {
	if f.consumeFirst {
		delete(f.pending, id)
	}
	_, ok := f.pending[id]
	delete(f.pending, id)
	return ok, nil
}

func (f *fakeReports) SaveGuilty(_ context.Context, g models.GuiltyReport) error {
	f.guilty[g.ID] = g
	return nil
}

func (f *fakeReports) ListGuilty(context.Context) ([]models.GuiltyReport, error) {
	out := make([]models.GuiltyReport, 0, len(f.guilty))
	for _, g := range f.guilty {
		out = append(out, g)
	}
	return out, nil
}

func (f *fakeReports) DeleteGuilty(_ context.Context, id string) (bool, error) {
	_, ok := f.guilty[id]
	delete(f.guilty, id)
	return ok, nil
}

// fakeContent keys content by report target id.
type fakeContent struct {
	items   map[string]models.ContentPreview
	deleted []string
}

func (f *fakeContent) FindContent(_ context.Context, r *models.ModerationReport) (*models.ContentPreview, error) {
	p, ok := f.items[r.TargetID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *fakeContent) DeleteContent(_ context.Context, r *models.ModerationReport) (bool, error) {
	if _, ok := f.items[r.TargetID]; !ok {
		return false, nil
	}
	delete(f.items, r.TargetID)
	f.deleted = append(f.deleted, r.TargetID)
	return true, nil
}

type fakeSongs struct {
	songs map[string]*models.Song
}

func newFakeSongs(songs ...models.Song) *fakeSongs {
	f := &fakeSongs{songs: map[string]*models.Song{}}
	for i := range songs {
		s := songs[i]
		f.songs[s.ID] = &s
	}
	return f
}

func (f *fakeSongs) GetSong(_ context.Context, id string) (*models.Song, error) {
	s, ok := f.songs[id]
	if !ok {
		return nil, ErrSongNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSongs) ListSongs(_ context.Context, status models.SongStatus) ([]models.Song, error) {
	out := make([]models.Song, 0)
	for _, s := range f.songs {
		if status == "" || s.Status() == status {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeSongs) SetSongStatus(_ context.Context, id string, status models.SongStatus) error {
	s, ok := f.songs[id]
	if !ok {
		return ErrSongNotFound
	}
	s.IsPending, s.IsVisible, s.IsDeleted = status.Flags()
	return nil
}

func (f *fakeSongs) DeleteSong(_ context.Context, id string) error {
	if _, ok := f.songs[id]; !ok {
		return ErrSongNotFound
	}
	delete(f.songs, id)
	return nil
}

type fakeApps struct {
	pending  map[string]models.ArtistApplication
	rejected map[string]models.ArtistApplication
}

func newFakeApps(pending ...models.ArtistApplication) *fakeApps {
	f := &fakeApps{pending: map[string]models.ArtistApplication{}, rejected: map[string]models.ArtistApplication{}}
	for _, a := range pending {
		f.pending[a.ID] = a
	}
	return f
}

func (f *fakeApps) ListPending(context.Context) ([]models.ArtistApplication, error) {
	out := make([]models.ArtistApplication, 0)
	for _, a := range f.pending {
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeApps) ListRejected(context.Context) ([]models.ArtistApplication, error) {
	out := make([]models.ArtistApplication, 0)
	for _, a := range f.rejected {
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeApps) CountPending(context.Context) (int64, error) {
	return int64(len(f.pending)), nil
}

func (f *fakeApps) GetPending(_ context.Context, id string) (*models.ArtistApplication, error) {
	a, ok := f.pending[id]
	if !ok {
		return nil, ErrApplicationNotFound
	}
	return &a, nil
}

func (f *fakeApps) GetRejected(_ context.Context, userID string) (*models.ArtistApplication, error) {
	a, ok := f.rejected[userID]
	if !ok {
		return nil, ErrApplicationNotFound
	}
	return &a, nil
}

func (f *fakeApps) SavePending(_ context.Context, a models.ArtistApplication) error {
	f.pending[a.ID] = a
	return nil
}

func (f *fakeApps) SaveRejected(_ context.Context, a models.ArtistApplication) error {
	f.rejected[a.UserID] = a
	return nil
}

func (f *fakeApps) DeletePending(_ context.Context, id string) (bool, error) {
	_, ok := f.pending[id]
	delete(f.pending, id)
	return ok, nil
}

func (f *fakeApps) DeleteRejected(_ context.Context, userID string) (bool, error) {
	_, ok := f.rejected[userID]
	delete(f.rejected, userID)
	return ok, nil
}

type fakeContacts struct {
	msgs map[string]*models.ContactMessage
}

func (f *fakeContacts) ListMessages(_ context.Context, includeResolved bool) ([]models.ContactMessage, error) {
	out := make([]models.ContactMessage, 0)
	for _, m := range f.msgs {
		if includeResolved || m.ResolvedAt == nil {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeContacts) ResolveMessage(_ context.Context, id, adminID string, at time.Time) (bool, error) {
	m, ok := f.msgs[id]
	if !ok {
		return false, nil
	}
	m.ResolvedAt = &at
	m.ResolvedBy = adminID
	return true, nil
}

func (f *fakeContacts) DeleteMessage(_ context.Context, id string) (bool, error) {
	_, ok := f.msgs[id]
	delete(f.msgs, id)
	return ok, nil
}

type sentNotification struct {
	UserID  string
	Message string
}

type fakeNotifier struct {
	sent []sentNotification
}

func (f *fakeNotifier) Notify(userID, message string) {
	f.sent = append(f.sent, sentNotification{UserID: userID, Message: message})
}

type fakeNotificationStore struct {
	mu    sync.Mutex
	notes []models.Notification
	err   error
}

func (f *fakeNotificationStore) InsertNotification(_ context.Context, n models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.notes = append(f.notes, n)
	return nil
}

type fakeBlobs struct {
	deleted []string
	err     error
}

func (f *fakeBlobs) Delete(_ context.Context, path string) error {
	f.deleted = append(f.deleted, path)
	return f.err
}

type fakeClaims struct {
	set map[string]bool
	err error
}

func (f *fakeClaims) SetAdminClaim(_ context.Context, uid string, admin bool) error {
	if f.err != nil {
		return f.err
	}
	if f.set == nil {
		f.set = map[string]bool{}
	}
	f.set[uid] = admin
	return nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
