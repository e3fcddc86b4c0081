package services

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/nada/admin/internal/models"
)

// ModerationService adjudicates user reports. A report leaves the pending
// set exactly once: deleted on an innocent verdict, or moved to the guilty
// set together with the suspension and content removal.
type ModerationService struct {
	reports  ReportStore
	content  ContentStore
	songs    SongStore
	users    UserStore
	tx       TxRunner
	notifier Notifier
	policy   *bluemonday.Policy
	now      func() time.Time
}

func NewModerationService(reports ReportStore, content ContentStore, songs SongStore, users UserStore, tx TxRunner, notifier Notifier) *ModerationService {
	return &ModerationService{
		reports:  reports,
		content:  content,
		songs:    songs,
		users:    users,
		tx:       tx,
		notifier: notifier,
		policy:   bluemonday.StrictPolicy(),
		now:      time.Now,
	}
}

// ListReports returns pending reports of typ (all types when empty) with
// their live content, if it still exists.
func (s *ModerationService) ListReports(ctx context.Context, typ models.ContentType) ([]models.ReportView, error) {
	if typ != "" && !typ.Valid() {
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidReport, typ)
	}
	reports, err := s.reports.ListReports(ctx, typ)
	if err != nil {
		return nil, err
	}

	out := make([]models.ReportView, 0, len(reports))
	for i := range reports {
		preview, err := s.preview(ctx, &reports[i])
		if err != nil {
			log.Printf("[moderation] preview report=%s failed: %v", reports[i].ID, err)
		}
		out = append(out, models.ReportView{ModerationReport: reports[i], Content: preview})
	}
	return out, nil
}

// FileReport adds a pending report.
func (s *ModerationService) FileReport(ctx context.Context, r models.ModerationReport) (*models.ModerationReport, error) {
	if !r.Type.Valid() || strings.TrimSpace(r.TargetID) == "" || strings.TrimSpace(r.ReportedUserID) == "" {
		return nil, ErrInvalidReport
	}
	r.Reason = strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(r.Reason)))
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = s.now().UTC()
	}
	if err := s.reports.CreateReport(ctx, r); err != nil {
		return nil, err
	}
	log.Printf("[moderation] report filed id=%s type=%s target=%s reporter=%s", r.ID, r.Type, r.TargetID, r.ReporterID)
	return &r, nil
}

// Innocent dismisses a report with no other effect.
func (s *ModerationService) Innocent(ctx context.Context, reportID string) error {
	deleted, err := s.reports.DeleteReport(ctx, reportID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrReportNotFound
	}
	log.Printf("[moderation] innocent report=%s", reportID)
	return nil
}

// Guilty suspends the reported user, archives the report with its evidence,
// removes the reported content and consumes the report, all in one
// transaction. Content that is already gone is not an error.
func (s *ModerationService) Guilty(ctx context.Context, reportID, duration, adminID string) (*models.GuiltyReport, error) {
	now := s.now().UTC()
	suspension, err := ParseSuspension(duration, now)
	if err != nil {
		return nil, err
	}

	var (
		out       models.GuiltyReport
		takenDown *models.Song
	)
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		takenDown = nil

		report, err := s.reports.GetReport(ctx, reportID)
		if err != nil {
			return err
		}
		if report.ReportedUserID == "" {
			return fmt.Errorf("%w: report %s has no reported user", ErrInvalidReport, reportID)
		}

		preview, err := s.preview(ctx, report)
		if err != nil {
			return fmt.Errorf("load content: %w", err)
		}
		report.CaptureSnapshot(preview)

		if err := s.users.ApplySuspension(ctx, report.ReportedUserID, suspension); err != nil {
			return fmt.Errorf("suspend user %s: %w", report.ReportedUserID, err)
		}

		out = models.GuiltyReport{
			ModerationReport: *report,
			AdjudicatedAt:    now,
			AdjudicatedBy:    adminID,
			Suspension:       suspension,
		}
		if err := s.reports.SaveGuilty(ctx, out); err != nil {
			return fmt.Errorf("archive report: %w", err)
		}

		if preview != nil {
			song, err := s.removeContent(ctx, report)
			if err != nil {
				return fmt.Errorf("remove content: %w", err)
			}
			takenDown = song
		}

		deleted, err := s.reports.DeleteReport(ctx, reportID)
		if err != nil {
			return err
		}
		if !deleted {
			return ErrReportAlreadyProcessed
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if takenDown != nil && s.notifier != nil {
		s.notifier.Notify(takenDown.UserID, fmt.Sprintf("Your song \"%s\" was removed after a report review.", takenDown.Title))
	}
	log.Printf("[moderation] guilty report=%s user=%s permanent=%v until=%s admin=%s",
		reportID, out.ReportedUserID, suspension.Permanent, suspension.Until.Format(time.RFC3339), adminID)
	return &out, nil
}

// removeContent deletes a post or comment, or takes a song down through the
// song lifecycle. It returns the song when one was taken down.
func (s *ModerationService) removeContent(ctx context.Context, r *models.ModerationReport) (*models.Song, error) {
	if r.Type != models.ContentSong {
		_, err := s.content.DeleteContent(ctx, r)
		return nil, err
	}

	song, err := s.songs.GetSong(ctx, songIDOf(r))
	if errors.Is(err, ErrSongNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if song.Status() == models.SongDeleted {
		return nil, nil
	}
	if err := s.songs.SetSongStatus(ctx, song.ID, models.SongDeleted); err != nil {
		return nil, err
	}
	return song, nil
}

func (s *ModerationService) preview(ctx context.Context, r *models.ModerationReport) (*models.ContentPreview, error) {
	if r.Type != models.ContentSong {
		return s.content.FindContent(ctx, r)
	}
	song, err := s.songs.GetSong(ctx, songIDOf(r))
	if errors.Is(err, ErrSongNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &models.ContentPreview{
		ID:       song.ID,
		Title:    song.Title,
		Nickname: song.Nickname,
		ImageURL: song.ImageURL,
	}, nil
}

func songIDOf(r *models.ModerationReport) string {
	if r.SongID != "" {
		return r.SongID
	}
	return r.TargetID
}

// ListGuilty returns archived verdicts filtered by type and nickname search,
// plus the number of guilty verdicts per reported user across the archive.
func (s *ModerationService) ListGuilty(ctx context.Context, typ models.ContentType, search string) (*models.GuiltyListResponse, error) {
	all, err := s.reports.ListGuilty(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	filtered := make([]models.GuiltyReport, 0, len(all))
	for _, g := range all {
		if g.ReportedUserID != "" {
			counts[g.ReportedUserID]++
		}
		if typ != "" && g.Type != typ {
			continue
		}
		if !g.MatchesSearch(search) {
			continue
		}
		filtered = append(filtered, g)
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].AdjudicatedAt.After(filtered[j].AdjudicatedAt)
	})
	return &models.GuiltyListResponse{Reports: filtered, GuiltyCounts: counts}, nil
}

func (s *ModerationService) DeleteGuilty(ctx context.Context, id string) error {
	deleted, err := s.reports.DeleteGuilty(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrGuiltyReportNotFound
	}
	return nil
}
