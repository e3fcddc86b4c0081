package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/nada/admin/internal/models"
)

// SystemReporterID marks reports filed by automated screening.
const SystemReporterID = "SYSTEM"

// UploadedImage describes a finalized storage object and the metadata the
// client attached when uploading it.
type UploadedImage struct {
	Bucket   string
	Name     string
	Metadata map[string]string
}

// DownloadURL is the Firebase Storage URL an admin can open.
func (img UploadedImage) DownloadURL() string {
	return fmt.Sprintf("https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media",
		img.Bucket, url.PathEscape(img.Name))
}

// ReportFiler accepts automatic reports.
type ReportFiler interface {
	FileReport(ctx context.Context, r models.ModerationReport) (*models.ModerationReport, error)
}

// ImageScreener files a pending report for uploaded images that SafeSearch
// considers unsafe. Safe images and images without owner metadata are left
// alone.
type ImageScreener struct {
	detector SafeSearchDetector
	reports  ReportFiler
}

func NewImageScreener(detector SafeSearchDetector, reports ReportFiler) *ImageScreener {
	return &ImageScreener{detector: detector, reports: reports}
}

// Screen returns the filed report, or nil when nothing was filed.
func (s *ImageScreener) Screen(ctx context.Context, img UploadedImage) (*models.ModerationReport, error) {
	userID := img.Metadata["userId"]
	typ := models.ContentType(strings.ToLower(img.Metadata["type"]))
	targetID := img.Metadata["targetId"]
	if userID == "" || targetID == "" || !typ.Valid() {
		log.Printf("[screen] skipping name=%s: metadata incomplete userId=%q type=%q targetId=%q",
			img.Name, userID, typ, targetID)
		return nil, nil
	}

	ss, err := s.detector.Detect(ctx, fmt.Sprintf("gs://%s/%s", img.Bucket, img.Name))
	if err != nil {
		return nil, fmt.Errorf("safesearch: %w", err)
	}
	log.Printf("[screen] name=%s adult=%s violence=%s racy=%s unsafe=%v",
		img.Name, ss.Adult, ss.Violence, ss.Racy, ss.IsUnsafe())
	if !ss.IsUnsafe() {
		return nil, nil
	}

	return s.reports.FileReport(ctx, models.ModerationReport{
		Type:              typ,
		TargetID:          targetID,
		PostID:            img.Metadata["postId"],
		SongID:            img.Metadata["songId"],
		FanPostOwnerID:    img.Metadata["fanPostOwnerId"],
		Reason:            fmt.Sprintf("unsafe image (adult=%s violence=%s racy=%s)", ss.Adult, ss.Violence, ss.Racy),
		ReporterID:        SystemReporterID,
		ReporterNickname:  SystemReporterID,
		ReportedUserID:    userID,
		PostImageSnapshot: img.DownloadURL(),
	})
}
