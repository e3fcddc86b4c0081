package services

import (
	"context"
	"errors"
	"testing"
)

type fakeDetector struct {
	result *SafeSearchResult
	err    error
	calls  int
}

func (f *fakeDetector) Detect(context.Context, string) (*SafeSearchResult, error) {
	f.calls++
	return f.result, f.err
}

func newScreenFixture(result *SafeSearchResult) (*ImageScreener, *fakeDetector, *fakeReports) {
	det := &fakeDetector{result: result}
	f := newModerationFixture()
	return NewImageScreener(det, f.svc), det, f.reports
}

func TestScreenFilesReportForUnsafeImage(t *testing.T) {
	screener, _, reports := newScreenFixture(&SafeSearchResult{Adult: "VERY_LIKELY", Violence: "UNLIKELY"})

	r, err := screener.Screen(context.Background(), UploadedImage{
		Bucket:   "nada",
		Name:     "posts/u1/p1.jpg",
		Metadata: map[string]string{"userId": "u1", "type": "post", "targetId": "p1"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if r == nil {
		t.Fatal("expected a report")
	}
	stored, ok := reports.pending[r.ID]
	if !ok {
		t.Fatal("report not stored")
	}
	if stored.ReporterID != SystemReporterID || stored.ReportedUserID != "u1" || stored.TargetID != "p1" {
		t.Errorf("report = %+v", stored)
	}
	want := "https://firebasestorage.googleapis.com/v0/b/nada/o/posts%2Fu1%2Fp1.jpg?alt=media"
	if stored.PostImageSnapshot != want {
		t.Errorf("snapshot = %q, want %q", stored.PostImageSnapshot, want)
	}
	if path, ok := StoragePathFromURL(stored.PostImageSnapshot); !ok || path != "posts/u1/p1.jpg" {
		t.Errorf("snapshot url does not round-trip: %q", path)
	}
}

func TestScreenSkipsSafeAndUntaggedImages(t *testing.T) {
	screener, det, reports := newScreenFixture(&SafeSearchResult{Adult: "POSSIBLE", Racy: "UNLIKELY"})
	ctx := context.Background()

	r, err := screener.Screen(ctx, UploadedImage{Bucket: "b", Name: "x.jpg", Metadata: map[string]string{"userId": "u1", "type": "song", "targetId": "s1"}})
	if err != nil || r != nil {
		t.Fatalf("safe image: got %v, %v", r, err)
	}
	r, err = screener.Screen(ctx, UploadedImage{Bucket: "b", Name: "y.jpg"})
	if err != nil || r != nil {
		t.Fatalf("untagged image: got %v, %v", r, err)
	}
	if det.calls != 1 {
		t.Errorf("detector calls = %d, want 1", det.calls)
	}
	if len(reports.pending) != 0 {
		t.Error("no report expected")
	}
}

func TestScreenPropagatesDetectorErrors(t *testing.T) {
	screener, det, _ := newScreenFixture(nil)
	det.err = errors.New("quota")
	_, err := screener.Screen(context.Background(), UploadedImage{Bucket: "b", Name: "x", Metadata: map[string]string{"userId": "u", "type": "post", "targetId": "t"}})
	if err == nil {
		t.Fatal("expected error")
	}
}
