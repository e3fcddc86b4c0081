package services

import (
	"context"

	"google.golang.org/api/option"
	vision "google.golang.org/api/vision/v1"
)

type SafeSearchResult struct {
	Adult    string
	Violence string
	Racy     string
	Spoof    string
	Medical  string
}

func isUnsafeLikelyOrHigher(l string) bool {
	return l == "LIKELY" || l == "VERY_LIKELY"
}

func (r *SafeSearchResult) IsUnsafe() bool {
	return isUnsafeLikelyOrHigher(r.Adult) || isUnsafeLikelyOrHigher(r.Violence) || isUnsafeLikelyOrHigher(r.Racy)
}

// SafeSearchDetector classifies an image stored at a gs:// URI.
type SafeSearchDetector interface {
	Detect(ctx context.Context, gcsURI string) (*SafeSearchResult, error)
}

// VisionDetector runs Vision SAFE_SEARCH_DETECTION.
type VisionDetector struct {
	svc *vision.Service
}

// NewVisionDetector uses Application Default Credentials.
func NewVisionDetector(ctx context.Context) (*VisionDetector, error) {
	svc, err := vision.NewService(ctx, option.WithScopes(vision.CloudPlatformScope))
	if err != nil {
		return nil, err
	}
	return &VisionDetector{svc: svc}, nil
}

func (d *VisionDetector) Detect(ctx context.Context, gcsURI string) (*SafeSearchResult, error) {
	req := &vision.AnnotateImageRequest{
		Image:    &vision.Image{Source: &vision.ImageSource{GcsImageUri: gcsURI}},
		Features: []*vision.Feature{{Type: "SAFE_SEARCH_DETECTION"}},
	}
	resp, err := d.svc.Images.Annotate(&vision.BatchAnnotateImagesRequest{
		Requests: []*vision.AnnotateImageRequest{req},
	}).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	if len(resp.Responses) == 0 || resp.Responses[0].SafeSearchAnnotation == nil {
		return &SafeSearchResult{}, nil
	}

	ss := resp.Responses[0].SafeSearchAnnotation
	return &SafeSearchResult{
		Adult:    ss.Adult,
		Violence: ss.Violence,
		Racy:     ss.Racy,
		Spoof:    ss.Spoof,
		Medical:  ss.Medical,
	}, nil
}
