package services

import (
	"context"
	"errors"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCSBlobStore deletes objects from the Firebase Storage bucket.
type GCSBlobStore struct {
	client *gcs.Client
	bucket string
}

// NewGCSBlobStore uses Application Default Credentials unless credentialsJSON
// is given.
func NewGCSBlobStore(ctx context.Context, bucket, credentialsJSON string) (*GCSBlobStore, error) {
	var opts []option.ClientOption
	if credentialsJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(credentialsJSON)))
	}
	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &GCSBlobStore{client: client, bucket: bucket}, nil
}

// Delete removes the object at path. An object that is already gone is not
// an error.
func (s *GCSBlobStore) Delete(ctx context.Context, path string) error {
	err := s.client.Bucket(s.bucket).Object(path).Delete(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return nil
	}
	return err
}

// Metadata returns the custom metadata of an object.
func (s *GCSBlobStore) Metadata(ctx context.Context, bucket, path string) (map[string]string, error) {
	attrs, err := s.client.Bucket(bucket).Object(path).Attrs(ctx)
	if err != nil {
		return nil, err
	}
	return attrs.Metadata, nil
}

func (s *GCSBlobStore) Close() error {
	return s.client.Close()
}
