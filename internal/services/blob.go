package services

import (
	"context"
	"log"
	"net/url"
	"regexp"
)

var storagePathPattern = regexp.MustCompile(`/o/(.+)\?alt=media`)

// StoragePathFromURL extracts the object path from a Firebase Storage
// download URL. ok is false when the URL does not follow that scheme.
func StoragePathFromURL(fullURL string) (string, bool) {
	decoded, err := url.PathUnescape(fullURL)
	if err != nil {
		return "", false
	}
	m := storagePathPattern.FindStringSubmatch(decoded)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// deleteBlobs removes the objects behind urls, ignoring failures.
func deleteBlobs(ctx context.Context, blobs BlobStore, urls []string) {
	if blobs == nil {
		return
	}
	for _, u := range urls {
		path, ok := StoragePathFromURL(u)
		if !ok {
			continue
		}
		if err := blobs.Delete(ctx, path); err != nil {
			log.Printf("[blob] delete path=%s ignored: %v", path, err)
		}
	}
}
