package archive

import (
	"context"
	"fmt"

	gcs "cloud.google.com/go/storage"
)

// GCSStorage archives reports in a Google Cloud Storage bucket.
type GCSStorage struct {
	client *gcs.Client
	bucket string
	prefix string
}

// NewGCSStorage creates a GCS-backed StorageClient. Credentials come
// from Application Default Credentials, which CI runners provide via
// workload identity or a mounted service account key.
func NewGCSStorage(ctx context.Context, bucket, prefix string) (*GCSStorage, error) {
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create gcs client: %w", err)
	}
	return &GCSStorage{client: client, bucket: bucket, prefix: prefix}, nil
}

// PutReport stores a report under the configured prefix.
func (s *GCSStorage) PutReport(ctx context.Context, key string, data []byte) error {
	obj := joinKey(s.prefix, key)
	w := s.client.Bucket(s.bucket).Object(obj).NewWriter(ctx)
	w.ContentType = "text/markdown"
	if _, err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("gcs write %s: %w", obj, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("gcs close %s: %w", obj, err)
	}
	return nil
}
