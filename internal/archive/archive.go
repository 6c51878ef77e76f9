// Package archive stores rendered reports in durable blob storage so
// they can be read after the CI workspace is gone.
package archive

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoDestination is returned when no archive destination is configured.
var ErrNoDestination = errors.New("no archive destination configured")

// StorageClient abstracts blob storage for archived reports.
type StorageClient interface {
	PutReport(ctx context.Context, key string, data []byte) error
}

// New creates a storage client for a destination string: a local
// directory path, s3://bucket/prefix, or gs://bucket/prefix.
func New(ctx context.Context, destination string) (StorageClient, error) {
	switch {
	case destination == "":
		return nil, ErrNoDestination
	case strings.HasPrefix(destination, "s3://"):
		bucket, prefix, err := splitBucketURL(destination, "s3://")
		if err != nil {
			return nil, err
		}
		return NewS3Storage(ctx, bucket, prefix)
	case strings.HasPrefix(destination, "gs://"):
		bucket, prefix, err := splitBucketURL(destination, "gs://")
		if err != nil {
			return nil, err
		}
		return NewGCSStorage(ctx, bucket, prefix)
	default:
		return NewLocalStorage(destination), nil
	}
}

// splitBucketURL splits scheme://bucket/prefix into bucket and prefix.
// The prefix may be empty.
func splitBucketURL(destination, scheme string) (string, string, error) {
	rest := strings.TrimPrefix(destination, scheme)
	bucket, prefix, _ := strings.Cut(rest, "/")
	if bucket == "" {
		return "", "", fmt.Errorf("archive destination %q has no bucket", destination)
	}
	return bucket, strings.Trim(prefix, "/"), nil
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "/" + key
}

// LocalStorage implements StorageClient using the local filesystem.
// Useful for development and testing.
type LocalStorage struct {
	BaseDir string
}

// NewLocalStorage creates a LocalStorage rooted at the given directory.
func NewLocalStorage(baseDir string) *LocalStorage {
	return &LocalStorage{BaseDir: baseDir}
}

// PutReport stores a report blob under the base directory.
func (s *LocalStorage) PutReport(ctx context.Context, key string, data []byte) error {
	path := filepath.Join(s.BaseDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
