package archive

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Environment overrides for stores outside the regular AWS credential
// chain, such as a MinIO instance on the runner network. The standard
// AWS variables keep working when these are unset.
const (
	envS3Endpoint  = "LINTWIRE_S3_ENDPOINT"
	envS3AccessKey = "LINTWIRE_S3_ACCESS_KEY"
	envS3SecretKey = "LINTWIRE_S3_SECRET_KEY"
)

// S3Storage archives reports in an S3 bucket or an S3-compatible store.
type S3Storage struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3Storage creates an S3-backed StorageClient. Region and
// credentials come from the runner's AWS environment unless the
// LINTWIRE_S3_* overrides are set.
func NewS3Storage(ctx context.Context, bucket, prefix string) (*S3Storage, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if ak, sk := os.Getenv(envS3AccessKey), os.Getenv(envS3SecretKey); ak != "" && sk != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(ak, sk, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	endpoint := os.Getenv(envS3Endpoint)
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			// Compatible stores generally need path-style addressing.
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Storage{client: client, bucket: bucket, prefix: prefix}, nil
}

// PutReport stores a report under the configured prefix.
func (s *S3Storage) PutReport(ctx context.Context, key string, data []byte) error {
	obj := joinKey(s.prefix, key)
	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(obj),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("text/markdown"),
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("s3 put %s: %w", obj, err)
	}
	return nil
}
