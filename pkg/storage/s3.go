package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// AvatarStore keeps member avatars in an S3-compatible bucket. Objects are
// publicly readable; PublicURL is derived, not signed.
type AvatarStore struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

type AvatarStoreConfig struct {
	Bucket    string
	Region    string
	Endpoint  string // optional custom endpoint (MinIO, LocalStack)
	PublicURL string // optional base for public links; defaults to endpoint/bucket
}

func NewAvatarStore(ctx context.Context, cfg AvatarStoreConfig) (*AvatarStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true // required for MinIO/LocalStack
		}
	})

	base := cfg.PublicURL
	if base == "" {
		base = strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
	}

	return &AvatarStore{client: client, bucket: cfg.Bucket, baseURL: strings.TrimRight(base, "/")}, nil
}

// Upload stores the blob under key, overwriting any previous object.
func (s *AvatarStore) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("s3 put %s: %w", key, err)
	}
	return nil
}

// PublicURL returns the public link for a stored object.
func (s *AvatarStore) PublicURL(key string) string {
	return s.baseURL + "/" + key
}
