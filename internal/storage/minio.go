package storage

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"docgate/internal/config"
)

// minioStore implements ObjectStore on an S3-compatible backend (MinIO, AWS
// S3, etc.), for self-hosted deployments of the portal. It is safe for
// concurrent use by multiple goroutines.
type minioStore struct {
	client *minio.Client
}

// NewS3 creates an S3-compatible ObjectStore backed by MinIO.
func NewS3(cfg config.StorageConfig) (ObjectStore, error) {
	if cfg.S3Endpoint == "" {
		return nil, fmt.Errorf("s3 endpoint is required")
	}
	if cfg.S3AccessKey == "" || cfg.S3SecretKey == "" {
		return nil, fmt.Errorf("s3 credentials are required")
	}

	cli, err := minio.New(cfg.S3Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		Secure: cfg.S3UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	return &minioStore{client: cli}, nil
}

// Stat probes the object's metadata.
func (s *minioStore) Stat(ctx context.Context, bucket, key string) (ObjectAttrs, error) {
	st, err := s.client.StatObject(ctx, bucket, key, minio.StatObjectOptions{})
	if err != nil {
		resp := minio.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" || resp.Code == "NoSuchBucket" {
			return ObjectAttrs{}, ErrObjectNotFound
		}
		return ObjectAttrs{}, fmt.Errorf("stat %s/%s: %w", bucket, key, err)
	}
	return ObjectAttrs{
		Size:        st.Size,
		ContentType: st.ContentType,
		Updated:     st.LastModified,
	}, nil
}

// SignedGet generates a pre-signed GET URL with the response header overrides
// as request parameters.
func (s *minioStore) SignedGet(ctx context.Context, bucket, key string, opt SignOptions) (string, error) {
	params := url.Values{}
	if opt.ResponseDisposition != "" {
		params.Set("response-content-disposition", opt.ResponseDisposition)
	}
	if opt.ResponseContentType != "" {
		params.Set("response-content-type", opt.ResponseContentType)
	}

	u, err := s.client.PresignedGetObject(ctx, bucket, key, time.Until(opt.Expires), params)
	if err != nil {
		return "", fmt.Errorf("presign %s/%s: %w", bucket, key, err)
	}
	return u.String(), nil
}
