package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	gcs "cloud.google.com/go/storage"
)

// gcsStore implements ObjectStore on Google Cloud Storage. Signing uses the
// client's ambient credentials (service account key or IAM signBlob).
type gcsStore struct {
	client *gcs.Client
}

// NewGCS creates a Cloud Storage backed ObjectStore using application
// default credentials.
func NewGCS(ctx context.Context) (ObjectStore, error) {
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &gcsStore{client: client}, nil
}

// Stat probes the object's metadata.
func (s *gcsStore) Stat(ctx context.Context, bucket, key string) (ObjectAttrs, error) {
	attrs, err := s.client.Bucket(bucket).Object(key).Attrs(ctx)
	if err != nil {
		if errors.Is(err, gcs.ErrObjectNotExist) {
			return ObjectAttrs{}, ErrObjectNotFound
		}
		return ObjectAttrs{}, fmt.Errorf("stat gs://%s/%s: %w", bucket, key, err)
	}
	return ObjectAttrs{
		Size:        attrs.Size,
		ContentType: attrs.ContentType,
		Updated:     attrs.Updated,
	}, nil
}

// SignedGet issues a V4 signed URL carrying the response header overrides as
// query parameters.
func (s *gcsStore) SignedGet(_ context.Context, bucket, key string, opt SignOptions) (string, error) {
	params := url.Values{}
	if opt.ResponseDisposition != "" {
		params.Set("response-content-disposition", opt.ResponseDisposition)
	}
	if opt.ResponseContentType != "" {
		params.Set("response-content-type", opt.ResponseContentType)
	}

	u, err := s.client.Bucket(bucket).SignedURL(key, &gcs.SignedURLOptions{
		Scheme:          gcs.SigningSchemeV4,
		Method:          "GET",
		Expires:         opt.Expires,
		QueryParameters: params,
	})
	if err != nil {
		return "", fmt.Errorf("sign gs://%s/%s: %w", bucket, key, err)
	}
	return u, nil
}
