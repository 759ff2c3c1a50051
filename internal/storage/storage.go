package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// s3Storage implements object storage operations against an S3-compatible store
type s3Storage struct {
	client       *minio.Client
	bucket       string
	publicDomain string
}

// NewS3Storage creates a new s3Storage instance
func NewS3Storage(endpoint, accessKey, secretKey, bucket, publicDomain string, useSSL bool) (*s3Storage, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object store client: %w", err)
	}

	return &s3Storage{
		client:       client,
		bucket:       bucket,
		publicDomain: strings.TrimSuffix(publicDomain, "/"),
	}, nil
}

// UploadFile streams a local file to the object store under key and returns
// its public URL. Single attempt; the caller owns retry policy.
func (s *s3Storage) UploadFile(ctx context.Context, localPath, key, contentType string) (string, error) {
	if contentType == "" {
		contentType = ContentTypeForKey(key)
	}

	_, err := s.client.FPutObject(ctx, s.bucket, key, localPath, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	return s.PublicURL(key), nil
}

// UploadBuffer uploads in-memory content under key and returns its public URL
func (s *s3Storage) UploadBuffer(ctx context.Context, data []byte, key, contentType string) (string, error) {
	if contentType == "" {
		contentType = ContentTypeForKey(key)
	}

	reader := bytes.NewReader(data)
	_, err := s.client.PutObject(ctx, s.bucket, key, reader, int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	return s.PublicURL(key), nil
}

// Delete removes an object by key or full public URL. Callers treat deletion
// as best-effort: inspect the error if cleanup matters, log it otherwise.
func (s *s3Storage) Delete(ctx context.Context, keyOrURL string) error {
	key := s.keyFromURL(keyOrURL)
	if key == "" {
		return fmt.Errorf("cannot resolve object key from %q", keyOrURL)
	}

	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}

	return nil
}

// PublicURL resolves the browsable URL for a key by prefixing the configured
// public domain. Without a domain the bare key is returned and the caller
// must treat the result as non-browsable.
func (s *s3Storage) PublicURL(key string) string {
	if s.publicDomain == "" {
		return key
	}
	return s.publicDomain + "/" + key
}

// keyFromURL extracts the object key from a full URL, or returns the input
// unchanged when it is already a bare key
func (s *s3Storage) keyFromURL(keyOrURL string) string {
	if !strings.Contains(keyOrURL, "://") {
		return strings.TrimPrefix(keyOrURL, "/")
	}

	u, err := url.Parse(keyOrURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Path, "/")
}
