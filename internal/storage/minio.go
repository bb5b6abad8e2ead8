package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"mime"
	"path/filepath"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// opTimeout bounds every remote call so a wedged store cannot hold a
// request goroutine forever.
const opTimeout = 30 * time.Second

// MinioStore implements ObjectStore against a MinIO (or any S3-compatible)
// backend. The bucket is fixed at construction; keys address objects
// within it.
type MinioStore struct {
	client *minio.Client
	bucket string
}

// NewMinioStore creates a MinIO client, ensures the bucket exists, and
// returns a ready-to-use MinioStore.
func NewMinioStore(endpoint, accessKey, secretKey, bucket, region string, useSSL bool) (*MinioStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket existence: %w", remoteErr(err))
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: region}); err != nil {
			return nil, fmt.Errorf("create bucket %q: %w", bucket, remoteErr(err))
		}
		log.Printf("storage: created bucket %q", bucket)
	}

	return &MinioStore{client: client, bucket: bucket}, nil
}

// Upload streams the file at localPath to the bucket under key. Returns
// the canonical "bucket/key" reference of the stored object.
func (s *MinioStore) Upload(ctx context.Context, localPath, key string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	contentType := mime.TypeByExtension(filepath.Ext(localPath))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.client.FPutObject(ctx, s.bucket, key, localPath, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("upload %q: %w", localPath, ErrObjectMissing)
		}
		return "", fmt.Errorf("put object %q: %w", key, remoteErr(err))
	}
	return s.bucket + "/" + key, nil
}

// Download fetches the object at key into the file at localPath.
func (s *MinioStore) Download(ctx context.Context, key, localPath string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if err := s.client.FGetObject(ctx, s.bucket, key, localPath, minio.GetObjectOptions{}); err != nil {
		return fmt.Errorf("get object %q: %w", key, remoteErr(err))
	}
	return nil
}

// PresignedURL returns a signed GET URL for key, valid for ttl. Signing is
// a local operation; no network round trip is made.
func (s *MinioStore) PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = DefaultPresignTTL
	}

	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, ttl, nil)
	if err != nil {
		return "", fmt.Errorf("presign object %q: %w", key, remoteErr(err))
	}
	return u.String(), nil
}

// remoteErr folds store-side failures into ErrUnavailable while keeping
// the original error text for logs.
func remoteErr(err error) error {
	resp := minio.ToErrorResponse(err)
	if resp.Code != "" {
		return fmt.Errorf("%w: %s: %s", ErrUnavailable, resp.Code, resp.Message)
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
