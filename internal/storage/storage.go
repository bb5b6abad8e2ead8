// Package storage defines the interface for object storage operations.
// Swap implementations by changing the concrete type injected at startup —
// the MinIO implementation works with any S3-compatible provider (MinIO, AWS S3).
package storage

import (
	"context"
	"errors"
	"time"
)

// DefaultPresignTTL is the signature lifetime used when callers pass a
// zero TTL to PresignedURL.
const DefaultPresignTTL = 300 * time.Second

// ErrUnavailable is returned when the object store rejects the request
// (bad credentials) or cannot be reached.
var ErrUnavailable = errors.New("object store unavailable")

// ErrObjectMissing is returned when the local file to upload does not exist.
var ErrObjectMissing = errors.New("local object missing")

// ObjectStore is the interface for moving objects in and out of the store
// and minting time-limited access URLs for them.
type ObjectStore interface {
	// Upload streams the file at localPath to the store under key and
	// returns the canonical bucket/key reference of the stored object.
	Upload(ctx context.Context, localPath, key string) (string, error)
	// Download fetches the object at key into the file at localPath.
	Download(ctx context.Context, key, localPath string) error
	// PresignedURL returns a signed, time-limited URL granting read access
	// to the object at key. A zero ttl means DefaultPresignTTL.
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}
