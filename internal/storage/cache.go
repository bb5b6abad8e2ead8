package storage

import (
	"context"
	"time"

	"github.com/bluele/gcache"
)

const (
	// cacheMaxEntries caps the number of cached URLs; least-recently-used
	// entries are evicted beyond this.
	cacheMaxEntries = 1000
	// cacheTTL is how long a signed URL may be served from cache. It must
	// stay below DefaultPresignTTL so a cached URL never outlives its
	// signature.
	cacheTTL = 180 * time.Second
)

// SignedURLCache wraps an ObjectStore and memoizes PresignedURL results.
// Upload and Download pass through untouched. The cache is keyed by object
// key alone, which assumes a single-bucket deployment. Safe for concurrent
// use; concurrent misses for the same key each sign independently, which
// is acceptable since signing is a cheap local operation.
type SignedURLCache struct {
	store ObjectStore
	urls  gcache.Cache
}

// NewSignedURLCache builds the cache around store. Construct once at
// startup and inject wherever presigned lookups are needed; entries are
// self-expiring so there is no teardown.
func NewSignedURLCache(store ObjectStore) *SignedURLCache {
	return newSignedURLCacheWithClock(store, gcache.NewRealClock())
}

// newSignedURLCacheWithClock lets tests drive entry expiration with a
// fake clock.
func newSignedURLCacheWithClock(store ObjectStore, clock gcache.Clock) *SignedURLCache {
	return &SignedURLCache{
		store: store,
		urls: gcache.New(cacheMaxEntries).
			LRU().
			Expiration(cacheTTL).
			Clock(clock).
			Build(),
	}
}

// Upload delegates to the underlying store.
func (c *SignedURLCache) Upload(ctx context.Context, localPath, key string) (string, error) {
	return c.store.Upload(ctx, localPath, key)
}

// Download delegates to the underlying store.
func (c *SignedURLCache) Download(ctx context.Context, key, localPath string) error {
	return c.store.Download(ctx, key, localPath)
}

// PresignedURL returns the cached URL for key when present, otherwise
// signs through the underlying store and caches the result. Failures are
// never cached.
func (c *SignedURLCache) PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if v, err := c.urls.Get(key); err == nil {
		return v.(string), nil
	}

	u, err := c.store.PresignedURL(ctx, key, ttl)
	if err != nil {
		return "", err
	}
	_ = c.urls.Set(key, u)
	return u, nil
}
