package storage

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/bluele/gcache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore counts calls and lets tests script signing failures.
type fakeStore struct {
	mu          sync.Mutex
	uploads     int
	downloads   int
	signCalls   int
	failSigning error
}

func (f *fakeStore) Upload(_ context.Context, localPath, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads++
	return "bucket/" + key, nil
}

func (f *fakeStore) Download(_ context.Context, key, localPath string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.downloads++
	return nil
}

func (f *fakeStore) PresignedURL(_ context.Context, key string, _ time.Duration) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signCalls++
	if f.failSigning != nil {
		return "", f.failSigning
	}
	return fmt.Sprintf("https://signed.example/%s?n=%d", key, f.signCalls), nil
}

func TestPresignedURLCachesPerKey(t *testing.T) {
	fake := &fakeStore{}
	c := NewSignedURLCache(fake)
	ctx := context.Background()

	first, err := c.PresignedURL(ctx, "k1", 0)
	require.NoError(t, err)
	second, err := c.PresignedURL(ctx, "k1", 0)
	require.NoError(t, err)

	assert.Equal(t, first, second, "second call within TTL must return the cached value")
	assert.Equal(t, 1, fake.signCalls, "only one underlying signing call expected")

	other, err := c.PresignedURL(ctx, "k2", 0)
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
	assert.Equal(t, 2, fake.signCalls)
}

func TestPresignedURLRegeneratesAfterExpiry(t *testing.T) {
	fake := &fakeStore{}
	clock := gcache.NewFakeClock()
	c := newSignedURLCacheWithClock(fake, clock)
	ctx := context.Background()

	first, err := c.PresignedURL(ctx, "k1", 0)
	require.NoError(t, err)
	require.Equal(t, 1, fake.signCalls)

	// Still within the 180s window: served from cache.
	clock.Advance(cacheTTL - time.Second)
	mid, err := c.PresignedURL(ctx, "k1", 0)
	require.NoError(t, err)
	assert.Equal(t, first, mid)
	assert.Equal(t, 1, fake.signCalls)

	// Past the window: the entry has expired and must be re-signed.
	clock.Advance(2 * time.Second)
	after, err := c.PresignedURL(ctx, "k1", 0)
	require.NoError(t, err)
	assert.NotEqual(t, first, after)
	assert.Equal(t, 2, fake.signCalls, "expiry must trigger a fresh signing call")
}

func TestPresignedURLDoesNotCacheFailures(t *testing.T) {
	fake := &fakeStore{failSigning: ErrUnavailable}
	c := NewSignedURLCache(fake)
	ctx := context.Background()

	_, err := c.PresignedURL(ctx, "k1", 0)
	require.ErrorIs(t, err, ErrUnavailable)

	fake.mu.Lock()
	fake.failSigning = nil
	fake.mu.Unlock()

	u, err := c.PresignedURL(ctx, "k1", 0)
	require.NoError(t, err)
	assert.NotEmpty(t, u)
	assert.Equal(t, 2, fake.signCalls, "the failure must not have been cached")
}

func TestPresignedURLEvictsLeastRecentlyUsed(t *testing.T) {
	fake := &fakeStore{}
	c := NewSignedURLCache(fake)
	ctx := context.Background()

	for i := 0; i <= cacheMaxEntries; i++ {
		_, err := c.PresignedURL(ctx, fmt.Sprintf("k%d", i), 0)
		require.NoError(t, err)
	}
	signed := fake.signCalls

	// k0 was least recently used and must have been evicted.
	_, err := c.PresignedURL(ctx, "k0", 0)
	require.NoError(t, err)
	assert.Equal(t, signed+1, fake.signCalls)

	// The newest key is still cached.
	_, err = c.PresignedURL(ctx, fmt.Sprintf("k%d", cacheMaxEntries), 0)
	require.NoError(t, err)
	assert.Equal(t, signed+1, fake.signCalls)
}

func TestPresignedURLConcurrentAccess(t *testing.T) {
	fake := &fakeStore{}
	c := NewSignedURLCache(fake)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := c.PresignedURL(ctx, fmt.Sprintf("k%d", i%5), 0)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()
}

func TestCachePassesThroughUploadAndDownload(t *testing.T) {
	fake := &fakeStore{}
	c := NewSignedURLCache(fake)
	ctx := context.Background()

	ref, err := c.Upload(ctx, "/tmp/x.jpg", "k1")
	require.NoError(t, err)
	assert.Equal(t, "bucket/k1", ref)
	assert.Equal(t, 1, fake.uploads)

	require.NoError(t, c.Download(ctx, "k1", "/tmp/y.jpg"))
	assert.Equal(t, 1, fake.downloads)
}
