// Package pin manages pins: shared image posts that belong to a board and
// an owner, backed by two objects in blob storage.
package pin

import (
	"context"
	"errors"
	"time"
)

// Pin represents a single shared image post. ImageKey and ThumbnailKey are
// opaque object-store identifiers; they are resolved to time-limited URLs
// only at read time and are never persisted as full URLs.
type Pin struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ImageKey     string    `json:"imageKey"`
	ThumbnailKey string    `json:"thumbnailKey"`
	BoardID      int64     `json:"boardId"`
	OwnerID      int64     `json:"ownerId"`
	IsPrivate    bool      `json:"isPrivate"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ErrNotFound is returned when a pin does not exist.
var ErrNotFound = errors.New("pin not found")

// Repository is the persistence contract for pins.
type Repository interface {
	// Create inserts p and returns the stored record with its assigned ID.
	Create(ctx context.Context, p *Pin) (*Pin, error)
	GetByID(ctx context.Context, id int64) (*Pin, error)
	ListByBoard(ctx context.Context, boardID int64) ([]Pin, error)
	// SampleRandomPublic returns up to n public pins drawn uniformly at
	// random, independent of insertion order. Fewer than n public pins is
	// not an error; all of them are returned. A non-positive n yields an
	// empty result.
	SampleRandomPublic(ctx context.Context, n int) ([]Pin, error)
}
