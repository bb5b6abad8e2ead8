// Package board manages boards, the named collections pins belong to.
package board

import (
	"context"
	"errors"
	"time"
)

// Board represents a named collection of pins owned by a user.
type Board struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerID     int64     `json:"ownerId"`
	IsPrivate   bool      `json:"isPrivate"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ErrNotFound is returned when a board does not exist.
var ErrNotFound = errors.New("board not found")

// Repository is the persistence contract for boards.
type Repository interface {
	// Create inserts b and returns the stored record with its assigned ID.
	Create(ctx context.Context, b *Board) (*Board, error)
	GetByID(ctx context.Context, id int64) (*Board, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]Board, error)
}
