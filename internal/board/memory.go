package board

import (
	"context"
	"sync"
	"time"
)

// MemoryRepository is an in-memory Repository used in tests and as a
// bootstrap store when no database is available.
type MemoryRepository struct {
	mu     sync.RWMutex
	boards map[int64]*Board
	nextID int64
}

// NewMemoryRepository creates an empty MemoryRepository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{boards: make(map[int64]*Board)}
}

// Create stores b under the next monotonic ID.
func (r *MemoryRepository) Create(_ context.Context, b *Board) (*Board, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	stored := *b
	stored.ID = r.nextID
	stored.CreatedAt = time.Now()
	r.boards[stored.ID] = &stored

	out := stored
	return &out, nil
}

// GetByID returns the board with the given ID.
func (r *MemoryRepository) GetByID(_ context.Context, id int64) (*Board, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.boards[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *b
	return &out, nil
}

// ListByOwner returns all boards owned by ownerID in insertion order.
func (r *MemoryRepository) ListByOwner(_ context.Context, ownerID int64) ([]Board, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	boards := []Board{}
	for id := int64(1); id <= r.nextID; id++ {
		if b, ok := r.boards[id]; ok && b.OwnerID == ownerID {
			boards = append(boards, *b)
		}
	}
	return boards, nil
}
