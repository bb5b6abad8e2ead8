package pin

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// MemoryRepository is an in-memory Repository used in tests and as a
// bootstrap store when no database is available.
type MemoryRepository struct {
	mu     sync.RWMutex
	pins   map[int64]*Pin
	nextID int64
}

// NewMemoryRepository creates an empty MemoryRepository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{pins: make(map[int64]*Pin)}
}

// Create stores p under the next monotonic ID.
func (r *MemoryRepository) Create(_ context.Context, p *Pin) (*Pin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	stored := *p
	stored.ID = r.nextID
	stored.CreatedAt = time.Now()
	r.pins[stored.ID] = &stored

	out := stored
	return &out, nil
}

// GetByID returns the pin with the given ID.
func (r *MemoryRepository) GetByID(_ context.Context, id int64) (*Pin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.pins[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *p
	return &out, nil
}

// ListByBoard returns all pins on boardID in insertion order.
func (r *MemoryRepository) ListByBoard(_ context.Context, boardID int64) ([]Pin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pins := []Pin{}
	for id := int64(1); id <= r.nextID; id++ {
		if p, ok := r.pins[id]; ok && p.BoardID == boardID {
			pins = append(pins, *p)
		}
	}
	return pins, nil
}

// SampleRandomPublic returns up to n public pins in uniform random order.
func (r *MemoryRepository) SampleRandomPublic(_ context.Context, n int) ([]Pin, error) {
	if n < 0 {
		n = 0
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	public := []Pin{}
	for _, p := range r.pins {
		if !p.IsPrivate {
			public = append(public, *p)
		}
	}

	rand.Shuffle(len(public), func(i, j int) {
		public[i], public[j] = public[j], public[i]
	})
	if n < len(public) {
		public = public[:n]
	}
	return public, nil
}
