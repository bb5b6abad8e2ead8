package user

import (
	"context"
	"sync"
	"time"
)

// MemoryRepository is an in-memory Repository used in tests and as a
// bootstrap store when no database is available.
type MemoryRepository struct {
	mu     sync.RWMutex
	users  map[int64]*User
	nextID int64
}

// NewMemoryRepository creates an empty MemoryRepository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[int64]*User)}
}

// Create stores u under the next monotonic ID. Returns ErrEmailTaken when
// the email is already registered.
func (r *MemoryRepository) Create(_ context.Context, u *User) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == u.Email {
			return nil, ErrEmailTaken
		}
	}

	r.nextID++
	stored := *u
	stored.ID = r.nextID
	stored.CreatedAt = time.Now()
	r.users[stored.ID] = &stored

	out := stored
	return &out, nil
}

// GetByID returns the user with the given ID.
func (r *MemoryRepository) GetByID(_ context.Context, id int64) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *u
	return &out, nil
}

// GetByEmail returns the user with the given email.
func (r *MemoryRepository) GetByEmail(_ context.Context, email string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, ErrNotFound
}
