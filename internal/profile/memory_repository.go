package profile

import (
	"context"
	"sync"
	"time"
)

// MemoryRepository is the in-memory Repository used for local development and tests.
type MemoryRepository struct {
	mu    sync.RWMutex
	now   func() time.Time
	store map[string]Profile // uid -> document
}

// NewMemoryRepository returns an in-memory repository whose clock stands in for the
// server timestamp.
func NewMemoryRepository(now func() time.Time) *MemoryRepository {
	if now == nil {
		now = time.Now
	}
	return &MemoryRepository{
		now:   now,
		store: make(map[string]Profile),
	}
}

func (r *MemoryRepository) CreateProfile(_ context.Context, profile Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	profile.CreatedAt = r.now().UTC()
	r.store[profile.UID] = profile
	return nil
}

// Get returns the document stored for uid.
func (r *MemoryRepository) Get(uid string) (Profile, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, ok := r.store[uid]
	return profile, ok
}

// Len returns the number of stored documents.
func (r *MemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.store)
}
